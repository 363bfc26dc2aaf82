package types

// PageRequest is the (page-number, page-size) tuple supplied by the
// caller. Page is zero-based; Size is clamped by the handlers.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (p PageRequest) Offset() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page * p.Limit()
}

func (p PageRequest) Limit() int {
	if p.Size <= 0 {
		return 10
	}
	return p.Size
}

// Page echoes the request back with the matching slice of results plus
// total-count metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	size := req.Limit()
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	if content == nil {
		content = []T{}
	}
	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
