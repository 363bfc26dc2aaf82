package types

import (
	"testing"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
)

func TestParseVisibility(t *testing.T) {
	for _, raw := range []string{"PRIVATE", "PUBLIC", "SHARED"} {
		v, err := ParseVisibility(raw)
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if string(v) != raw {
			t.Fatalf("expected %s got %s", raw, v)
		}
	}
	if _, err := ParseVisibility("FRIENDS"); !apperrors.IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
	// Lower case input is tolerated and canonicalized.
	v, err := ParseVisibility(" public ")
	if err != nil {
		t.Fatalf("lower case: %v", err)
	}
	if v != VisibilityPublic {
		t.Fatalf("expected PUBLIC got %s", v)
	}
}

func TestParseTopicStatus(t *testing.T) {
	for _, raw := range []string{"NOT_STARTED", "IN_PROGRESS", "COMPLETED"} {
		s, err := ParseTopicStatus(raw)
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if string(s) != raw {
			t.Fatalf("expected %s got %s", raw, s)
		}
	}
	if _, err := ParseTopicStatus("DONE"); !apperrors.IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestNewPage_ComputesTotals(t *testing.T) {
	page := NewPage([]int{1, 2}, PageRequest{Page: 1, Size: 2}, 5)
	if page.TotalElements != 5 {
		t.Fatalf("expected 5 total got %d", page.TotalElements)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages got %d", page.TotalPages)
	}
	if page.Page != 1 || page.Size != 2 {
		t.Fatalf("request echo wrong: page=%d size=%d", page.Page, page.Size)
	}
}
