package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/requestdata"
	"github.com/skillloop/skillloop-backend/internal/types"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError translates the service error taxonomy into HTTP
// statuses. Anything unclassified is a 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case apperrors.IsForbidden(err):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case apperrors.IsConflict(err):
		RespondError(c, http.StatusConflict, "conflict", err)
	case apperrors.IsBadRequest(err):
		RespondError(c, http.StatusBadRequest, "bad_request", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// currentUser pulls the authenticated identity out of the request
// context, responding 401 itself when there is none.
func currentUser(c *gin.Context) (*requestdata.RequestData, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return nil, false
	}
	return rd, true
}

// canModify reports whether the caller owns the resource or carries
// the admin role.
func canModify(rd *requestdata.RequestData, ownerID uuid.UUID) bool {
	return rd.UserID == ownerID || rd.IsAdmin()
}

// pageRequest reads page/size query parameters, falling back to the
// first page with the default size on anything unparsable.
func pageRequest(c *gin.Context) types.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	return types.PageRequest{Page: page, Size: size}
}

// parseIDParam reads a uuid path parameter, responding 400 itself on
// malformed input.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
