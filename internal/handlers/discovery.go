package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/services"
)

// DiscoveryHandler serves the public browse endpoints. No auth is
// required here: everything it returns is PUBLIC by construction.
type DiscoveryHandler struct {
	log              *logger.Logger
	discoveryService services.DiscoveryService
}

func NewDiscoveryHandler(log *logger.Logger, discoveryService services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{
		log:              log.With("handler", "DiscoveryHandler"),
		discoveryService: discoveryService,
	}
}

func (h *DiscoveryHandler) ListPublic(c *gin.Context) {
	page, err := h.discoveryService.ListPublic(c.Request.Context(), pageRequest(c))
	if err != nil {
		h.log.Error("ListPublic failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *DiscoveryHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		RespondError(c, http.StatusBadRequest, "missing_query", nil)
		return
	}
	page, err := h.discoveryService.Search(c.Request.Context(), query, pageRequest(c))
	if err != nil {
		h.log.Error("Search failed", "error", err, "query", query)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *DiscoveryHandler) ListPopular(c *gin.Context) {
	page, err := h.discoveryService.ListPopular(c.Request.Context(), pageRequest(c))
	if err != nil {
		h.log.Error("ListPopular failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *DiscoveryHandler) ListRecent(c *gin.Context) {
	page, err := h.discoveryService.ListRecent(c.Request.Context(), pageRequest(c))
	if err != nil {
		h.log.Error("ListRecent failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}
