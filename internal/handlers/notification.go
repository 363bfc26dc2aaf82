package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/services"
)

type NotificationHandler struct {
	log                 *logger.Logger
	notificationService services.NotificationService
}

func NewNotificationHandler(log *logger.Logger, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		log:                 log.With("handler", "NotificationHandler"),
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	page, err := h.notificationService.ListForUser(c.Request.Context(), rd.UserID, pageRequest(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	count, err := h.notificationService.UnreadCount(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notification, err := h.notificationService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if notification.ReceiverID != rd.UserID && !rd.IsAdmin() {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	updated, err := h.notificationService.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"notification": updated})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	updated, err := h.notificationService.MarkAllAsRead(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notification, err := h.notificationService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if notification.ReceiverID != rd.UserID && !rd.IsAdmin() {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.notificationService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
