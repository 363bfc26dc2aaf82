package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/services"
)

type PlanEnrollmentHandler struct {
	log               *logger.Logger
	enrollmentService services.PlanEnrollmentService
}

func NewPlanEnrollmentHandler(log *logger.Logger, enrollmentService services.PlanEnrollmentService) *PlanEnrollmentHandler {
	return &PlanEnrollmentHandler{
		log:               log.With("handler", "PlanEnrollmentHandler"),
		enrollmentService: enrollmentService,
	}
}

func (h *PlanEnrollmentHandler) Enroll(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), planID, rd.UserID)
	if err != nil {
		h.log.Warn("Enroll failed", "error", err, "plan_id", planID, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"enrollment": enrollment})
}

func (h *PlanEnrollmentHandler) Unenroll(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, enrollment.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.enrollmentService.Unenroll(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "unenrolled"})
}

func (h *PlanEnrollmentHandler) UpdateProgress(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		CompletedTopics *int `json:"completedTopics" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, enrollment.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	updated, err := h.enrollmentService.UpdateProgress(c.Request.Context(), id, *input.CompletedTopics)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"enrollment": updated})
}

func (h *PlanEnrollmentHandler) ListMine(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	enrollments, err := h.enrollmentService.ListByUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"enrollments": enrollments})
}

func (h *PlanEnrollmentHandler) ListByPlan(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	enrollments, err := h.enrollmentService.ListByPlan(c.Request.Context(), planID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"enrollments": enrollments})
}

func (h *PlanEnrollmentHandler) EnrollmentStatus(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	enrolled, err := h.enrollmentService.IsUserEnrolled(c.Request.Context(), planID, rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"enrolled": enrolled})
}
