package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/services"
)

type PlanTopicHandler struct {
	log          *logger.Logger
	topicService services.PlanTopicService
	planService  services.LearningPlanService
}

func NewPlanTopicHandler(
	log *logger.Logger,
	topicService services.PlanTopicService,
	planService services.LearningPlanService,
) *PlanTopicHandler {
	return &PlanTopicHandler{
		log:          log.With("handler", "PlanTopicHandler"),
		topicService: topicService,
		planService:  planService,
	}
}

// planOwnerGate verifies the caller may modify topics of the plan.
func (h *PlanTopicHandler) planOwnerGate(c *gin.Context, planID uuid.UUID) bool {
	rd, ok := currentUser(c)
	if !ok {
		return false
	}
	plan, err := h.planService.GetByID(c.Request.Context(), planID)
	if err != nil {
		RespondServiceError(c, err)
		return false
	}
	if !canModify(rd, plan.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return false
	}
	return true
}

func (h *PlanTopicHandler) Create(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	var input services.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if !h.planOwnerGate(c, planID) {
		return
	}
	topic, err := h.topicService.Create(c.Request.Context(), planID, input)
	if err != nil {
		h.log.Warn("Create topic failed", "error", err, "plan_id", planID)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"topic": topic})
}

func (h *PlanTopicHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	topic, err := h.topicService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !h.planOwnerGate(c, topic.LearningPlanID) {
		return
	}
	updated, err := h.topicService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"topic": updated})
}

func (h *PlanTopicHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	topic, err := h.topicService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !h.planOwnerGate(c, topic.LearningPlanID) {
		return
	}
	updated, err := h.topicService.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"topic": updated})
}

func (h *PlanTopicHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	topic, err := h.topicService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !h.planOwnerGate(c, topic.LearningPlanID) {
		return
	}
	if err := h.topicService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}

func (h *PlanTopicHandler) ListByPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}
	topics, err := h.topicService.ListByPlan(c.Request.Context(), planID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}
