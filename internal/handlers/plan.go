package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/services"
)

type LearningPlanHandler struct {
	log         *logger.Logger
	planService services.LearningPlanService
}

func NewLearningPlanHandler(log *logger.Logger, planService services.LearningPlanService) *LearningPlanHandler {
	return &LearningPlanHandler{
		log:         log.With("handler", "LearningPlanHandler"),
		planService: planService,
	}
}

func (h *LearningPlanHandler) Create(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var input services.CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	plan, err := h.planService.Create(c.Request.Context(), rd.UserID, input)
	if err != nil {
		h.log.Warn("Create plan failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"plan": plan})
}

func (h *LearningPlanHandler) Get(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.planService.GetDetail(c.Request.Context(), id, rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (h *LearningPlanHandler) Update(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	plan, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, plan.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	updated, err := h.planService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.log.Warn("Update plan failed", "error", err, "plan_id", id)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": updated})
}

func (h *LearningPlanHandler) Delete(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, plan.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete plan failed", "error", err, "plan_id", id)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}

func (h *LearningPlanHandler) SetVisibility(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Visibility string `json:"visibility" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	plan, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, plan.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	updated, err := h.planService.SetVisibility(c.Request.Context(), id, input.Visibility)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": updated})
}

func (h *LearningPlanHandler) ListMine(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	plans, err := h.planService.ListByOwner(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"plans": plans})
}
