package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/services"
)

type PostHandler struct {
	log            *logger.Logger
	postService    services.PostService
	commentService services.CommentService
}

func NewPostHandler(
	log *logger.Logger,
	postService services.PostService,
	commentService services.CommentService,
) *PostHandler {
	return &PostHandler{
		log:            log.With("handler", "PostHandler"),
		postService:    postService,
		commentService: commentService,
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var input services.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	post, err := h.postService.Create(c.Request.Context(), rd.UserID, input)
	if err != nil {
		h.log.Warn("Create post failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"post": post})
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	post, err := h.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, post.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	updated, err := h.postService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": updated})
}

func (h *PostHandler) Delete(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, post.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("Delete post failed", "error", err, "post_id", id)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}

func (h *PostHandler) Feed(c *gin.Context) {
	page, err := h.postService.Feed(c.Request.Context(), pageRequest(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	posts, err := h.postService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"posts": posts})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	liked, err := h.postService.ToggleLike(c.Request.Context(), id, rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"liked": liked})
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	comment, err := h.commentService.Create(c.Request.Context(), postID, rd.UserID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"comment": comment})
}

func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.commentService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"comments": comments})
}

func (h *PostHandler) UpdateComment(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	var input services.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	comment, err := h.commentService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, comment.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	updated, err := h.commentService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"comment": updated})
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	comment, err := h.commentService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !canModify(rd, comment.UserID) {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
