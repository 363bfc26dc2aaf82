package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/db"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/middleware"
	"github.com/skillloop/skillloop-backend/internal/repos"
	"github.com/skillloop/skillloop-backend/internal/services"
	"github.com/skillloop/skillloop-backend/internal/types"
)

// topicTestEnv serves topic routes through the real auth middleware
// over an in-memory sqlite database.
type topicTestEnv struct {
	router *gin.Engine
	auth   services.AuthService
	plans  services.LearningPlanService
	topics services.PlanTopicService
}

func newTopicTestEnv(t *testing.T) *topicTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := logger.NewNop()
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	planRepo := repos.NewLearningPlanRepo(gdb, log)
	topicRepo := repos.NewPlanTopicRepo(gdb, log)
	enrollmentRepo := repos.NewPlanEnrollmentRepo(gdb, log)

	env := &topicTestEnv{
		auth:   services.NewAuthService(gdb, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour),
		plans:  services.NewLearningPlanService(gdb, log, planRepo, topicRepo, enrollmentRepo),
		topics: services.NewPlanTopicService(gdb, log, topicRepo, planRepo),
	}

	mw := middleware.NewAuthMiddleware(log, env.auth)
	handler := NewPlanTopicHandler(log, env.topics, env.plans)

	router := gin.New()
	group := router.Group("/api/plan-topics")
	group.Use(mw.RequireAuth())
	group.PATCH("/:id/status", handler.UpdateStatus)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	env.router = router
	return env
}

func (env *topicTestEnv) registerAndLogin(t *testing.T, name string) (*types.User, string) {
	t.Helper()
	ctx := context.Background()
	user, err := env.auth.Register(ctx, services.RegisterInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	_, pair, err := env.auth.Login(ctx, services.LoginInput{
		Email:    name + "@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("login %s: %v", name, err)
	}
	return user, pair.AccessToken
}

func (env *topicTestEnv) patchStatus(t *testing.T, token string, topicID uuid.UUID, status string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPatch, "/api/plan-topics/"+topicID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestPlanTopicHandler_UpdateStatus_RejectsNonOwner(t *testing.T) {
	env := newTopicTestEnv(t)
	owner, _ := env.registerAndLogin(t, "planowner")
	_, strangerToken := env.registerAndLogin(t, "stranger")

	plan, err := env.plans.Create(context.Background(), owner.ID, services.CreatePlanInput{
		Title:      "Private Plan",
		Visibility: string(types.VisibilityPrivate),
		Topics:     []services.CreateTopicInput{{Title: "Topic 1"}},
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	full, err := env.plans.GetByID(context.Background(), plan.ID)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if len(full.Topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(full.Topics))
	}
	topicID := full.Topics[0].ID

	w := env.patchStatus(t, strangerToken, topicID, "COMPLETED")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d (%s)", w.Code, w.Body.String())
	}
	topic, err := env.topics.GetByID(context.Background(), topicID)
	if err != nil {
		t.Fatalf("reload topic: %v", err)
	}
	if topic.Status != types.TopicNotStarted {
		t.Fatalf("topic status changed by non-owner: %s", topic.Status)
	}
}

func TestPlanTopicHandler_UpdateStatus_OwnerSucceeds(t *testing.T) {
	env := newTopicTestEnv(t)
	owner, ownerToken := env.registerAndLogin(t, "topicowner")

	plan, err := env.plans.Create(context.Background(), owner.ID, services.CreatePlanInput{
		Title:      "Own Plan",
		Visibility: string(types.VisibilityPrivate),
		Topics:     []services.CreateTopicInput{{Title: "Topic 1"}},
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	full, err := env.plans.GetByID(context.Background(), plan.ID)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	topicID := full.Topics[0].ID

	w := env.patchStatus(t, ownerToken, topicID, "COMPLETED")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d (%s)", w.Code, w.Body.String())
	}
	topic, err := env.topics.GetByID(context.Background(), topicID)
	if err != nil {
		t.Fatalf("reload topic: %v", err)
	}
	if topic.Status != types.TopicCompleted {
		t.Fatalf("expected COMPLETED, got %s", topic.Status)
	}
}

func TestPlanTopicHandler_UpdateStatus_UnknownTopicIsNotFound(t *testing.T) {
	env := newTopicTestEnv(t)
	_, token := env.registerAndLogin(t, "lonelyuser")

	w := env.patchStatus(t, token, uuid.New(), "COMPLETED")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown topic, got %d (%s)", w.Code, w.Body.String())
	}
}
