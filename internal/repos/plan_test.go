package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/db"
	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB) *types.User {
	t.Helper()
	now := time.Now()
	user := &types.User{
		ID:        uuid.New(),
		Username:  uuid.New().String()[:8],
		Email:     uuid.New().String() + "@example.com",
		Password:  "hashed",
		Role:      types.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedPlan(t *testing.T, gdb *gorm.DB, ownerID uuid.UUID, visibility types.Visibility) *types.LearningPlan {
	t.Helper()
	now := time.Now()
	plan := &types.LearningPlan{
		ID:         uuid.New(),
		Title:      "plan",
		UserID:     ownerID,
		Visibility: visibility,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := gdb.Create(plan).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return plan
}

func TestDecrementEnrollmentCount_ClampsAtZero(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewLearningPlanRepo(gdb, logger.NewNop())
	ctx := context.Background()
	owner := seedUser(t, gdb)
	plan := seedPlan(t, gdb, owner.ID, types.VisibilityPublic)

	if err := repo.DecrementEnrollmentCount(ctx, nil, plan.ID); err != nil {
		t.Fatalf("decrement at zero: %v", err)
	}
	reloaded, err := repo.GetByID(ctx, nil, plan.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.EnrollmentCount != 0 {
		t.Fatalf("counter went negative: %d", reloaded.EnrollmentCount)
	}

	if err := repo.IncrementEnrollmentCount(ctx, nil, plan.ID); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := repo.DecrementEnrollmentCount(ctx, nil, plan.ID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	reloaded, err = repo.GetByID(ctx, nil, plan.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.EnrollmentCount != 0 {
		t.Fatalf("expected 0 got %d", reloaded.EnrollmentCount)
	}
}

func TestIncrementViewCount_MissingPlanIsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewLearningPlanRepo(gdb, logger.NewNop())

	err := repo.IncrementViewCount(context.Background(), nil, uuid.New())
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEnrollmentCreate_DuplicateMapsToConflict(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewPlanEnrollmentRepo(gdb, logger.NewNop())
	ctx := context.Background()
	owner := seedUser(t, gdb)
	learner := seedUser(t, gdb)
	plan := seedPlan(t, gdb, owner.ID, types.VisibilityPublic)

	mk := func() *types.PlanEnrollment {
		now := time.Now()
		return &types.PlanEnrollment{
			ID:               uuid.New(),
			LearningPlanID:   plan.ID,
			UserID:           learner.ID,
			EnrollmentDate:   now,
			LastActivityDate: now,
			Status:           types.EnrollmentActive,
		}
	}
	if err := repo.Create(ctx, nil, mk()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, nil, mk())
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict from unique index, got %v", err)
	}
}

func TestSearchPublic_MatchesTags(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewLearningPlanRepo(gdb, logger.NewNop())
	ctx := context.Background()
	owner := seedUser(t, gdb)

	plan := seedPlan(t, gdb, owner.ID, types.VisibilityPublic)
	if err := gdb.Model(plan).Update("tags", "golang,backend").Error; err != nil {
		t.Fatalf("set tags: %v", err)
	}
	seedPlan(t, gdb, owner.ID, types.VisibilityPublic)

	plans, total, err := repo.SearchPublic(ctx, nil, "BACKEND", types.PageRequest{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || len(plans) != 1 {
		t.Fatalf("expected 1 match got total=%d len=%d", total, len(plans))
	}
	if plans[0].ID != plan.ID {
		t.Fatalf("wrong plan matched")
	}
}
