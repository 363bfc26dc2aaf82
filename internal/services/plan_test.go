package services

import (
	"context"
	"testing"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/types"
)

func TestPlanCreate_AssignsSequentialTopicOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)

	plan, err := env.plans.Create(ctx, owner.ID, CreatePlanInput{
		Title: "Ordered Plan",
		Topics: []CreateTopicInput{
			{Title: "first"},
			{Title: "second"},
			{Title: "third"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if plan.Visibility != types.VisibilityPrivate {
		t.Fatalf("expected default PRIVATE got %s", plan.Visibility)
	}
	topics, err := env.topics.ListByPlan(ctx, plan.ID)
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("expected 3 topics got %d", len(topics))
	}
	for i, topic := range topics {
		if topic.OrderIndex != i {
			t.Fatalf("topic %d has orderIndex %d", i, topic.OrderIndex)
		}
		if topic.Status != types.TopicNotStarted {
			t.Fatalf("expected NOT_STARTED got %s", topic.Status)
		}
	}
}

func TestPlanDelete_CascadesTopicsAndEnrollments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)
	learner := env.mustCreateUser(t)
	plan := env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 2)

	if _, err := env.enrollments.Enroll(ctx, plan.ID, learner.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := env.plans.Delete(ctx, plan.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := env.plans.GetByID(ctx, plan.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("plan still present: %v", err)
	}
	topics, err := env.topics.ListByPlan(ctx, plan.ID)
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 0 {
		t.Fatalf("orphaned topics: %d", len(topics))
	}
	enrollments, err := env.enrollments.ListByPlan(ctx, plan.ID)
	if err != nil {
		t.Fatalf("list enrollments: %v", err)
	}
	if len(enrollments) != 0 {
		t.Fatalf("orphaned enrollments: %d", len(enrollments))
	}
}

func TestPlanSetVisibility_RejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)
	plan := env.mustCreatePlan(t, owner.ID, types.VisibilityPrivate, 0)

	if _, err := env.plans.SetVisibility(ctx, plan.ID, "FRIENDS_ONLY"); !apperrors.IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
	updated, err := env.plans.SetVisibility(ctx, plan.ID, "PUBLIC")
	if err != nil {
		t.Fatalf("set visibility: %v", err)
	}
	if updated.Visibility != types.VisibilityPublic {
		t.Fatalf("expected PUBLIC got %s", updated.Visibility)
	}
}

func TestPlanGetDetail_PrivateForbiddenForStrangers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)
	stranger := env.mustCreateUser(t)
	plan := env.mustCreatePlan(t, owner.ID, types.VisibilityPrivate, 0)

	if _, err := env.plans.GetDetail(ctx, plan.ID, stranger.ID); !apperrors.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := env.plans.GetDetail(ctx, plan.ID, owner.ID); err != nil {
		t.Fatalf("owner view: %v", err)
	}
}

func TestPlanGetDetail_NonOwnerViewBumpsViewCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)
	viewer := env.mustCreateUser(t)
	plan := env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 0)

	if _, err := env.plans.GetDetail(ctx, plan.ID, viewer.ID); err != nil {
		t.Fatalf("viewer get: %v", err)
	}
	if _, err := env.plans.GetDetail(ctx, plan.ID, owner.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got := env.planByID(t, plan.ID).ViewCount; got != 1 {
		t.Fatalf("expected view_count=1 got %d", got)
	}
}

func TestPlanGetDetail_ReportsEnrollmentAndParticipants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)
	learner := env.mustCreateUser(t)
	plan := env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 1)

	if _, err := env.enrollments.Enroll(ctx, plan.ID, learner.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	detail, err := env.plans.GetDetail(ctx, plan.ID, learner.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if !detail.IsEnrolled {
		t.Fatalf("expected isEnrolled=true")
	}
	if len(detail.Participants) != 1 {
		t.Fatalf("expected 1 participant got %d", len(detail.Participants))
	}
	if detail.Participants[0].Username != learner.Username {
		t.Fatalf("unexpected participant %q", detail.Participants[0].Username)
	}
}

func TestPlanUpdate_DoesNotTouchVisibilityOrCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)
	learner := env.mustCreateUser(t)
	plan := env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 0)
	if _, err := env.enrollments.Enroll(ctx, plan.ID, learner.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	updated, err := env.plans.Update(ctx, plan.ID, UpdatePlanInput{
		Title:       "Renamed",
		Description: "new words",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not updated")
	}
	if updated.Visibility != types.VisibilityPublic {
		t.Fatalf("visibility changed to %s", updated.Visibility)
	}
	if got := env.planByID(t, plan.ID).EnrollmentCount; got != 1 {
		t.Fatalf("counter disturbed: %d", got)
	}
}
