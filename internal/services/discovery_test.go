package services

import (
	"context"
	"testing"

	"github.com/skillloop/skillloop-backend/internal/types"
)

func TestDiscovery_OnlyPublicPlansAppear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)

	env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 0)
	env.mustCreatePlan(t, owner.ID, types.VisibilityPrivate, 0)
	env.mustCreatePlan(t, owner.ID, types.VisibilityShared, 0)

	page, err := env.discovery.ListPublic(ctx, types.PageRequest{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected 1 public plan got %d", page.TotalElements)
	}
	if page.Content[0].Visibility != types.VisibilityPublic {
		t.Fatalf("non-public plan leaked into discovery")
	}
}

func TestDiscoverySearch_CaseInsensitiveOverTitleDescriptionTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)

	mk := func(title, description, tags string, visibility types.Visibility) {
		t.Helper()
		if _, err := env.plans.Create(ctx, owner.ID, CreatePlanInput{
			Title:       title,
			Description: description,
			Tags:        tags,
			Visibility:  string(visibility),
		}); err != nil {
			t.Fatalf("create plan %q: %v", title, err)
		}
	}
	mk("Golang Mastery", "servers and tooling", "backend", types.VisibilityPublic)
	mk("Cooking Basics", "learn GOLANG? no, knives", "kitchen", types.VisibilityPublic)
	mk("Data Structures", "trees and graphs", "golang,algorithms", types.VisibilityPublic)
	mk("Golang Secrets", "hidden", "backend", types.VisibilityPrivate)

	page, err := env.discovery.Search(ctx, "gOlAnG", types.PageRequest{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalElements != 3 {
		t.Fatalf("expected 3 matches got %d", page.TotalElements)
	}
	for _, p := range page.Content {
		if p.Visibility != types.VisibilityPublic {
			t.Fatalf("private plan %q leaked into search", p.Title)
		}
	}
}

func TestDiscoveryPopular_OrdersByEnrollmentCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)

	quiet := env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 0)
	busy := env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 0)
	for i := 0; i < 3; i++ {
		learner := env.mustCreateUser(t)
		if _, err := env.enrollments.Enroll(ctx, busy.ID, learner.ID); err != nil {
			t.Fatalf("enroll: %v", err)
		}
	}
	learner := env.mustCreateUser(t)
	if _, err := env.enrollments.Enroll(ctx, quiet.ID, learner.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	page, err := env.discovery.ListPopular(ctx, types.PageRequest{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(page.Content) != 2 {
		t.Fatalf("expected 2 plans got %d", len(page.Content))
	}
	if page.Content[0].ID != busy.ID {
		t.Fatalf("expected busiest plan first")
	}
}

func TestDiscoveryPagination_ReportsTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustCreateUser(t)
	for i := 0; i < 5; i++ {
		env.mustCreatePlan(t, owner.ID, types.VisibilityPublic, 0)
	}

	page, err := env.discovery.ListRecent(ctx, types.PageRequest{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if page.TotalElements != 5 {
		t.Fatalf("expected total 5 got %d", page.TotalElements)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages got %d", page.TotalPages)
	}
	if len(page.Content) != 2 {
		t.Fatalf("expected 2 items got %d", len(page.Content))
	}
}
