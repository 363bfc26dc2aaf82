package types

import (
	"testing"
	"time"
)

func TestRecomputeProgress_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		completed int
		total     int
		want      int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 6, 17},
		{1, 2, 50},
		{5, 2, 250},
	}
	for _, tc := range cases {
		e := PlanEnrollment{CompletedTopics: tc.completed, TotalTopics: tc.total}
		e.RecomputeProgress(time.Now())
		if e.ProgressPercentage != tc.want {
			t.Fatalf("%d/%d: expected %d got %d", tc.completed, tc.total, tc.want, e.ProgressPercentage)
		}
	}
}

func TestRecomputeProgress_ZeroTotalIsZeroPercent(t *testing.T) {
	e := PlanEnrollment{CompletedTopics: 4, TotalTopics: 0, ProgressPercentage: 77}
	e.RecomputeProgress(time.Now())
	if e.ProgressPercentage != 0 {
		t.Fatalf("expected 0%% got %d%%", e.ProgressPercentage)
	}
}

func TestRecomputeProgress_StampsLastActivity(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := PlanEnrollment{CompletedTopics: 1, TotalTopics: 2}
	e.RecomputeProgress(now)
	if !e.LastActivityDate.Equal(now) {
		t.Fatalf("lastActivityDate not stamped: %v", e.LastActivityDate)
	}
}
