package services

import (
	"context"
	"testing"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
)

func TestGetByUsername_FindsUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustCreateUser(t)

	found, err := env.users.GetByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, found.ID)
	}

	padded, err := env.users.GetByUsername(ctx, "  "+user.Username+"  ")
	if err != nil {
		t.Fatalf("get by padded username: %v", err)
	}
	if padded.ID != user.ID {
		t.Fatalf("padded lookup resolved to %s", padded.ID)
	}
}

func TestGetByUsername_UnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetByUsername(context.Background(), "nobody-here")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
