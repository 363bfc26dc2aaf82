package services

import (
	"context"
	"testing"

	"github.com/skillloop/skillloop-backend/internal/apperrors"
	"github.com/skillloop/skillloop-backend/internal/requestdata"
)

func TestAuth_RegisterLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterInput{
		Username: "gopher",
		Email:    "Gopher@Example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "gopher@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "supersecret" {
		t.Fatalf("password stored in cleartext")
	}

	loggedIn, pair, err := env.auth.Login(ctx, LoginInput{Email: "gopher@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("logged in as wrong user")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("missing tokens")
	}

	ctxWithUser, err := env.auth.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := requestdata.GetRequestData(ctxWithUser)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data not populated")
	}
}

func TestAuth_RegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Register(ctx, RegisterInput{Username: "a", Email: "dup@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := env.auth.Register(ctx, RegisterInput{Username: "b", Email: "dup@example.com", Password: "supersecret"})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuth_LoginWrongPasswordRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Register(ctx, RegisterInput{Username: "c", Email: "c@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := env.auth.Login(ctx, LoginInput{Email: "c@example.com", Password: "wrong-password"})
	if !apperrors.IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestAuth_RefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Register(ctx, RegisterInput{Username: "d", Email: "d@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, pair, err := env.auth.Login(ctx, LoginInput{Email: "d@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := env.auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token not rotated")
	}
	// The old refresh token is spent.
	if _, err := env.auth.Refresh(ctx, pair.RefreshToken); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for spent token, got %v", err)
	}
}

func TestAuth_LogoutInvalidatesRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterInput{Username: "e", Email: "e@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, pair, err := env.auth.Login(ctx, LoginInput{Email: "e@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := env.auth.Logout(ctx, user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := env.auth.Refresh(ctx, pair.RefreshToken); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found after logout, got %v", err)
	}
}
