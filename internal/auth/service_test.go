package auth

import (
	"context"
	"errors"
	"testing"
)

func newTestService(t *testing.T) (*Service, *InMemoryStore) {
	t.Helper()
	tokens, err := NewTokenService([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	store := NewInMemoryStore()
	return NewService(store, tokens), store
}

func TestSignupCreatesUserRecord(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Signup(context.Background(), SignupInput{
		Username: "u1",
		Email:    "e1@x.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Role != RoleUser {
		t.Fatalf("expected default user role, got %q", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "pw" {
		t.Fatalf("password was not hashed")
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Username: "u1", Email: "e1@x.com", Password: "pw"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	// Same email, different username.
	if _, err := svc.Signup(ctx, SignupInput{Username: "u2", Email: "e1@x.com", Password: "pw"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused email, got %v", err)
	}
	// Same username, different email.
	if _, err := svc.Signup(ctx, SignupInput{Username: "u1", Email: "e2@x.com", Password: "pw"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused username, got %v", err)
	}
}

func TestSignupRequiresAllFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []SignupInput{
		{Username: "", Email: "e@x.com", Password: "pw"},
		{Username: "u", Email: "", Password: "pw"},
		{Username: "u", Email: "e@x.com", Password: ""},
		{Username: "   ", Email: "e@x.com", Password: "pw"},
	}
	for _, in := range cases {
		if _, err := svc.Signup(ctx, in); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", in, err)
		}
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	tokens, err := NewTokenService([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	svc := NewService(NewInMemoryStore(), tokens)
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{Username: "u1", Email: "e1@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	res, err := svc.Login(ctx, LoginInput{Email: "e1@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.User.Role != RoleUser || res.User.ID != user.ID {
		t.Fatalf("unexpected user view: %+v", res.User)
	}

	claims, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != RoleUser {
		t.Fatalf("claims do not match record: %+v", claims)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Username: "u1", Email: "e1@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "e1@x.com", Password: "wrongpw"}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "pw"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "", Password: "pw"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}
