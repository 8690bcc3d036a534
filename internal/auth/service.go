package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service orchestrates signup and login on top of the credential store and
// token service. All dependencies are injected; Service holds no mutable
// state and is safe for concurrent use.
type Service struct {
	store  CredentialStore
	tokens *TokenService
}

func NewService(store CredentialStore, tokens *TokenService) *Service {
	return &Service{store: store, tokens: tokens}
}

// SignupInput carries the raw signup fields.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries the raw login fields.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult bundles the issued session token with the public user view.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      PublicUser
}

// Signup registers a new identity record with the default user role. The
// uniqueness pre-check catches the common case; the store's unique
// constraint remains authoritative for concurrent signups.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.store.FindByEmailOrUsername(ctx, email, username); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := VerifyPassword(user.PasswordHash, in.Password); err != nil {
		return nil, ErrInvalidPassword
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}
