package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"daytrip/internal/auth"
	"daytrip/internal/logging"
	"daytrip/internal/models"
	"daytrip/internal/quota"
)

// ErrEmailNotFound is returned by ForgotPassword for unknown addresses.
var ErrEmailNotFound = errors.New("email not registered")

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, reg models.Registration) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	CreateSession(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	SessionUser(ctx context.Context, jti string) (models.User, error)
	DeleteSession(ctx context.Context, jti string) error
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Tokens issues and verifies access tokens.
type Tokens interface {
	Issue(userID int64) (auth.Token, error)
	Parse(value string) (auth.Claims, error)
}

// Quota tracks per-user daily searches.
type Quota interface {
	Status(ctx context.Context, userID int64) (quota.Status, error)
	Use(ctx context.Context, userID int64) (quota.Status, error)
	Reset(ctx context.Context, userID int64) (quota.Status, error)
}

// Session is a signed-in user together with the token that identifies it.
type Session struct {
	User  models.User
	Token auth.Token
}

// Service exposes account and search quota workflows.
type Service interface {
	Register(ctx context.Context, reg models.Registration) (Session, error)
	Login(ctx context.Context, email, password string) (Session, quota.Status, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	SearchStatus(ctx context.Context, userID int64) (quota.Status, error)
	UseSearch(ctx context.Context, userID int64) (quota.Status, error)
	ResetSearch(ctx context.Context, userID int64) (quota.Status, error)
}

type service struct {
	store  Store
	tokens Tokens
	quota  Quota
}

// New wires a Service backed by the provided Store, token issuer and quota limiter.
func New(store Store, tokens Tokens, limiter Quota) Service {
	return &service{store: store, tokens: tokens, quota: limiter}
}

func (s *service) Register(ctx context.Context, reg models.Registration) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	reg.IsStaff = false
	user, err := s.store.CreateUser(ctx, reg)
	if err != nil {
		return Session{}, err
	}
	return s.openSession(ctx, user)
}

func (s *service) Login(ctx context.Context, email, password string) (Session, quota.Status, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, quota.Status{}, err
	}
	user, err := s.store.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, quota.Status{}, err
	}
	session, err := s.openSession(ctx, user)
	if err != nil {
		return Session{}, quota.Status{}, err
	}
	status, err := s.quota.Status(ctx, user.ID)
	if err != nil {
		return Session{}, quota.Status{}, err
	}
	return session, status, nil
}

func (s *service) openSession(ctx context.Context, user models.User) (Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	if err := s.store.CreateSession(ctx, token.ID, user.ID, token.ExpiresAt); err != nil {
		return Session{}, err
	}
	logging.WithContext(logging.WithUserID(ctx, user.ID)).Info().Msg("session opened")
	return Session{User: user, Token: token}, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	return s.store.DeleteSession(ctx, claims.ID)
}

// Authenticate resolves a bearer token to its user. The token must verify and
// its session must still exist.
func (s *service) Authenticate(ctx context.Context, token string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.store.SessionUser(ctx, claims.ID)
	if err != nil {
		return models.User{}, err
	}
	if user.ID != claims.UserID {
		return models.User{}, auth.ErrInvalidToken
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.UpdateProfile(ctx, userID, update)
}

func (s *service) EmailExists(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	return s.store.EmailExists(ctx, email)
}

// ForgotPassword only confirms the address is registered; no mail is sent.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	exists, err := s.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEmailNotFound
	}
	logging.WithContext(ctx).Info().Str("email", email).Msg("password reset requested")
	return nil
}

func (s *service) SearchStatus(ctx context.Context, userID int64) (quota.Status, error) {
	if err := ctx.Err(); err != nil {
		return quota.Status{}, err
	}
	return s.quota.Status(ctx, userID)
}

func (s *service) UseSearch(ctx context.Context, userID int64) (quota.Status, error) {
	if err := ctx.Err(); err != nil {
		return quota.Status{}, err
	}
	return s.quota.Use(ctx, userID)
}

func (s *service) ResetSearch(ctx context.Context, userID int64) (quota.Status, error) {
	if err := ctx.Err(); err != nil {
		return quota.Status{}, err
	}
	return s.quota.Reset(ctx, userID)
}
