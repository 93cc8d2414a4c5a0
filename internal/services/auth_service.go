package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"igames/internal/apperror"
	"igames/internal/auth"
	"igames/internal/models"
	"igames/internal/repositories"
)

const invalidCredentials = "Invalid email or password"

// EventPublisher receives account lifecycle events. A nil publisher disables events.
type EventPublisher interface {
	PublishAccountEvent(event models.AccountEvent) error
}

// dummyHash is compared against when the email is unknown so both login failures cost one bcrypt run.
var dummyHash, _ = auth.HashPassword("igames-dummy-password")

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService handles registration, login and bearer token resolution.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *auth.Tokens
	events   EventPublisher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *auth.Tokens, events EventPublisher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		events:   events,
	}
}

// Register creates an account and returns it with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := models.NormalizeEmail(in.Email)

	// Fast path only; the unique index on email is authoritative.
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", apperror.Conflict("Email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", apperror.Internal(err)
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    email,
		Password: hashed,
		Wishlist: []string{},
		Cart:     []string{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, "", apperror.Conflict("Email already exists")
		}
		return nil, "", apperror.Internal(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	s.publish(models.EventUserRegistered, user)
	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", apperror.Internal(err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.Password
	}
	if !auth.VerifyPassword(password, hash) || user == nil {
		return nil, "", apperror.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return nil, apperror.Unauthorized("Unauthorized")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (s *AuthService) publish(eventType string, user *models.User) {
	publishAccountEvent(s.events, eventType, user)
}

func publishAccountEvent(events EventPublisher, eventType string, user *models.User) {
	if events == nil {
		return
	}
	event := models.AccountEvent{
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}
	if err := events.PublishAccountEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for user %s: %v", eventType, user.ID, err)
	}
}
