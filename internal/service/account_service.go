package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// AccountService coordinates signup, login, logout and profile updates.
type AccountService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// AccountDependencies bundles requirements for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: deps.Dispatcher,
	}
}

// SignupInput describes a new account request.
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	Gender      domain.Gender
	Country     string
	City        string
	CompanyName string
}

// UpdateProfileInput describes a profile mutation. Empty fields are left
// unchanged. Email is carried only so it can be rejected: it is immutable
// after signup.
type UpdateProfileInput struct {
	UserID      string
	Name        string
	Password    string
	Gender      domain.Gender
	Country     string
	City        string
	CompanyName string
	Email       string
}

// Signup creates a new account. The email must not already be registered.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("Email already in use")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Gender:       input.Gender,
		Country:      input.Country,
		City:         input.City,
		CompanyName:  input.CompanyName,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		SubjectID: user.ID.String(),
		Payload:   events.UserRegisteredPayload{Email: user.Email, Gender: user.Gender},
	})
	return user, nil
}

// Login verifies credentials and issues a session token. The fresh token
// replaces whatever token was on record: only one session slot exists per
// user. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
		}
		return "", time.Time{}, err
	}

	if !user.IsActive {
		return "", time.Time{}, apperrors.NewForbidden("Account is deactivated.")
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Invalid email or password")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID.String())
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.users.SetSessionToken(ctx, user.ID, &token, user.IsActive); err != nil {
		return "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserLoggedIn,
		SubjectID: user.ID.String(),
		Payload:   events.SessionPayload{Email: user.Email, ExpiresAt: expiresAt},
	})
	return token, expiresAt, nil
}

// Logout clears the session slot and deactivates the account. The second
// call for the same user lands on the "already logged out" branch, so the
// operation is idempotent after the first call.
func (s *AccountService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewBadRequest("Invalid credentials")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("Invalid credentials")
		}
		return err
	}

	if !user.HasSession() {
		return apperrors.NewBadRequest("Already logged out")
	}

	if err := s.users.SetSessionToken(ctx, user.ID, nil, false); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserLoggedOut,
		SubjectID: user.ID.String(),
		Payload:   events.SessionPayload{Email: user.Email},
	})
	return nil
}

// UpdateProfile mutates the non-identity fields of an account. Provided
// fields overwrite; empty ones are left alone. A payload carrying an email
// is rejected outright.
func (s *AccountService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if input.Email != "" {
		return nil, apperrors.NewBadRequest("Email cannot be updated")
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}

	if user.IsDeleted {
		return nil, apperrors.NewForbidden("User deleted")
	}
	if !user.IsActive {
		return nil, apperrors.NewForbidden("User inactive")
	}

	if len(input.Name) > 30 {
		return nil, apperrors.NewBadRequest("Name length exceeded")
	}
	if len(input.CompanyName) > 64 {
		return nil, apperrors.NewBadRequest("Company name length exceeded")
	}
	if input.Gender != "" && !validGender(input.Gender) {
		return nil, apperrors.NewBadRequest("Invalid gender value")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Country != "" {
		user.Country = input.Country
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.CompanyName != "" {
		user.CompanyName = input.CompanyName
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventProfileUpdated,
		SubjectID: user.ID.String(),
	})
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func validGender(g domain.Gender) bool {
	for _, known := range domain.Genders {
		if g == known {
			return true
		}
	}
	return false
}
