package services

import (
	"context"
	"errors"

	"resqall/internal/core/domain"
	"resqall/internal/core/session"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Validation messages shown inline on the registration form
const (
	MsgPasswordMismatch = "Passwords don't match"
	MsgUsernameTooShort = "Username must be at least 3 characters"
)

// AuthService handles login, registration and logout against a session store
type AuthService struct {
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(logger *zap.Logger) *AuthService {
	return &AuthService{
		validate: validator.New(),
		logger:   logger,
	}
}

// LoginInput represents login input.
// Password is collected by the form but never verified.
type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterInput represents registration input
type RegisterInput struct {
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"eqfield=Password"`
	Username        string `json:"username" form:"username" validate:"min=3"`
	Email           string `json:"email" form:"email"`
	IsVolunteer     bool   `json:"is_volunteer" form:"is_volunteer"`
}

// Login makes the directory identity for input.Email current in store
func (s *AuthService) Login(ctx context.Context, store *session.Store, input *LoginInput) (domain.Identity, error) {
	identity, err := store.Login(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrLookupFailure) {
			s.logger.Error("Login failed", zap.Error(err))
		}
		return domain.Identity{}, err
	}
	return identity, nil
}

// Register validates input and makes a new identity current in store
func (s *AuthService) Register(_ context.Context, store *session.Store, input *RegisterInput) (domain.Identity, error) {
	if err := s.Validate(input); err != nil {
		return domain.Identity{}, err
	}

	identity, err := store.Register(input.Username, input.Email, input.IsVolunteer)
	if err != nil {
		s.logger.Error("Register failed", zap.Error(err))
		return domain.Identity{}, err
	}
	return identity, nil
}

// Logout clears the identity held by store
func (s *AuthService) Logout(store *session.Store) error {
	if err := store.Logout(); err != nil {
		s.logger.Error("Logout failed", zap.Error(err))
		return err
	}
	return nil
}

// Validate checks registration input and returns a *domain.ValidationError
// carrying the first failing rule's message
func (s *AuthService) Validate(input *RegisterInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &domain.ValidationError{Message: err.Error()}
	}

	switch fieldErrs[0].Field() {
	case "ConfirmPassword":
		return &domain.ValidationError{Message: MsgPasswordMismatch}
	case "Username":
		return &domain.ValidationError{Message: MsgUsernameTooShort}
	default:
		return &domain.ValidationError{Message: fieldErrs[0].Error()}
	}
}
