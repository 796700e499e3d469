package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/giftlink/giftlink-api/internal/domain/entity"
	repo "github.com/giftlink/giftlink-api/internal/domain/repository"
	"github.com/giftlink/giftlink-api/pkg/helpers"
	"github.com/giftlink/giftlink-api/pkg/mailer"
	"github.com/giftlink/giftlink-api/pkg/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrMissingEmail       = errors.New("email not found in the request headers")
	ErrNoFieldsToUpdate   = errors.New("no valid fields to update")
	ErrUpdateFailed       = errors.New("failed to update user")
)

// ValidationError carries every accumulated field failure for one request.
type ValidationError struct {
	Failures []validation.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Failures))
}

// AuthService orchestrates the register, login and profile-update use cases.
// Pub is optional; when nil (or mail sending is disabled) no email jobs are
// enqueued.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewAuthService(userRepo repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:        userRepo,
		JWT:         jwt,
		Pub:         pub,
		Logger:      logger,
		MailEnabled: mailEnabled,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type RegisterResult struct {
	Email string
	Token string
}

type LoginResult struct {
	Token    string
	UserName string
	Email    string
}

type UpdateProfileResult struct {
	Token string
	User  *entity.User
}

// Register creates a user record with a hashed password and returns a fresh
// bearer token. The email lookup before insert keeps the original duplicate
// check; the unique index on users.email closes the remaining race, which
// surfaces here as ErrDuplicateEmail as well.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	failures := validation.Apply(validation.Register, map[string]string{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"email":     in.Email,
		"password":  in.Password,
	})
	if len(failures) > 0 {
		return nil, &ValidationError{Failures: failures}
	}

	email := strings.TrimSpace(in.Email)
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Password:  hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}

	s.enqueueEmail(ctx, u.Email, mailer.Welcome, map[string]any{
		"Name":  u.FirstName,
		"Email": u.Email,
	})

	if s.Logger != nil {
		s.Logger.WithField("email", u.Email).Info("user registered successfully")
	}
	return &RegisterResult{Email: u.Email, Token: token}, nil
}

// Login verifies credentials and returns a fresh bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	failures := validation.Apply(validation.Login, map[string]string{
		"email":    email,
		"password": password,
	})
	if len(failures) > 0 {
		return nil, &ValidationError{Failures: failures}
	}

	u, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !helpers.CompareHashAndPassword(u.Password, password) {
		if s.Logger != nil {
			s.Logger.WithField("email", u.Email).Warn("passwords do not match")
		}
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("email", u.Email).Info("user logged in successfully")
	}
	return &LoginResult{Token: token, UserName: u.FirstName, Email: u.Email}, nil
}

// UpdateProfile applies an allow-listed update set to the record identified
// by the email header. fields holds only the keys present in the request
// body; the "name" alias maps onto firstName when firstName is absent.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, fields map[string]string) (*UpdateProfileResult, error) {
	failures := validation.Apply(validation.UpdateProfile, fields)
	if len(failures) > 0 {
		return nil, &ValidationError{Failures: failures}
	}

	if strings.TrimSpace(email) == "" {
		return nil, ErrMissingEmail
	}

	if !s.JWT.SecretConfigured() {
		return nil, helpers.ErrMissingSecret
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	changed := false
	if v, ok := fields["firstName"]; ok {
		u.FirstName = strings.TrimSpace(v)
		changed = true
	} else if v, ok := fields["name"]; ok {
		u.FirstName = strings.TrimSpace(v)
		changed = true
	}
	if v, ok := fields["lastName"]; ok {
		u.LastName = strings.TrimSpace(v)
		changed = true
	}
	if !changed {
		return nil, ErrNoFieldsToUpdate
	}

	now := time.Now()
	u.UpdatedAt = &now
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUpdateFailed
		}
		return nil, err
	}

	// Read back the stored record so the response reflects the store's view.
	updated, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUpdateFailed
	}

	token, _, err := s.JWT.GenerateToken(updated.ID)
	if err != nil {
		return nil, err
	}

	s.enqueueEmail(ctx, updated.Email, mailer.ProfileUpdated, map[string]any{
		"Name":  updated.FirstName,
		"Email": updated.Email,
	})

	if s.Logger != nil {
		s.Logger.WithField("email", updated.Email).Info("user updated successfully")
	}
	return &UpdateProfileResult{Token: token, User: updated}, nil
}

func (s *AuthService) enqueueEmail(ctx context.Context, to, template string, data map[string]any) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("failed to publish email job")
	}
}
