package services

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// Tokens issues and verifies signed tokens.
type Tokens interface {
	IssueAccessToken(subject string) (string, error)
	IssueRefreshToken(subject string) (string, error)
	Verify(raw string, kind auth.TokenKind) (string, error)
}

// Hasher hashes and checks passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Check(hash, plain string) (bool, error)
}

// SignupInput is the registration payload. IsActive is accepted and stored
// but gates nothing; staff status can never be self-assigned.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive bool   `json:"is_active"`
}

func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 25)),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 70), is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 72)),
	)
}

type LoginInput struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UsernameOrEmail, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// TokenPair is returned by Login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService is the credential store plus token issuance.
type AuthService struct {
	store  repositories.Store
	tokens Tokens
	hasher Hasher
}

func NewAuthService(store repositories.Store, tokens Tokens, hasher Hasher) *AuthService {
	return &AuthService{store: store, tokens: tokens, hasher: hasher}
}

// Register creates a non-staff user. Email uniqueness is checked before
// username uniqueness.
func (s *AuthService) Register(ctx context.Context, in SignupInput) (models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, invalid(errs)
	}

	taken, err := s.store.Users().EmailExists(ctx, in.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return models.User{}, ErrDuplicateEmail
	}

	taken, err = s.store.Users().UsernameExists(ctx, in.Username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return models.User{}, ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		IsActive: in.IsActive,
	}
	if err := s.store.Users().Create(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate matches username or email in one lookup. A missing user and
// a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, usernameOrEmail, password string) (models.User, error) {
	user, err := s.store.Users().FindByLogin(ctx, usernameOrEmail)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Check(user.Password, password)
	if err != nil {
		return models.User{}, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return models.User{}, ErrInvalidCredentials
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// Login authenticates and issues an access/refresh pair for the username.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (TokenPair, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return TokenPair{}, invalid(errs)
	}

	user, err := s.Authenticate(ctx, in.UsernameOrEmail, in.Password)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := s.tokens.IssueAccessToken(user.Username)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// subject must still resolve to a user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	subject, err := s.tokens.Verify(refreshToken, auth.RefreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	if _, err := NewIdentityResolver(s.store).Resolve(ctx, subject); err != nil {
		return "", err
	}

	return s.tokens.IssueAccessToken(subject)
}

// IdentityResolver maps a verified token subject to a user.
type IdentityResolver struct {
	store repositories.Store
}

func NewIdentityResolver(store repositories.Store) *IdentityResolver {
	return &IdentityResolver{store: store}
}

// Resolve looks the subject up by exact username. A missing user is
// ErrUserNotFound, distinct from ErrInvalidToken.
func (r *IdentityResolver) Resolve(ctx context.Context, subject string) (*models.User, error) {
	user, err := r.store.Users().FindByUsername(ctx, subject)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", subject, err)
	}
	return &user, nil
}

// Promote grants staff to an existing user. Used by the CLI to bootstrap
// the first staff account.
func (s *AuthService) Promote(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		u, err := r.Users().FindByUsername(ctx, username)
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		u.IsStaff = true
		u.IsActive = true
		if err := r.Users().Update(ctx, &u); err != nil {
			return err
		}
		user = u
		return nil
	})
	return user, err
}
