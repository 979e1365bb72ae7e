package service

import (
	"context"
	"log/slog"

	"github.com/bookclubapp/bookclub-server/internal/auth"
	"github.com/bookclubapp/bookclub-server/internal/domain"
	"github.com/bookclubapp/bookclub-server/internal/errors"
	"github.com/bookclubapp/bookclub-server/internal/id"
	"github.com/bookclubapp/bookclub-server/internal/store"
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=1024"`
	DisplayName string `json:"display_name" validate:"required"`
	PhotoURL    string `json:"photo_url"`
	Description string `json:"description"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and the authenticated user.
type AuthResponse struct {
	User        domain.UserRef `json:"user"`
	AccessToken string         `json:"access_token"`
}

// Register creates a new user account. Missing profile fields fall back to
// the placeholder photo and description.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Internal("failed to hash password").WithCause(err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, errors.Internal("failed to generate user ID").WithCause(err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PhotoURL:     req.PhotoURL,
		Description:  req.Description,
		PasswordHash: passwordHash,
	}
	if user.PhotoURL == "" {
		user.PhotoURL = domain.DefaultPhotoURL
	}
	if user.Description == "" {
		user.Description = domain.DefaultDescription
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Internal("failed to issue access token").WithCause(err)
	}

	s.logger.Info("user registered", "user_id", userID)
	return &AuthResponse{User: user.Ref(), AccessToken: token}, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.InvalidCredentials("invalid email or password")
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, errors.Internal("failed to verify password").WithCause(err)
	}
	if !ok {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Internal("failed to issue access token").WithCause(err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResponse{User: user.Ref(), AccessToken: token}, nil
}

// VerifyAccessToken validates a token and returns its claims. Invalid or
// expired tokens always produce an explicit unauthenticated error.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.AccessClaims, error) {
	return s.tokenService.VerifyAccessToken(tokenString)
}
