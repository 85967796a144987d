package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tdsc_backend/internal/common"
	"tdsc_backend/internal/common/security"
	"tdsc_backend/internal/domain/model"
	"tdsc_backend/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AuthService struct {
	userRepo repository.UserRepository
	issuer   *security.TokenIssuer
	validate *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, issuer *security.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		validate: validator.New(),
	}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.Errorf("invalid signup payload: %v: %w", err, common.ErrValidation)
	}

	// Duplicate checks report which field collided, email first. The unique
	// indexes remain the backstop for concurrent signups.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		zerolog.Ctx(ctx).Info().Str("email", req.Email).Msg("signup rejected: email already registered")
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		zerolog.Ctx(ctx).Info().Str("username", req.Username).Msg("signup rejected: username taken")
		return nil, common.ErrDuplicateUsername
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user signed up")
	return s.respondWithToken(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.Errorf("invalid login payload: %v: %w", err, common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same error as a wrong password, so callers cannot probe for
			// registered addresses.
			zerolog.Ctx(ctx).Info().Str("email", req.Email).Msg("login failed: unknown email")
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		zerolog.Ctx(ctx).Info().Str("email", req.Email).Msg("login failed: wrong password")
		return nil, common.ErrInvalidCredentials
	}

	zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user logged in")
	return s.respondWithToken(user)
}

func (s *AuthService) Lookup(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *AuthService) respondWithToken(user *model.User) (*AuthResponse, error) {
	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = "" // Clear before returning
	return &AuthResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}
