package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
	"taskboard/internal/domain/services"
)

type authService struct {
	userRepo repositories.UserRepository
	issuer   auth.TokenIssuer
	logger   *slog.Logger
}

// NewAuthService creates an account and credential service
func NewAuthService(
	userRepo repositories.UserRepository,
	issuer auth.TokenIssuer,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResult, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Username, validation.Required, validation.Length(config.MinUsernameLength, 0)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(config.MinPasswordLength, 0)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		return nil, &domain.ConflictError{Message: "user with this email or username already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	return &services.AuthResult{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResult, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same message as a wrong password so the response does not
			// reveal which accounts exist.
			return nil, &domain.UnauthorizedError{Message: "invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &domain.UnauthorizedError{Message: "invalid credentials"}
	}

	if user.Status != models.UserStatusActive {
		return nil, &domain.UnauthorizedError{Message: "account is deactivated"}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the stamp is informational.
		s.logger.Warn("failed to stamp last login", "user_id", user.ID, "error", err)
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &services.AuthResult{Token: token, User: user}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *services.ChangePasswordRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.OldPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required, validation.Length(config.MinPasswordLength, 0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	// GetByID omits the hash; reload by email for the credential check.
	withHash, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(withHash.PasswordHash), []byte(req.OldPassword)); err != nil {
		return &domain.ValidationError{Message: "old password is incorrect"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
