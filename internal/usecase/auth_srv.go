package usecase

import (
	"context"
	"fmt"
	"strings"

	"cinema-boxoffice/internal/data/repository"
	"cinema-boxoffice/internal/dto/request"
	"cinema-boxoffice/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the admin login gate. It only toggles the isAdmin flag.
type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) error
	Logout(ctx context.Context) error
	IsAdmin(ctx context.Context) (bool, error)
}

type authService struct {
	repo         repository.AuthRepository
	passwordHash string
	log          *zap.Logger
}

func NewAuthService(repo repository.AuthRepository, config utils.AdminConfig, log *zap.Logger) AuthService {
	return &authService{
		repo:         repo,
		passwordHash: config.PasswordHash,
		log:          log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	if s.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
			s.log.Warn("Login rejected", zap.String("email", req.Email))
			return fmt.Errorf("%w: invalid email or password", utils.ErrUnauthorized)
		}
	}

	if err := s.repo.SetAdmin(ctx, true); err != nil {
		return fmt.Errorf("login %s: %w", req.Email, err)
	}

	s.log.Info("Admin logged in", zap.String("email", req.Email))
	return nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.repo.SetAdmin(ctx, false); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *authService) IsAdmin(ctx context.Context) (bool, error) {
	return s.repo.IsAdmin(ctx)
}
