package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hamzazerouala/windevexpert/internal/auth/domain"
	"github.com/hamzazerouala/windevexpert/internal/auth/password"
	"github.com/hamzazerouala/windevexpert/internal/config"
	"github.com/hamzazerouala/windevexpert/internal/token"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	secret   string
	tokenTTL time.Duration

	// adminEmail/adminPassword come from configuration, not the user
	// store; checked before any database access.
	adminEmail    string
	adminPassword string
}

func New(log *zap.Logger, repo domain.Repository, cfg config.Config) domain.Service {
	s := &Service{
		log:      log.Named("auth.service"),
		repo:     repo,
		secret:   cfg.JWTSecret,
		tokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}
	if email, pass, found := strings.Cut(cfg.AdminAuth, ":"); found {
		s.adminEmail = email
		s.adminPassword = pass
	}
	return s
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.adminEmail != "" && req.Email == s.adminEmail && req.Password == s.adminPassword {
		signed, err := token.Issue("admin", domain.RoleAdmin, s.secret, s.tokenTTL)
		if err != nil {
			return nil, err
		}
		s.log.Info("admin bypass login")
		return &domain.LoginResult{Token: signed}, nil
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	signed, err := token.Issue(user.ID.String(), role, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{Token: signed}, nil
}

func (s *Service) CurrentUser(ctx context.Context, subject string) (*domain.User, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", errors.New("email is empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}
