package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/repository"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService 管理员登录校验
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	EnsureAdmin(ctx context.Context, username, password, displayName string) error
}

type authService struct {
	users repository.UserRepository
	cost  int
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users, cost: bcrypt.DefaultCost}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// EnsureAdmin 写入或更新配置中的管理员账号；密码为空时跳过
func (s *authService) EnsureAdmin(ctx context.Context, username, password, displayName string) error {
	if username == "" || password == "" {
		logger.Warn("admin account not configured, sign-in disabled until one exists")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	if err := s.users.Upsert(ctx, &model.User{Username: username, PasswordHash: string(hash), DisplayName: displayName}); err != nil {
		return err
	}
	logger.Info("admin account ensured", zap.String("username", username))
	return nil
}
