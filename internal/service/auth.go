package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/nexus-shop/internal/domain/models"
	security "github.com/linemk/nexus-shop/internal/jwt-new"
	"github.com/linemk/nexus-shop/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

type AuthServiceInterface interface {
	Login(ctx context.Context, email string) (*models.User, string, error)
}

// Login осуществляет демо-аутентификацию по одному только email.
// Пароль не проверяется — пользователи фиксированы, механизм не является защитным.
// Если email не из демо-набора, возвращается ErrInvalidCredentials,
// никакое состояние при этом не меняется
func (a *AuthService) Login(ctx context.Context, email string) (*models.User, string, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("unknown email")
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	// Генерация JWT-токена. Функция security.NewToken внутри сама загружает секрет из переменной окружения JWT_SECRET.
	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.String("userID", user.ID))
	return user, token, nil
}
