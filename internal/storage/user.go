package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/linemk/nexus-shop/internal/domain/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserStorage описывает методы для работы с пользователями.
// Набор пользователей фиксированный (демо), регистрации нет
type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type userRepository struct {
	mu    sync.RWMutex
	users []*models.User
}

func NewUserRepository(seed []*models.User) *userRepository {
	return &userRepository{users: seed}
}

// GetUserByEmail ищет пользователя без учёта регистра email
func (r *userRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.ToLower(u.Email) == normalized {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepository) CountUsers(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
