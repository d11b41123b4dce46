package repository

import (
	"context"
	"errors"

	"github.com/staylist/staylist-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	SetRefreshToken(ctx context.Context, id, token string) error
}

type Hotels interface {
	Create(ctx context.Context, h models.Hotel) (models.Hotel, error)
	GetByID(ctx context.Context, id string) (models.Hotel, error)
	GetWithOwner(ctx context.Context, id string) (models.HotelWithOwner, error)
	List(ctx context.Context, limit, offset int) ([]models.Hotel, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, query string) ([]models.Hotel, error)
	Update(ctx context.Context, h models.Hotel) (models.Hotel, error)
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
