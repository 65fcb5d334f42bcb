package ports

import (
	"context"

	"github.com/99minutos/postboard/internal/core/domain"
)

// UserRepository persists user accounts. Lookups return domain.ErrUserNotFound
// when nothing matches; Create returns domain.ErrDuplicateUsername or
// domain.ErrDuplicateEmail on a unique violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
