package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
)

// UserRepository implements ports.UserRepository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and returns it with the generated id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := fromUser(user)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if conflict := userConflict(err); conflict != nil {
			return nil, errors.WithStack(conflict)
		}
		return nil, errors.Wrap(err, "create user")
	}
	return toUser(m), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "find user by id", "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "find user by username", "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "find user by email", "email = ?", email)
}

// UpdatePassword replaces the stored hash. It returns domain.ErrUserNotFound
// when no row has the id.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"password": passwordHash, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return errors.Wrap(res.Error, "update user password")
	}
	if res.RowsAffected == 0 {
		return errors.WithStack(domain.ErrUserNotFound)
	}
	return nil
}

func (r *UserRepository) first(ctx context.Context, op string, query string, arg any) (*domain.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(domain.ErrUserNotFound)
		}
		return nil, errors.Wrap(err, op)
	}
	return toUser(m), nil
}
