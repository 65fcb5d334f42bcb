package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/pagination"
)

const newestFirst = "created_at DESC, id DESC"

// PostRepository implements ports.PostRepository using GORM.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) ports.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Newest() pagination.Source[domain.Post] {
	return pagination.Map(pagination.FromGorm[PostModel](r.db, newestFirst), toPost)
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	m := fromPost(post)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	p := toPost(m)
	return &p, nil
}

// Update applies changes and returns the post as stored afterwards. The
// read-back is pinned to the primary so a lagging replica cannot return the
// old row.
func (r *PostRepository) Update(ctx context.Context, id int64, changes ports.PostChanges) (*domain.Post, error) {
	db := r.db.WithContext(ctx)

	if changes.Title != nil {
		res := db.Model(&PostModel{}).
			Where("id = ?", id).
			Updates(map[string]any{"title": *changes.Title, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return nil, errors.Wrap(res.Error, "update post")
		}
		if res.RowsAffected == 0 {
			return nil, errors.WithStack(domain.ErrPostNotFound)
		}
	}

	return r.find(db.Clauses(dbresolver.Write), id)
}

// Delete removes the post. Deleting a missing id is not an error.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&PostModel{}, id).Error; err != nil {
		return errors.Wrap(err, "delete post")
	}
	return nil
}

func (r *PostRepository) find(db *gorm.DB, id int64) (*domain.Post, error) {
	var m PostModel
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(domain.ErrPostNotFound)
		}
		return nil, errors.Wrap(err, "find post")
	}
	p := toPost(m)
	return &p, nil
}
