package ports

import (
	"context"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/pkg/pagination"
)

// PostChanges carries the optional fields of a post update.
type PostChanges struct {
	Title *string
}

// PostRepository persists posts. FindByID and Update return
// domain.ErrPostNotFound when the id does not exist.
type PostRepository interface {
	// Newest is every post, most recently created first.
	Newest() pagination.Source[domain.Post]
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id int64, changes PostChanges) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}
