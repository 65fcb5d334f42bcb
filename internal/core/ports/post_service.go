package ports

import (
	"context"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/pkg/pagination"
)

// CreatePostInput carries the fields of a new post. OwnerID is the session user.
type CreatePostInput struct {
	OwnerID int64
	Title   string
	Text    string
}

// PostService defines the post use cases. GetPost and UpdatePost return a nil
// post, not an error, when the id does not exist.
type PostService interface {
	ListPosts(ctx context.Context, index, limit int) (*pagination.Result[domain.Post], error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	CreatePost(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, id int64, changes PostChanges) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) (bool, error)
}
