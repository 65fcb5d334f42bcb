package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/metrics"
	"github.com/99minutos/postboard/internal/pkg/pagination"
)

type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

var _ ports.PostService = (*PostService)(nil)

// ListPosts returns page index of size limit, newest posts first.
func (s *PostService) ListPosts(ctx context.Context, index, limit int) (*pagination.Result[domain.Post], error) {
	start := time.Now()
	res, err := pagination.Paginate(ctx, s.repo.Newest(), index, limit)
	metrics.PaginationDuration.WithLabelValues("posts").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return res, nil
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrPostNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	post, err := s.repo.Create(ctx, &domain.Post{
		Title:  in.Title,
		Text:   in.Text,
		UserID: in.OwnerID,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", in.OwnerID).Msg("failed to create post")
		return nil, err
	}

	metrics.PostMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Int64("post_id", post.ID).Int64("user_id", in.OwnerID).Msg("post created")
	return post, nil
}

// UpdatePost applies changes and returns the updated post, or nil when the
// id does not exist.
func (s *PostService) UpdatePost(ctx context.Context, id int64, changes ports.PostChanges) (*domain.Post, error) {
	post, err := s.repo.Update(ctx, id, changes)
	if errors.Is(err, domain.ErrPostNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	metrics.PostMutationsTotal.WithLabelValues("update").Inc()
	return post, nil
}

// DeletePost removes the post. Deleting a missing post still reports true.
func (s *PostService) DeletePost(ctx context.Context, id int64) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}

	metrics.PostMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Int64("post_id", id).Msg("post deleted")
	return true, nil
}
