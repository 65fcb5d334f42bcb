package handler

import (
	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/pagination"
)

// --- Request → Service input ---

func toCreatePostInput(req createPostRequest, ownerID int64) ports.CreatePostInput {
	return ports.CreatePostInput{
		OwnerID: ownerID,
		Title:   req.Title,
		Text:    req.Text,
	}
}

func toPostChanges(req updatePostRequest) ports.PostChanges {
	return ports.PostChanges{Title: req.Title}
}

// --- Service result → HTTP response ---

// toPostResponse returns nil for a nil post so the body encodes as null.
func toPostResponse(p *domain.Post) *postResponse {
	if p == nil {
		return nil
	}
	return &postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Text:      p.Text,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func toPostPageResponse(r *pagination.Result[domain.Post]) postPageResponse {
	data := make([]postResponse, 0, len(r.Data))
	for i := range r.Data {
		data = append(data, *toPostResponse(&r.Data[i]))
	}
	return postPageResponse{Data: data, Page: r.Page}
}
