package handler

import (
	"time"

	"github.com/99minutos/postboard/internal/pkg/pagination"
)

const (
	defaultPageLimit = 10
	defaultPageIndex = 1
)

// listPostsQuery is bound from the query string. Missing parameters keep
// the defaults set by newListPostsQuery.
type listPostsQuery struct {
	Limit int `query:"limit" validate:"min=1,max=100"`
	Index int `query:"index" validate:"min=1,max=10000000"`
}

func newListPostsQuery() listPostsQuery {
	return listPostsQuery{Limit: defaultPageLimit, Index: defaultPageIndex}
}

type createPostRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"  validate:"required"`
}

// updatePostRequest leaves the title untouched when it is omitted.
type updatePostRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type postPageResponse struct {
	Data []postResponse  `json:"data"`
	Page pagination.Meta `json:"page"`
}
