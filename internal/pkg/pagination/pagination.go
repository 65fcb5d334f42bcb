// Package pagination turns a 1-based page index and a page size into a bounded
// window read plus navigation metadata, for any countable, ordered source.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidWindow is returned when index or limit is below 1, or when the
// window would start beyond the largest representable offset.
var ErrInvalidWindow = errors.New("pagination: index and limit must be at least 1")

// Source is an ordered, countable collection that can be read in windows.
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	Window(ctx context.Context, offset, limit int) ([]T, error)
}

// Meta is the navigation block of a page. Previous and Next are nil when
// there is no such page.
type Meta struct {
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	Current  int   `json:"current"`
	Previous *int  `json:"previous"`
	Next     *int  `json:"next"`
	Index    int   `json:"index"`
}

// Result is one page of items.
type Result[T any] struct {
	Data []T  `json:"data"`
	Page Meta `json:"page"`
}

// ValidWindow reports whether index and limit describe a window whose end,
// offset plus limit, fits in an int.
func ValidWindow(index, limit int) bool {
	if index < 1 || limit < 1 {
		return false
	}
	return index-1 <= (math.MaxInt-limit)/limit
}

// Offset is the number of records skipped before page index. It assumes
// ValidWindow(index, limit).
func Offset(index, limit int) int {
	return (index - 1) * limit
}

// NewMeta derives navigation metadata from the requested window and the total.
func NewMeta(index, limit int, total int64) Meta {
	m := Meta{
		Limit:   limit,
		Total:   total,
		Current: index,
		Index:   index,
	}
	if index > 1 {
		prev := index - 1
		m.Previous = &prev
	}
	if total > int64(Offset(index, limit)+limit) {
		next := index + 1
		m.Next = &next
	}
	return m
}

// Paginate reads page index of size limit from src. The count and the window
// are read concurrently; a total that moves between the two reads is accepted.
func Paginate[T any](ctx context.Context, src Source[T], index, limit int) (*Result[T], error) {
	if !ValidWindow(index, limit) {
		return nil, ErrInvalidWindow
	}

	var (
		total int64
		items []T
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := src.Count(gctx)
		if err != nil {
			return fmt.Errorf("paginate count: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		rows, err := src.Window(gctx, Offset(index, limit), limit)
		if err != nil {
			return fmt.Errorf("paginate window: %w", err)
		}
		items = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}
	return &Result[T]{Data: items, Page: NewMeta(index, limit, total)}, nil
}

type mappedSource[M, T any] struct {
	src Source[M]
	fn  func(M) T
}

// Map adapts a Source of M into a Source of T, converting each windowed row.
func Map[M, T any](src Source[M], fn func(M) T) Source[T] {
	return &mappedSource[M, T]{src: src, fn: fn}
}

func (m *mappedSource[M, T]) Count(ctx context.Context) (int64, error) {
	return m.src.Count(ctx)
}

func (m *mappedSource[M, T]) Window(ctx context.Context, offset, limit int) ([]T, error) {
	rows, err := m.src.Window(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, m.fn(r))
	}
	return out, nil
}
