package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/pagination"
)

func samplePost(id int64) *domain.Post {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Post{ID: id, Title: "title", Text: "text", UserID: 7, CreatedAt: ts, UpdatedAt: ts}
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func TestPostHandler_List_Defaults(t *testing.T) {
	stub := &stubPostService{
		listFn: func(ctx context.Context, index, limit int) (*pagination.Result[domain.Post], error) {
			if index != 1 || limit != 10 {
				t.Fatalf("expected defaults index=1 limit=10, got %d %d", index, limit)
			}
			return &pagination.Result[domain.Post]{
				Data: []domain.Post{*samplePost(2), *samplePost(1)},
				Page: pagination.NewMeta(index, limit, 2),
			}, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newContext(http.MethodGet, "/posts", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp postPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].ID != 2 {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.Page.Current != 1 || resp.Page.Previous != nil || resp.Page.Next != nil || resp.Page.Total != 2 {
		t.Fatalf("unexpected page: %+v", resp.Page)
	}
}

func TestPostHandler_List_QueryParams(t *testing.T) {
	stub := &stubPostService{
		listFn: func(ctx context.Context, index, limit int) (*pagination.Result[domain.Post], error) {
			if index != 3 || limit != 10 {
				t.Fatalf("unexpected window: %d %d", index, limit)
			}
			return &pagination.Result[domain.Post]{Data: []domain.Post{}, Page: pagination.NewMeta(index, limit, 25)}, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newContext(http.MethodGet, "/posts?limit=10&index=3", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("empty page must encode data as []: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"previous":2`) || !strings.Contains(rec.Body.String(), `"next":null`) {
		t.Fatalf("unexpected page: %s", rec.Body.String())
	}
}

func TestPostHandler_List_InvalidWindow(t *testing.T) {
	handler := NewPostHandler(&stubPostService{})

	for _, target := range []string{"/posts?limit=0", "/posts?limit=101", "/posts?index=0", "/posts?index=10000001", "/posts?index=4611686018427387905&limit=2"} {
		c, _ := newContext(http.MethodGet, target, "")
		expectHTTPError(t, handler.List(c), http.StatusUnprocessableEntity)
	}

	c, _ := newContext(http.MethodGet, "/posts?limit=abc", "")
	expectHTTPError(t, handler.List(c), http.StatusBadRequest)
}

func TestPostHandler_Get(t *testing.T) {
	stub := &stubPostService{
		getFn: func(ctx context.Context, id int64) (*domain.Post, error) {
			if id == 5 {
				return samplePost(5), nil
			}
			return nil, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newContext(http.MethodGet, "/posts/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"id":5`) || !strings.Contains(rec.Body.String(), `"userId":7`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c, rec = newContext(http.MethodGet, "/posts/6", "")
	c.SetParamNames("id")
	c.SetParamValues("6")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null, got %s", rec.Body.String())
	}
}

func TestPostHandler_Get_InvalidID(t *testing.T) {
	handler := NewPostHandler(&stubPostService{})

	c, _ := newContext(http.MethodGet, "/posts/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")
	expectHTTPError(t, handler.Get(c), http.StatusBadRequest)
}

func TestPostHandler_Create_UsesSessionUser(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
			if in.OwnerID != 7 || in.Title != "hello" || in.Text != "world" {
				t.Fatalf("unexpected input: %+v", in)
			}
			p := samplePost(9)
			p.Title, p.Text = in.Title, in.Text
			return p, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newContext(http.MethodPost, "/posts", `{"title":"hello","text":"world","userId":99}`)
	if err := handler.Create(authenticated(c, 7)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"title":"hello"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPostHandler_Create_Validation(t *testing.T) {
	handler := NewPostHandler(&stubPostService{})

	c, _ := newContext(http.MethodPost, "/posts", `{"title":""}`)
	expectHTTPError(t, handler.Create(authenticated(c, 7)), http.StatusUnprocessableEntity)
}

func TestPostHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewPostHandler(&stubPostService{})

	c, _ := newContext(http.MethodPost, "/posts", `{"title":"a","text":"b"}`)
	if err := handler.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestPostHandler_Update(t *testing.T) {
	stub := &stubPostService{
		updateFn: func(ctx context.Context, id int64, changes ports.PostChanges) (*domain.Post, error) {
			if id != 3 || changes.Title == nil || *changes.Title != "renamed" {
				t.Fatalf("unexpected update: %d %+v", id, changes)
			}
			p := samplePost(3)
			p.Title = *changes.Title
			return p, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newContext(http.MethodPatch, "/posts/3", `{"title":"renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := handler.Update(authenticated(c, 7)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"title":"renamed"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPostHandler_Update_Missing(t *testing.T) {
	stub := &stubPostService{
		updateFn: func(ctx context.Context, id int64, changes ports.PostChanges) (*domain.Post, error) {
			if changes.Title != nil {
				t.Fatalf("omitted title must stay nil")
			}
			return nil, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newContext(http.MethodPatch, "/posts/40", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("40")
	if err := handler.Update(authenticated(c, 7)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null, got %s", rec.Body.String())
	}
}

func TestPostHandler_Delete(t *testing.T) {
	var deleted int64
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			deleted = id
			return true, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newContext(http.MethodDelete, "/posts/8", "")
	c.SetParamNames("id")
	c.SetParamValues("8")
	if err := handler.Delete(authenticated(c, 7)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != 8 || strings.TrimSpace(rec.Body.String()) != "true" {
		t.Fatalf("unexpected delete: id=%d body=%s", deleted, rec.Body.String())
	}
}

func TestPostHandler_ServiceErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, boom },
	}
	handler := NewPostHandler(stub)

	c, _ := newContext(http.MethodDelete, "/posts/8", "")
	c.SetParamNames("id")
	c.SetParamValues("8")
	if err := handler.Delete(authenticated(c, 7)); !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}
