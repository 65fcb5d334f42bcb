package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/postboard/internal/api/middleware"
	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/pagination"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, sess ports.Session, in ports.RegisterInput) (*ports.UserResponse, error)
	loginFn          func(ctx context.Context, sess ports.Session, usernameOrEmail, password string) (*ports.UserResponse, error)
	logoutFn         func(ctx context.Context, sess ports.Session) bool
	meFn             func(ctx context.Context, sess ports.Session) (*domain.User, error)
	forgotPasswordFn func(ctx context.Context, email string) (bool, error)
	changePasswordFn func(ctx context.Context, sess ports.Session, token, newPassword string) (*ports.UserResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, sess ports.Session, in ports.RegisterInput) (*ports.UserResponse, error) {
	return s.registerFn(ctx, sess, in)
}

func (s *stubAuthService) Login(ctx context.Context, sess ports.Session, usernameOrEmail, password string) (*ports.UserResponse, error) {
	return s.loginFn(ctx, sess, usernameOrEmail, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sess ports.Session) bool {
	return s.logoutFn(ctx, sess)
}

func (s *stubAuthService) Me(ctx context.Context, sess ports.Session) (*domain.User, error) {
	return s.meFn(ctx, sess)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) (bool, error) {
	return s.forgotPasswordFn(ctx, email)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, sess ports.Session, token, newPassword string) (*ports.UserResponse, error) {
	return s.changePasswordFn(ctx, sess, token, newPassword)
}

type stubPostService struct {
	listFn   func(ctx context.Context, index, limit int) (*pagination.Result[domain.Post], error)
	getFn    func(ctx context.Context, id int64) (*domain.Post, error)
	createFn func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error)
	updateFn func(ctx context.Context, id int64, changes ports.PostChanges) (*domain.Post, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (s *stubPostService) ListPosts(ctx context.Context, index, limit int) (*pagination.Result[domain.Post], error) {
	return s.listFn(ctx, index, limit)
}

func (s *stubPostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, in)
}

func (s *stubPostService) UpdatePost(ctx context.Context, id int64, changes ports.PostChanges) (*domain.Post, error) {
	return s.updateFn(ctx, id, changes)
}

func (s *stubPostService) DeletePost(ctx context.Context, id int64) (bool, error) {
	return s.deleteFn(ctx, id)
}

// newContext builds an echo context with the handler validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticated marks c as having passed the RequireAuth gate.
func authenticated(c echo.Context, userID int64) echo.Context {
	c.Set(middleware.UserIDKey, userID)
	return c
}

