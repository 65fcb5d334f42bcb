package ports

import (
	"context"

	"github.com/99minutos/postboard/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UserResponse is either a list of field errors or the affected user.
type UserResponse struct {
	Errors []domain.FieldError `json:"errors,omitempty"`
	User   *domain.User        `json:"user,omitempty"`
}

// AuthService implements account and session operations. Field problems are
// reported through UserResponse.Errors; a non-nil error means a backing store
// failed.
type AuthService interface {
	Register(ctx context.Context, sess Session, in RegisterInput) (*UserResponse, error)
	Login(ctx context.Context, sess Session, usernameOrEmail, password string) (*UserResponse, error)
	Logout(ctx context.Context, sess Session) bool
	Me(ctx context.Context, sess Session) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) (bool, error)
	ChangePassword(ctx context.Context, sess Session, token, newPassword string) (*UserResponse, error)
}
