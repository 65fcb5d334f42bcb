package ports

import (
	"context"

	"github.com/99minutos/postboard/internal/core/domain"
)

// AuthEventRepository appends authentication outcomes to the audit trail.
type AuthEventRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
