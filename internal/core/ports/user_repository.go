package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// UserRepository defines persistence for durable identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
