package repository

import (
	"context"

	"schedly-be/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrDuplicateHandle when
	// the username collides with an existing row; the unique index on
	// users.username is the authoritative guard, not a prior lookup.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID, nil when not found
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by normalized username, nil when not found
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// IntervalRepository defines the interface for availability interval operations
type IntervalRepository interface {
	// CreateBatch inserts all intervals in a single transaction. Either
	// every row is written or none are.
	CreateBatch(ctx context.Context, intervals []*domain.UserTimeInterval) error

	// ListByUser retrieves all intervals owned by a user
	ListByUser(ctx context.Context, userID string) ([]*domain.UserTimeInterval, error)
}

// ConnectionRepository defines the interface for Google connection records
type ConnectionRepository interface {
	// Upsert stores the latest grant for a user, replacing any previous one
	Upsert(ctx context.Context, conn *domain.GoogleConnection) error

	// GetByUser retrieves the connection for a user, nil when not found
	GetByUser(ctx context.Context, userID string) (*domain.GoogleConnection, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	User       UserRepository
	Interval   IntervalRepository
	Connection ConnectionRepository
}
