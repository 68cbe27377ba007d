package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"schedly-be/internal/domain"
	"schedly-be/pkg/database"
)

// connectionRepository handles Google connection records with PostgreSQL
type connectionRepository struct {
	db *database.PostgresDB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *database.PostgresDB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// Upsert stores the latest grant for a user. The connection row is keyed
// by user, so a new sign-in overwrites the previous evaluation; historical
// grants are not versioned.
func (r *connectionRepository) Upsert(ctx context.Context, conn *domain.GoogleConnection) error {
	query := `
		INSERT INTO google_connections (id, user_id, provider_user, access_token, refresh_token, scopes, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			provider_user = EXCLUDED.provider_user,
			access_token = EXCLUDED.access_token,
			refresh_token = CASE WHEN EXCLUDED.refresh_token <> '' THEN EXCLUDED.refresh_token ELSE google_connections.refresh_token END,
			scopes = EXCLUDED.scopes,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		conn.ID,
		conn.UserID,
		conn.ProviderUser,
		conn.AccessToken,
		conn.RefreshToken,
		conn.Scopes,
		conn.ExpiresAt,
		conn.CreatedAt,
		conn.UpdatedAt,
	).Scan(&conn.ID, &conn.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert google connection: %w", err)
	}

	return nil
}

// GetByUser retrieves the connection for a user
func (r *connectionRepository) GetByUser(ctx context.Context, userID string) (*domain.GoogleConnection, error) {
	query := `
		SELECT id, user_id, provider_user, access_token, refresh_token, scopes, expires_at, created_at, updated_at
		FROM google_connections
		WHERE user_id = $1
	`

	conn := &domain.GoogleConnection{}
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&conn.ID,
		&conn.UserID,
		&conn.ProviderUser,
		&conn.AccessToken,
		&conn.RefreshToken,
		&conn.Scopes,
		&conn.ExpiresAt,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get google connection: %w", err)
	}

	return conn, nil
}
