package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"schedly-be/internal/domain"
	"schedly-be/pkg/database"
)

// intervalRepository handles availability interval operations with PostgreSQL
type intervalRepository struct {
	db *database.PostgresDB
}

// NewIntervalRepository creates a new interval repository
func NewIntervalRepository(db *database.PostgresDB) IntervalRepository {
	return &intervalRepository{db: db}
}

// CreateBatch inserts all intervals inside a single transaction. The
// batch is all-or-nothing: a failed row rolls back every other insert,
// so no partially written availability set is ever observable.
func (r *intervalRepository) CreateBatch(ctx context.Context, intervals []*domain.UserTimeInterval) error {
	if len(intervals) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_time_intervals (id, user_id, week_day, start_time_in_minutes, end_time_in_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, interval := range intervals {
			batch.Queue(query,
				interval.ID,
				interval.UserID,
				interval.WeekDay,
				interval.StartTimeInMinutes,
				interval.EndTimeInMinutes,
				interval.CreatedAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range intervals {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert time interval: %w", err)
			}
		}
		return results.Close()
	})
}

// ListByUser retrieves all intervals owned by a user, ordered by week day
// and start time for stable presentation.
func (r *intervalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserTimeInterval, error) {
	query := `
		SELECT id, user_id, week_day, start_time_in_minutes, end_time_in_minutes, created_at
		FROM user_time_intervals
		WHERE user_id = $1
		ORDER BY week_day, start_time_in_minutes
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time intervals: %w", err)
	}
	defer rows.Close()

	var intervals []*domain.UserTimeInterval
	for rows.Next() {
		interval := &domain.UserTimeInterval{}
		err := rows.Scan(
			&interval.ID,
			&interval.UserID,
			&interval.WeekDay,
			&interval.StartTimeInMinutes,
			&interval.EndTimeInMinutes,
			&interval.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time interval: %w", err)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time intervals: %w", err)
	}

	return intervals, nil
}
