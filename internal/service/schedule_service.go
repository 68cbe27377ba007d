package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"schedly-be/internal/domain"
	"schedly-be/internal/repository"
	"schedly-be/pkg/logger"
)

// ScheduleService persists the weekly availability windows submitted at
// the end of the registration flow. The caller identity is an explicit
// parameter; this service never reads ambient session state.
type ScheduleService struct {
	intervalRepo repository.IntervalRepository
	logger       *logger.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(intervalRepo repository.IntervalRepository, logger *logger.Logger) *ScheduleService {
	return &ScheduleService{
		intervalRepo: intervalRepo,
		logger:       logger,
	}
}

// CreateIntervals validates and persists a batch of availability windows
// for the given user. The write is a single transaction; either all
// windows land or none do.
func (s *ScheduleService) CreateIntervals(ctx context.Context, userID string, req *domain.TimeIntervalsRequest) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	intervals := make([]*domain.UserTimeInterval, 0, len(req.Intervals))
	for _, in := range req.Intervals {
		intervals = append(intervals, &domain.UserTimeInterval{
			ID:                 uuid.NewString(),
			UserID:             userID,
			WeekDay:            *in.WeekDay,
			StartTimeInMinutes: *in.StartTimeInMinutes,
			EndTimeInMinutes:   *in.EndTimeInMinutes,
			CreatedAt:          now,
		})
	}

	if err := s.intervalRepo.CreateBatch(ctx, intervals); err != nil {
		return fmt.Errorf("failed to persist time intervals: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"count":   len(intervals),
	}).Info("Availability intervals created")

	return nil
}

// ListIntervals retrieves the availability windows owned by a user.
func (s *ScheduleService) ListIntervals(ctx context.Context, userID string) ([]*domain.UserTimeInterval, error) {
	return s.intervalRepo.ListByUser(ctx, userID)
}
