package calendar

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"schedly-be/internal/service"
	"schedly-be/pkg/errors"
	"schedly-be/pkg/logger"
)

// Service implements the CalendarService interface
type Service struct {
	logger *logger.Logger
}

// NewService creates a new calendar service
func NewService(logger *logger.Logger) service.CalendarService {
	return &Service{logger: logger}
}

// VerifyAccess confirms the granted token can read the primary calendar.
// The scheduling feature later reads busy times from this calendar, so a
// token that cannot load it would fail downstream anyway.
func (s *Service) VerifyAccess(ctx context.Context, source oauth2.TokenSource) error {
	calendarService, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return errors.NewInternalError("Failed to initialize calendar service", err)
	}

	cal, err := calendarService.Calendars.Get("primary").Context(ctx).Do()
	if err != nil {
		return errors.NewExternalError("Failed to read primary calendar", err)
	}

	s.logger.WithField("calendar_id", cal.Id).Debug("Primary calendar reachable")
	return nil
}
