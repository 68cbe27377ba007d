package domain

import "time"

// MinutesPerDay bounds the start/end offsets of an interval.
const MinutesPerDay = 24 * 60

// UserTimeInterval represents a recurring weekly availability window.
// WeekDay is 0-6 with 0 = Sunday; start/end are minutes since local
// midnight with start < end.
type UserTimeInterval struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	WeekDay            int       `json:"week_day"`
	StartTimeInMinutes int       `json:"start_time_in_minutes"`
	EndTimeInMinutes   int       `json:"end_time_in_minutes"`
	CreatedAt          time.Time `json:"created_at"`
}

// TimeIntervalInput is a single window in a batch submission.
type TimeIntervalInput struct {
	WeekDay            *int `json:"weekDay"`
	StartTimeInMinutes *int `json:"startTimeInMinutes"`
	EndTimeInMinutes   *int `json:"endTimeInMinutes"`
}

// TimeIntervalsRequest represents the availability submission body.
type TimeIntervalsRequest struct {
	Intervals []TimeIntervalInput `json:"intervals"`
}

// Validate checks the shape and ranges of a batch submission. Every field
// must be present and numeric; week days stay within 0-6, minute offsets
// within a single day, and each window must end after it starts.
// Overlap between windows is not rejected here.
func (r *TimeIntervalsRequest) Validate() error {
	if len(r.Intervals) == 0 {
		return NewValidationError("intervals is required")
	}
	for i, interval := range r.Intervals {
		if interval.WeekDay == nil || interval.StartTimeInMinutes == nil || interval.EndTimeInMinutes == nil {
			return NewValidationError("intervals[%d]: weekDay, startTimeInMinutes and endTimeInMinutes are required", i)
		}
		if *interval.WeekDay < 0 || *interval.WeekDay > 6 {
			return NewValidationError("intervals[%d]: weekDay must be between 0 and 6", i)
		}
		if *interval.StartTimeInMinutes < 0 || *interval.StartTimeInMinutes >= MinutesPerDay {
			return NewValidationError("intervals[%d]: startTimeInMinutes must be between 0 and %d", i, MinutesPerDay-1)
		}
		if *interval.EndTimeInMinutes <= 0 || *interval.EndTimeInMinutes >= MinutesPerDay {
			return NewValidationError("intervals[%d]: endTimeInMinutes must be between 1 and %d", i, MinutesPerDay-1)
		}
		if *interval.StartTimeInMinutes >= *interval.EndTimeInMinutes {
			return NewValidationError("intervals[%d]: startTimeInMinutes must be before endTimeInMinutes", i)
		}
	}
	return nil
}
