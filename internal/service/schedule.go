package service

import (
	"fmt"
	"time"

	"github.com/Behyna/sms-services/smsscheduler/internal/constants"
)

const (
	DefaultTimezone = "America/New_York"
	SendAtLayout    = "2006-01-02T15:04:05Z"
)

func loadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeInvalidTimezone,
			fmt.Errorf("%w %q: %w", ErrInvalidTimezone, timezone, err))
	}

	return loc, nil
}

func inLocation(sendAt time.Time, loc *time.Location) time.Time {
	year, month, day := sendAt.Date()
	hour, minute, second := sendAt.Clock()
	return time.Date(year, month, day, hour, minute, second, sendAt.Nanosecond(), loc)
}

// ScheduleInstant reads the wall clock of sendAt in timezone and returns the
// matching UTC instant.
func ScheduleInstant(sendAt time.Time, timezone string) (time.Time, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}

	return inLocation(sendAt, loc).UTC(), nil
}

func FormatSendAt(instant time.Time) string {
	return instant.UTC().Format(SendAtLayout)
}
