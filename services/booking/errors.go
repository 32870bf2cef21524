package booking

import (
	"errors"
	"fmt"
	"time"
)

// Validation failures are detected locally and never reach a collaborator.

// InvalidEmailError rejects a malformed user email.
type InvalidEmailError struct {
	Email string
}

func (e InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email format: %q", e.Email)
}

// UnknownCounselorError rejects a counselor ID outside the configured roster.
type UnknownCounselorError struct {
	CounselorID string
}

func (e UnknownCounselorError) Error() string {
	return fmt.Sprintf("unknown counselor: %q", e.CounselorID)
}

// UnknownTimeRangeLabelError rejects a day period outside
// morning/afternoon/evening.
type UnknownTimeRangeLabelError struct {
	Label string
}

func (e UnknownTimeRangeLabelError) Error() string {
	return fmt.Sprintf("unknown time range: %q", e.Label)
}

// SlotNoLongerAvailableError rejects a booking whose slot was taken between
// the availability read and the commit.
type SlotNoLongerAvailableError struct {
	CounselorID string
	Start       time.Time
}

func (e SlotNoLongerAvailableError) Error() string {
	return fmt.Sprintf("slot %s is no longer available for counselor %s",
		e.Start.Format("15:04"), e.CounselorID)
}

// ErrInvalidTimeRange rejects a request whose start does not precede its end.
var ErrInvalidTimeRange = errors.New("startTime must be before endTime")

// IsValidationError reports whether the error is a local rejection rather
// than a collaborator failure.
func IsValidationError(err error) bool {
	var invalidEmail InvalidEmailError
	var unknownCounselor UnknownCounselorError
	var unknownLabel UnknownTimeRangeLabelError
	return errors.As(err, &invalidEmail) ||
		errors.As(err, &unknownCounselor) ||
		errors.As(err, &unknownLabel) ||
		errors.Is(err, ErrInvalidTimeRange)
}
