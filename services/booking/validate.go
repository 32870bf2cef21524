package booking

import (
	"regexp"

	"counselconnect/config"
	"counselconnect/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// ValidateEmail checks the address against the local@domain.tld grammar.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// validateRequest runs the local checks, in order: email grammar, counselor
// membership, time ordering. The fresh-busy conflict check happens
// separately, right before commit.
func validateRequest(req models.BookingRequest, registry *config.CounselorRegistry) error {
	if !ValidateEmail(req.UserEmail) {
		return InvalidEmailError{Email: req.UserEmail}
	}
	if !registry.Knows(req.CounselorID) {
		return UnknownCounselorError{CounselorID: req.CounselorID}
	}
	if !req.StartTime.Before(req.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
