package booking

import (
	"context"
	"time"

	"counselconnect/models"
	"counselconnect/services/availability"

	"go.uber.org/zap"
)

// CheckAvailableSlots resolves the named window, fetches the counselor's
// busy intervals, and derives the offerable slots. Local validation happens
// before the calendar is contacted.
func (s *DefaultBookingService) CheckAvailableSlots(ctx context.Context, date time.Time, timeRangeLabel, counselorID string) (*models.AvailabilityResult, error) {
	window, ok := availability.WindowForLabel(date, timeRangeLabel, s.Location)
	if !ok {
		return nil, UnknownTimeRangeLabelError{Label: timeRangeLabel}
	}
	if !s.Registry.Knows(counselorID) {
		return nil, UnknownCounselorError{CounselorID: counselorID}
	}

	busy, err := s.Calendar.ListBusyIntervals(ctx, counselorID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	slots := availability.GenerateSlots(window, busy, availability.ListingSlotLength)

	s.Logger.Debug("availability computed",
		zap.String("counselorId", counselorID),
		zap.String("timeRange", timeRangeLabel),
		zap.Int("available", len(slots)),
		zap.Int("busy", len(busy)))

	return &models.AvailabilityResult{
		AvailableSlots: availability.SlotLabels(slots),
		BookedSlots:    availability.BusyLabels(busy),
	}, nil
}
