package models

import (
	"fmt"
	"time"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TimeWindow is the half-open span of a day being offered, either a named
// period (morning, afternoon, evening) or the full working day.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyInterval is a span during which a counselor is already committed,
// sourced from an existing calendar event. Immutable once fetched.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Label renders the interval as "HH:MM - HH:MM".
func (b BusyInterval) Label() string {
	return fmt.Sprintf("%s - %s", b.Start.Format(TimeFormat), b.End.Format(TimeFormat))
}

// Slot is a fixed-length offer of availability. The duration is implicit:
// listing uses 30 minutes, a booked appointment supplies its own end time.
type Slot struct {
	Start time.Time `json:"start"`
}

// Label renders the slot start as "HH:MM".
func (s Slot) Label() string {
	return s.Start.Format(TimeFormat)
}
