package availability

import (
	"time"

	"counselconnect/models"
)

// ListingSlotLength is the granularity at which availability is offered.
const ListingSlotLength = 30 * time.Minute

// AppointmentLength is how long a booked appointment runs when the caller
// does not supply an explicit end time.
const AppointmentLength = time.Hour

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Symmetric; back-to-back spans do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Conflicts reports whether the candidate span collides with any busy
// interval.
func Conflicts(start, end time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// GenerateSlots walks the window in slotLength steps and emits every slot
// whose span [t, t+slotLength) fits inside the window and touches no busy
// interval. Pure function: the same inputs always reproduce the same
// sequence. O(n*m) over steps and busy intervals, which is fine at a couple
// dozen slots per day.
func GenerateSlots(window models.TimeWindow, busy []models.BusyInterval, slotLength time.Duration) []models.Slot {
	var slots []models.Slot
	for t := window.Start; !t.Add(slotLength).After(window.End); t = t.Add(slotLength) {
		if !Conflicts(t, t.Add(slotLength), busy) {
			slots = append(slots, models.Slot{Start: t})
		}
	}
	return slots
}

// SlotLabels renders slots as their "HH:MM" listing labels.
func SlotLabels(slots []models.Slot) []string {
	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label())
	}
	return labels
}

// BusyLabels renders busy intervals as "HH:MM - HH:MM" spans.
func BusyLabels(busy []models.BusyInterval) []string {
	labels := make([]string, 0, len(busy))
	for _, b := range busy {
		labels = append(labels, b.Label())
	}
	return labels
}
