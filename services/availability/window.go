package availability

import (
	"strings"
	"time"

	"counselconnect/models"
)

// Named day periods and their bounding hours. Evening runs to 21:00, which
// is also the end of the working day.
var windowHours = map[string][2]int{
	"morning":   {9, 12},
	"afternoon": {12, 17},
	"evening":   {17, 21},
}

// WindowForLabel resolves a case-insensitive period label into the concrete
// window on the given date. Returns false for labels outside the known set.
func WindowForLabel(date time.Time, label string, loc *time.Location) (models.TimeWindow, bool) {
	hours, ok := windowHours[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return models.TimeWindow{}, false
	}
	return dayWindow(date, hours[0], hours[1], loc), true
}

// WorkingDay returns the full bookable span of the date, 09:00 to 21:00.
func WorkingDay(date time.Time, loc *time.Location) models.TimeWindow {
	return dayWindow(date, 9, 21, loc)
}

// WindowLabels returns the recognized period labels.
func WindowLabels() []string {
	return []string{"morning", "afternoon", "evening"}
}

func dayWindow(date time.Time, startHour, endHour int, loc *time.Location) models.TimeWindow {
	d := date.In(loc)
	return models.TimeWindow{
		Start: time.Date(d.Year(), d.Month(), d.Day(), startHour, 0, 0, 0, loc),
		End:   time.Date(d.Year(), d.Month(), d.Day(), endHour, 0, 0, 0, loc),
	}
}
