package alarm

import (
	"slices"
	"strings"
	"time"
)

// shortDayLength is the number of letters kept by ShortDays.
const shortDayLength = 3

// Weekdays lists the recognised day names in display order.
//
//nolint:gochecknoglobals // Fixed lookup table.
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// IsWeekday reports whether name is one of Weekdays. The comparison is case-sensitive.
func IsWeekday(name string) bool {
	return slices.Contains(Weekdays, name)
}

// ShortDays renders days as three-letter labels, e.g. "Mon, Tue".
func ShortDays(days []string) string {
	labels := make([]string, 0, len(days))

	for _, day := range days {
		if len(day) > shortDayLength {
			day = day[:shortDayLength]
		}

		labels = append(labels, day)
	}

	return strings.Join(labels, ", ")
}
