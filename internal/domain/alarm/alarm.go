package alarm

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// DefaultCategory is assigned to alarms created without a category.
const DefaultCategory = "General"

// timePattern accepts 24-hour HH:MM values; the hour may omit its leading zero.
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

var (
	// ErrTimeRequired is returned when an alarm has no time set.
	ErrTimeRequired = errors.New("time is required")
	// ErrTimeFormat is returned when the alarm time is not in HH:MM format.
	ErrTimeFormat = errors.New("time must be in HH:MM format")
	// ErrCategoryRequired is returned when the category is blank.
	ErrCategoryRequired = errors.New("category is required")
	// ErrUnknownDay is returned when days contain a name outside of Weekdays.
	ErrUnknownDay = errors.New("unknown day of week")
)

// Alarm is a single scheduled alert.
type Alarm struct {
	// ID is an opaque identifier assigned at creation and kept for the record's lifetime.
	ID string `json:"id"`
	// Name is an optional label shown when the alarm fires.
	Name string `json:"name"`
	// Time is the time of day in HH:MM, 24-hour clock.
	Time string `json:"time"`
	// Days lists full English weekday names; empty means every day.
	Days []string `json:"days"`
	// Enabled reports whether the alarm takes part in trigger evaluation.
	Enabled bool `json:"enabled"`
	// SoundEnabled reports whether a sound is played when the alarm fires.
	SoundEnabled bool `json:"soundEnabled"`
	// Category groups alarms in listings.
	Category string `json:"category"`
}

// New builds an alarm with form defaults applied. The ID is left empty,
// callers assign it when the alarm is accepted into a collection.
func New(name, clock, category string, days []string, enabled, soundEnabled bool) *Alarm {
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}

	return &Alarm{
		Name:         name,
		Time:         clock,
		Days:         slices.Clone(days),
		Enabled:      enabled,
		SoundEnabled: soundEnabled,
		Category:     category,
	}
}

// Clone returns a deep copy of the alarm.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.Days = slices.Clone(a.Days)

	return &cloned
}

// Validate checks the fields a user must get right before the alarm is accepted.
// All problems are reported at once.
func (a *Alarm) Validate() error {
	var errs []error

	switch {
	case a.Time == "":
		errs = append(errs, ErrTimeRequired)
	case !ValidTime(a.Time):
		errs = append(errs, fmt.Errorf("%w: %q", ErrTimeFormat, a.Time))
	}

	if strings.TrimSpace(a.Category) == "" {
		errs = append(errs, ErrCategoryRequired)
	}

	for _, day := range a.Days {
		if !IsWeekday(day) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDay, day))
		}
	}

	return errors.Join(errs...)
}

// MatchesDay reports whether the alarm is scheduled for the given weekday name.
func (a *Alarm) MatchesDay(weekday string) bool {
	return len(a.Days) == 0 || slices.Contains(a.Days, weekday)
}

// ValidTime reports whether s is an HH:MM time of day.
func ValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// CloneAll deep-copies a collection.
func CloneAll(alarms []Alarm) []Alarm {
	if alarms == nil {
		return nil
	}

	result := make([]Alarm, len(alarms))
	for i := range alarms {
		result[i] = *alarms[i].Clone()
	}

	return result
}
