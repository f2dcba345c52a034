package alarm

import (
	"fmt"
	"strings"
)

// State selects alarms by their enabled flag.
type State string

const (
	// StateAll keeps every alarm.
	StateAll State = "all"
	// StateEnabled keeps enabled alarms only.
	StateEnabled State = "enabled"
	// StateDisabled keeps disabled alarms only.
	StateDisabled State = "disabled"
)

// allCategories is the category value that disables category filtering.
const allCategories = "all"

// ParseState converts user input into a State.
func ParseState(s string) (State, error) {
	switch State(strings.ToLower(strings.TrimSpace(s))) {
	case "", StateAll:
		return StateAll, nil
	case StateEnabled:
		return StateEnabled, nil
	case StateDisabled:
		return StateDisabled, nil
	default:
		return "", fmt.Errorf("unknown state filter %q", s)
	}
}

// Filter narrows a collection for display.
type Filter struct {
	// Category keeps alarms with exactly this category; empty or "all" keeps every category.
	Category string
	// Search keeps alarms whose name contains this text, ignoring case.
	Search string
	// State keeps alarms by enabled flag; empty means StateAll.
	State State
}

// Match reports whether a single alarm passes the filter.
func (f Filter) Match(a *Alarm) bool {
	if f.Category != "" && f.Category != allCategories && a.Category != f.Category {
		return false
	}

	if !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Search)) {
		return false
	}

	switch f.State {
	case StateEnabled:
		return a.Enabled
	case StateDisabled:
		return !a.Enabled
	default:
		return true
	}
}

// Apply returns the alarms passing the filter in collection order.
func (f Filter) Apply(alarms []Alarm) []Alarm {
	result := make([]Alarm, 0, len(alarms))

	for i := range alarms {
		if f.Match(&alarms[i]) {
			result = append(result, *alarms[i].Clone())
		}
	}

	return result
}

// Categories returns the distinct categories in first-seen order.
func Categories(alarms []Alarm) []string {
	seen := make(map[string]struct{}, len(alarms))
	result := make([]string, 0, len(alarms))

	for i := range alarms {
		category := alarms[i].Category
		if _, ok := seen[category]; ok {
			continue
		}

		seen[category] = struct{}{}
		result = append(result, category)
	}

	return result
}
