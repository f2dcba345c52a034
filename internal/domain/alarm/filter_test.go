package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleAlarms() []Alarm {
	return []Alarm{
		{ID: "1", Name: "Morning run", Time: "06:00", Enabled: true, Category: "Health"},
		{ID: "2", Name: "Standup", Time: "09:30", Enabled: true, Category: "Work"},
		{ID: "3", Name: "Retro", Time: "16:00", Enabled: false, Category: "Work"},
		{ID: "4", Name: "", Time: "22:00", Enabled: false, Category: "General"},
	}
}

func ids(alarms []Alarm) []string {
	result := make([]string, 0, len(alarms))
	for _, a := range alarms {
		result = append(result, a.ID)
	}

	return result
}

// TestFilter_Apply covers category, search and state filters together.
func TestFilter_Apply(t *testing.T) {
	t.Parallel()

	alarms := sampleAlarms()

	require.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter{}.Apply(alarms)))
	require.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter{Category: "all"}.Apply(alarms)))
	require.Equal(t, []string{"2", "3"}, ids(Filter{Category: "Work"}.Apply(alarms)))
	require.Equal(t, []string{"3"}, ids(Filter{Category: "Work", State: StateDisabled}.Apply(alarms)))
	require.Equal(t, []string{"1", "2"}, ids(Filter{State: StateEnabled}.Apply(alarms)))
	require.Equal(t, []string{"2"}, ids(Filter{Search: "STAND"}.Apply(alarms)))
	require.Empty(t, Filter{Search: "nothing"}.Apply(alarms))
}

// TestCategories keeps first-seen order without duplicates.
func TestCategories(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"Health", "Work", "General"}, Categories(sampleAlarms()))
	require.Empty(t, Categories(nil))
}

// TestParseState maps user input and rejects unknown values.
func TestParseState(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]State{"": StateAll, "all": StateAll, "Enabled": StateEnabled, " disabled ": StateDisabled} {
		got, err := ParseState(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseState("sometimes")
	require.Error(t, err)
}
