package csvimport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestTemplate_Parses ensures the template itself imports cleanly.
func TestTemplate_Parses(t *testing.T) {
	t.Parallel()

	alarms, err := ParseAlarms(Template(), sequentialIDs())
	require.NoError(t, err)
	require.Len(t, alarms, 2)

	require.Equal(t, "Morning Alarm", alarms[0].Name)
	require.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, alarms[0].Days)
	require.Equal(t, "Work", alarms[0].Category)
	require.True(t, alarms[0].Enabled)

	require.Equal(t, "09:00", alarms[1].Time)
	require.Equal(t, []string{"Saturday", "Sunday"}, alarms[1].Days)
	require.Equal(t, "Personal", alarms[1].Category)
}

// TestEncode_Roundtrip checks that encoded collections parse back to the same alarms.
func TestEncode_Roundtrip(t *testing.T) {
	t.Parallel()

	original := []alarm.Alarm{
		{ID: "a", Name: `Pills, "blue" ones`, Time: "08:15", Days: []string{"Monday", "Thursday"}, Enabled: true, SoundEnabled: true, Category: "Health"},
		{ID: "b", Name: "Bins", Time: "19:00", Days: []string{}, Enabled: false, Category: "Home"},
		{ID: "c", Name: "Multi\nline", Time: "6:05", Enabled: true, Category: "General"},
	}

	text, err := Encode(original)
	require.NoError(t, err)

	parsed, err := ParseAlarms(text, sequentialIDs())
	require.NoError(t, err)
	require.Len(t, parsed, len(original))

	for i := range original {
		require.Equal(t, original[i].Time, parsed[i].Time)
		require.Equal(t, original[i].Name, parsed[i].Name)
		require.ElementsMatch(t, original[i].Days, parsed[i].Days)
		require.Equal(t, original[i].Enabled, parsed[i].Enabled)
		require.Equal(t, original[i].SoundEnabled, parsed[i].SoundEnabled)
		require.Equal(t, original[i].Category, parsed[i].Category)
	}
}
