package csvimport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// sequentialIDs returns a deterministic IDGenerator for assertions.
func sequentialIDs() IDGenerator {
	n := 0

	return func() string {
		n++

		return fmt.Sprintf("id-%d", n)
	}
}

// TestParseAlarms_MinimalColumns checks defaults when only time and name are present.
func TestParseAlarms_MinimalColumns(t *testing.T) {
	t.Parallel()

	alarms, err := ParseAlarms("time,name\n07:00,Wake\n", sequentialIDs())
	require.NoError(t, err)
	require.Equal(t, []alarm.Alarm{{
		ID:           "id-1",
		Name:         "Wake",
		Time:         "07:00",
		Days:         []string{},
		Enabled:      false,
		SoundEnabled: false,
		Category:     alarm.DefaultCategory,
	}}, alarms)
}

// TestParseAlarms_AllColumns checks days splitting, truthy flags and category.
func TestParseAlarms_AllColumns(t *testing.T) {
	t.Parallel()

	alarms, err := ParseAlarms("time,name,days,enabled,category\n07:00,Wake,Monday;Tuesday,true,Work\n", sequentialIDs())
	require.NoError(t, err)
	require.Len(t, alarms, 1)
	require.Equal(t, []string{"Monday", "Tuesday"}, alarms[0].Days)
	require.True(t, alarms[0].Enabled)
	require.Equal(t, "Work", alarms[0].Category)
}

// TestParseAlarms_ColumnOrderAndFlags checks header matching and the exact truthy values.
func TestParseAlarms_ColumnOrderAndFlags(t *testing.T) {
	t.Parallel()

	text := "category,soundEnabled,enabled,name,time,id\n" +
		"Home,yes,1,\"Dinner, family\",19:00,keep-me\n" +
		"Home,TRUE,True,Late,23:00,x\n" +
		"Home,no,yes,,23:30,\n" +
		",,,Nameless time,,\n"

	alarms, err := ParseAlarms(text, sequentialIDs())
	require.NoError(t, err)
	require.Len(t, alarms, 2)

	require.Equal(t, "id-1", alarms[0].ID)
	require.Equal(t, "Dinner, family", alarms[0].Name)
	require.True(t, alarms[0].Enabled)
	require.True(t, alarms[0].SoundEnabled)

	require.Equal(t, "Late", alarms[1].Name)
	require.False(t, alarms[1].Enabled)
	require.False(t, alarms[1].SoundEnabled)
}

// TestParseAlarms_Failures checks the "no data" and "no valid rows" errors.
func TestParseAlarms_Failures(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "time,name\n", "\n\n", "time\n07:00\n"} {
		_, err := ParseAlarms(text, nil)
		require.ErrorIs(t, err, ErrEmptyData, "%q", text)
	}

	_, err := ParseAlarms("time,name\n07:00,\n,Wake\n", nil)
	require.ErrorIs(t, err, ErrNoValidAlarms)
}

// TestImport_FileType rejects non-CSV inputs before parsing.
func TestImport_FileType(t *testing.T) {
	t.Parallel()

	content := []byte("time,name\n07:00,Wake\n")

	_, err := Import("alarms.txt", "text/plain", content, nil)
	require.ErrorIs(t, err, ErrNotCSV)

	alarms, err := Import("alarms.csv", "", content, nil)
	require.NoError(t, err)
	require.Len(t, alarms, 1)
	require.NotEmpty(t, alarms[0].ID)

	alarms, err = Import("upload", "text/csv", content, nil)
	require.NoError(t, err)
	require.Len(t, alarms, 1)
}

// TestIsCSV checks name and media type detection.
func TestIsCSV(t *testing.T) {
	t.Parallel()

	require.True(t, IsCSV("a.csv", ""))
	require.True(t, IsCSV("a", "text/csv"))
	require.True(t, IsCSV("a", "text/csv; charset=utf-8"))
	require.False(t, IsCSV("a.CSV.txt", ""))
	require.False(t, IsCSV("a.xlsx", "application/vnd.ms-excel"))
}

// TestNewID produces distinct ids.
func TestNewID(t *testing.T) {
	t.Parallel()

	require.NotEqual(t, NewID(), NewID())
}
