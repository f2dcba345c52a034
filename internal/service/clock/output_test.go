package clock

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/csvimport"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

func sampleAlarms() []domain.Alarm {
	return []domain.Alarm{
		{ID: "1", Name: "Wake", Time: "07:00", Days: []string{"Monday", "Friday"}, Category: "Work", Enabled: true},
		{ID: "2", Time: "22:15", Days: []string{}, Category: "General", SoundEnabled: true},
	}
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleAlarms()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "CATEGORY")
	require.Contains(t, lines[1], "Mon, Fri")
	require.Contains(t, lines[2], "[No Name]")
	require.Contains(t, lines[2], everyDay)

	buf.Reset()
	require.NoError(t, WriteTable(&buf, nil))
	require.Equal(t, "No alarms found.\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleAlarms()))

	var decoded []domain.Alarm
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, sampleAlarms(), decoded)
	require.Contains(t, buf.String(), `"soundEnabled": true`)
}

func TestExport(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 3, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatCSV, sampleAlarms(), now))

	parsed, err := csvimport.ParseAlarms(buf.String(), csvimport.NewID)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Equal(t, "Wake", parsed[0].Name)

	buf.Reset()
	require.NoError(t, Export(&buf, "ICS", sampleAlarms(), now))
	require.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	require.Equal(t, 2, strings.Count(buf.String(), "BEGIN:VEVENT"))

	require.ErrorIs(t, Export(&buf, "xml", nil, now), ErrUnknownFormat)

	require.Equal(t, "alarms.ics", DefaultExportFilename("ics"))
	require.Equal(t, "alarms.csv", DefaultExportFilename("csv"))
}
