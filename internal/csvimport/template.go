package csvimport

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TemplateFilename is the suggested name for the downloadable template.
const TemplateFilename = "alarm_template.csv"

// template is the example document offered to users.
const template = "time,name,days,enabled,category\n" +
	"07:00,Morning Alarm,Monday;Tuesday;Wednesday;Thursday;Friday,true,Work\n" +
	"09:00,Weekend Alarm,Saturday;Sunday,true,Personal"

// Template returns the example CSV document.
func Template() string {
	return template
}

// Encode renders alarms in the template layout followed by a soundEnabled column.
// The output is accepted by ParseAlarms.
func Encode(alarms []alarm.Alarm) (string, error) {
	var sb strings.Builder

	w := csv.NewWriter(&sb)

	header := []string{ColumnTime, ColumnName, ColumnDays, ColumnEnabled, ColumnCategory, ColumnSoundEnabled}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i := range alarms {
		a := &alarms[i]

		record := []string{
			a.Time,
			a.Name,
			strings.Join(a.Days, daySeparator),
			strconv.FormatBool(a.Enabled),
			a.Category,
			strconv.FormatBool(a.SoundEnabled),
		}

		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write alarm %s: %w", a.ID, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return sb.String(), nil
}
