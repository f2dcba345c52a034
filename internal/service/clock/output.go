package clock

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/oshokin/alarm-clock/internal/calendar"
	"github.com/oshokin/alarm-clock/internal/csvimport"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatICS = "ics"
)

// everyDay is shown for alarms without a day list.
const everyDay = "Every day"

// ErrUnknownFormat is returned for export formats other than csv and ics.
var ErrUnknownFormat = errors.New("unknown export format")

// WriteTable renders alarms as an aligned table.
func WriteTable(w io.Writer, alarms []domain.Alarm) error {
	if len(alarms) == 0 {
		_, err := fmt.Fprintln(w, "No alarms found.")

		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTIME\tNAME\tDAYS\tCATEGORY\tENABLED\tSOUND")

	for i := range alarms {
		a := &alarms[i]

		name := a.Name
		if name == "" {
			name = "[No Name]"
		}

		days := everyDay
		if len(a.Days) > 0 {
			days = domain.ShortDays(a.Days)
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Time, name, days, a.Category, onOff(a.Enabled), onOff(a.SoundEnabled))
	}

	return tw.Flush()
}

// WriteJSON renders v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// Export writes the collection in the named format.
func Export(w io.Writer, format string, alarms []domain.Alarm, now time.Time) error {
	switch strings.ToLower(format) {
	case FormatCSV, "":
		text, err := csvimport.Encode(alarms)
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, text)

		return err
	case FormatICS:
		_, err := calendar.Export(w, alarms, now)

		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DefaultExportFilename is the suggested output file for the format.
func DefaultExportFilename(format string) string {
	if strings.EqualFold(format, FormatICS) {
		return calendar.Filename
	}

	return "alarms.csv"
}

func onOff(v bool) string {
	if v {
		return "on"
	}

	return "off"
}
