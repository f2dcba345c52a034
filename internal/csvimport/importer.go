package csvimport

import (
	"errors"
	"mime"
	"strings"

	"github.com/google/uuid"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Column names understood by the importer.
const (
	ColumnTime         = "time"
	ColumnName         = "name"
	ColumnDays         = "days"
	ColumnEnabled      = "enabled"
	ColumnCategory     = "category"
	ColumnSoundEnabled = "soundEnabled"
)

// MediaType is the declared media type accepted for imports.
const MediaType = "text/csv"

// daySeparator separates day names inside the days column.
const daySeparator = ";"

var (
	// ErrNotCSV is returned when the input is neither named *.csv nor declared as text/csv.
	ErrNotCSV = errors.New("please upload a valid CSV file")
	// ErrEmptyData is returned when the document has no header or no data rows.
	ErrEmptyData = errors.New("CSV file is empty or missing data")
	// ErrNoValidAlarms is returned when no data row carries both a time and a name.
	ErrNoValidAlarms = errors.New("no valid alarms found in the CSV file")
)

// IDGenerator returns a fresh identifier for every imported alarm.
type IDGenerator func() string

// NewID generates a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// IsCSV reports whether a file looks like CSV by name or declared media type.
func IsCSV(filename, mediaType string) bool {
	if strings.HasSuffix(filename, ".csv") {
		return true
	}

	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return mediaType == MediaType
	}

	return parsed == MediaType
}

// Import validates the file type, parses content and returns the accepted alarms.
func Import(filename, mediaType string, content []byte, newID IDGenerator) ([]alarm.Alarm, error) {
	if !IsCSV(filename, mediaType) {
		return nil, ErrNotCSV
	}

	return ParseAlarms(string(content), newID)
}

// ParseAlarms converts CSV text into alarms.
func ParseAlarms(text string, newID IDGenerator) ([]alarm.Alarm, error) {
	headers, records := RecordsFromRows(Parse(text))
	if headers == nil || len(records) == 0 {
		return nil, ErrEmptyData
	}

	alarms := ToAlarms(records, newID)
	if len(alarms) == 0 {
		return nil, ErrNoValidAlarms
	}

	return alarms, nil
}

// ToAlarms interprets named records as alarms. Records without a time or a
// name are skipped. Any id column is ignored; every alarm gets a fresh id.
func ToAlarms(records []map[string]string, newID IDGenerator) []alarm.Alarm {
	if newID == nil {
		newID = NewID
	}

	result := make([]alarm.Alarm, 0, len(records))

	for _, record := range records {
		if record[ColumnTime] == "" || record[ColumnName] == "" {
			continue
		}

		category := record[ColumnCategory]
		if category == "" {
			category = alarm.DefaultCategory
		}

		result = append(result, alarm.Alarm{
			ID:           newID(),
			Name:         record[ColumnName],
			Time:         record[ColumnTime],
			Days:         splitDays(record[ColumnDays]),
			Enabled:      isTruthy(record[ColumnEnabled]),
			SoundEnabled: isTruthy(record[ColumnSoundEnabled]),
			Category:     category,
		})
	}

	return result
}

// splitDays splits the days column; an empty column means every day.
func splitDays(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, daySeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// isTruthy accepts exactly "true", "1" and "yes".
func isTruthy(raw string) bool {
	switch raw {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
