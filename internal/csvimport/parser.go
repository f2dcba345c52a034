package csvimport

import "strings"

// Parse splits text into rows of raw fields.
//
// Quoted fields may contain commas and line breaks; a doubled quote inside a
// quoted field stands for one literal quote. Carriage returns outside quotes
// are dropped. An unterminated quote swallows the rest of the input into the
// current field. A trailing partial row is flushed at end of input.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			switch {
			case c == '"' && i+1 < len(text) && text[i+1] == '"':
				field.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				field.WriteByte(c)
			}

			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\r':
		case '\n':
			row = append(row, field.String())
			rows = append(rows, row)
			row = nil
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}

	return rows
}

// RecordsFromRows maps rows onto header names.
//
// Rows with at most one field are skipped. The first remaining row provides
// the trimmed header names; each following row becomes a record keyed by
// header with trimmed values, missing positions mapping to "".
func RecordsFromRows(rows [][]string) ([]string, []map[string]string) {
	var (
		headers []string
		records []map[string]string
	)

	for _, row := range rows {
		if len(row) <= 1 {
			continue
		}

		if headers == nil {
			headers = make([]string, len(row))
			for i, name := range row {
				headers[i] = strings.TrimSpace(name)
			}

			continue
		}

		record := make(map[string]string, len(headers))
		for i, name := range headers {
			var value string
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}

			record[name] = value
		}

		records = append(records, record)
	}

	return headers, records
}
