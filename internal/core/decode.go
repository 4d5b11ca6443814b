package core

// decode.go turns exported sheet text into records.
//
// The spreadsheet export is line oriented: records are separated by '\n' and
// never span lines. Within a line, fields are comma separated and may be
// wrapped in double quotes, in which case commas are literal and a doubled
// quote ("") stands for one quote character.
//
// Decoding never fails. Short lines are padded with empty strings so every
// record carries every header, and values past the last header are dropped.

import "strings"

// Decode splits text into one Record per data line.
//
// The first line is always the header line. When headers is non-empty its
// names replace the embedded ones, but the embedded line is still skipped.
// Empty input yields an empty slice.
func Decode(text string, headers []string) []Record {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Record{}
	}

	lines := strings.Split(text, "\n")
	if len(headers) == 0 {
		headers = splitHeader(strings.TrimSuffix(lines[0], "\r"))
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := SplitLine(strings.TrimSuffix(line, "\r"))

		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(values) {
				rec[h] = values[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// splitHeader parses the header line, trimming whitespace around each name.
func splitHeader(line string) []string {
	names := SplitLine(line)
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return names
}

// SplitLine splits a single line into field values.
// A quote only opens a quoted section at the start of a field; elsewhere it is literal.
func SplitLine(line string) []string {
	var (
		fields   []string
		b        strings.Builder
		inQuotes bool
		atStart  = true
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c != '"' {
				b.WriteByte(c)
				continue
			}
			if i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}
			inQuotes = false

		case c == '"' && atStart:
			inQuotes = true
			atStart = false

		case c == ',':
			fields = append(fields, b.String())
			b.Reset()
			atStart = true

		default:
			b.WriteByte(c)
			atStart = false
		}
	}

	return append(fields, b.String())
}

// Encode writes headers and rows in the format Decode reads.
// Fields are quoted only when needed.
func Encode(headers []string, rows []Record) string {
	var b strings.Builder
	writeLine(&b, headers)
	for _, row := range rows {
		b.WriteByte('\n')
		values := make([]string, len(headers))
		for i, h := range headers {
			values[i] = row[h]
		}
		writeLine(&b, values)
	}
	return b.String()
}

func writeLine(b *strings.Builder, values []string) {
	// A lone empty field would otherwise produce a blank line.
	if len(values) == 1 && values[0] == "" {
		b.WriteString(`""`)
		return
	}
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteField(v))
	}
}

func quoteField(s string) string {
	if !strings.ContainsAny(s, `,"`) && s == strings.TrimSpace(s) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
