package pipeline

import "strings"

// SplitLine splits a raw input line on the exact delimiter. The source
// layouts are fixed, so there is no trimming, escaping or quoted-field
// handling.
func SplitLine(line, delimiter string) []string {
	return strings.Split(line, delimiter)
}

// ZipSchema zips column names and field values positionally into a
// name-to-value map. A length mismatch is tolerated: extra column names
// stay unset and extra fields are dropped.
func ZipSchema(columns, fields []string) map[string]string {
	record := make(map[string]string, len(columns))
	for i, column := range columns {
		if i >= len(fields) {
			break
		}
		record[column] = fields[i]
	}
	return record
}
