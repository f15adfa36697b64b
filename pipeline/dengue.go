package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DengueDelimiter separates the fields of the dengue dataset.
const DengueDelimiter = "|"

// DengueSource names the dengue stream inside the co-group.
const DengueSource = "dengue"

// DengueColumns is the fixed column order of the dengue dataset.
var DengueColumns = []string{
	"id",
	"data_iniSE",
	"casos",
	"ibge_code",
	"cidade",
	"uf",
	"cep",
	"latitude",
	"longitude",
}

// TaggedRecord maps dengue column names to their raw string values.
type TaggedRecord map[string]string

var containsDigit = regexp.MustCompile(`[0-9]`)

// ParseDengueLine splits a raw dengue line and tags the fields with their
// column names.
func ParseDengueLine(line string) TaggedRecord {
	return ZipSchema(DengueColumns, SplitLine(line, DengueDelimiter))
}

// YearMonth reduces a YYYY-MM-DD... date to its first two components.
func YearMonth(date string) string {
	parts := strings.SplitN(date, KeyDelimiter, 3)
	if len(parts) < 2 {
		return date
	}
	return parts[0] + KeyDelimiter + parts[1]
}

// GroupByRegion groups tagged records by their uf field. The coarse
// region grouping happens before the finer region-month keying so a single
// region partition can be inspected on its own.
func GroupByRegion(records []TaggedRecord) map[string][]TaggedRecord {
	groups := make(map[string][]TaggedRecord)
	for _, record := range records {
		region := record["uf"]
		groups[region] = append(groups[region], record)
	}
	return groups
}

// EmitDengueCases re-keys one region group as region-year-month and emits
// one keyed measure per record, not yet summed. Case counts without any
// digit, and digit-bearing counts that still fail a full float parse, both
// degrade to 0.0 so the record keeps contributing to its key.
func EmitDengueCases(region string, records []TaggedRecord) ([]KeyedMeasure, error) {
	if err := validateRegion(region); err != nil {
		return nil, err
	}

	measures := make([]KeyedMeasure, 0, len(records))
	for _, record := range records {
		key := region + KeyDelimiter + YearMonth(record["data_iniSE"])
		measures = append(measures, KeyedMeasure{
			Key:   key,
			Value: coerceCases(record["casos"]),
		})
	}
	return measures, nil
}

// coerceCases applies the two-tier leniency of the dengue measure: a value
// with no digit at all is 0.0 outright, a value with a digit is attempted
// as a float and falls back to 0.0 when the parse fails.
func coerceCases(raw string) float64 {
	if !containsDigit.MatchString(raw) {
		return 0.0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.0
	}
	return value
}

// CollectDengue feeds raw dengue lines through the two-step key derivation
// into the aggregation.
func CollectDengue(aggregation *Aggregation, lines []string) error {
	records := make([]TaggedRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, ParseDengueLine(line))
	}

	for region, group := range GroupByRegion(records) {
		measures, err := EmitDengueCases(region, group)
		if err != nil {
			return fmt.Errorf("dengue key derivation: %w", err)
		}
		for _, measure := range measures {
			aggregation.Add(measure)
		}
	}
	return nil
}
