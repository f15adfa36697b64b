package pipeline

import (
	"fmt"
	"strconv"
)

// RainDelimiter separates the fields of the rainfall dataset.
const RainDelimiter = ","

// RainSource names the rainfall stream inside the co-group.
const RainSource = "rain"

// rainFieldCount is the fixed positional layout (date, rainfall, uf).
const rainFieldCount = 3

// RainPrecision is the decimal-digit precision applied to rainfall sums.
const RainPrecision = 6

// RainKeyedMeasure derives the region-year-month key and the rainfall
// measure from one raw rainfall line. The parse is strict: a rainfall
// value that is not a float is an error that aborts the run. Negative
// rainfall clamps to 0.0.
func RainKeyedMeasure(line string) (KeyedMeasure, error) {
	fields := SplitLine(line, RainDelimiter)
	if len(fields) != rainFieldCount {
		return KeyedMeasure{}, fmt.Errorf("rainfall record has %d fields, want %d: %q", len(fields), rainFieldCount, line)
	}

	date, rainfall, region := fields[0], fields[1], fields[2]
	if err := validateRegion(region); err != nil {
		return KeyedMeasure{}, err
	}

	value, err := strconv.ParseFloat(rainfall, 64)
	if err != nil {
		return KeyedMeasure{}, fmt.Errorf("parse rainfall %q: %w", rainfall, err)
	}
	if value < 0 {
		value = 0.0
	}

	return KeyedMeasure{
		Key:   region + KeyDelimiter + YearMonth(date),
		Value: value,
	}, nil
}

// CollectRain feeds raw rainfall lines into the aggregation, one keyed
// measure per line.
func CollectRain(aggregation *Aggregation, lines []string) error {
	for _, line := range lines {
		measure, err := RainKeyedMeasure(line)
		if err != nil {
			return fmt.Errorf("rain key derivation: %w", err)
		}
		aggregation.Add(measure)
	}
	return nil
}
