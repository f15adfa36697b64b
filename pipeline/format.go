package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ReportDelimiter separates the fields of the final report rows.
const ReportDelimiter = ";"

// ReportColumns is the fixed column order of the final report.
var ReportColumns = []string{"UF", "YEAR", "MONTH", "RAINFALL", "DENGUE_CASES"}

// ReportHeader returns the static header line prepended once per output
// shard.
func ReportHeader() string {
	return strings.Join(ReportColumns, ReportDelimiter)
}

// UnpackRow splits a complete joined bucket back into the ordered report
// tuple (region, year, month, rainfall, dengue cases). Exactly one summed
// value per source is expected after aggregation, so the first element of
// each sequence is the measure.
func UnpackRow(bucket JoinedBucket) ([]string, error) {
	region, year, month, err := SplitKey(bucket.Key)
	if err != nil {
		return nil, err
	}

	rain := bucket.Values[RainSource]
	dengue := bucket.Values[DengueSource]
	if len(rain) == 0 || len(dengue) == 0 {
		return nil, fmt.Errorf("incomplete bucket for key %q reached the formatter", bucket.Key)
	}

	return []string{
		region,
		year,
		month,
		FormatMeasure(rain[0]),
		FormatMeasure(dengue[0]),
	}, nil
}

// FormatRow serializes one report tuple with the report delimiter.
func FormatRow(row []string) string {
	return strings.Join(row, ReportDelimiter)
}

// FormatMeasure renders a summed measure. Integral sums keep one decimal
// digit (10.0, not 10) so counts and quantities read as the floats they
// are; fractional sums use the shortest exact representation.
func FormatMeasure(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
