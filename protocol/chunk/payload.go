package chunk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
)

// bucketDelimiter separates key and sum inside an aggregated payload line.
// The composite key never contains ';' (regions are validated at parse
// time, dates are digits and dashes).
const bucketDelimiter = ";"

// EncodeBuckets renders aggregated buckets as payload lines for a
// StageAggregated chunk.
func EncodeBuckets(buckets []pipeline.Bucket) []string {
	lines := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		lines = append(lines, bucket.Key+bucketDelimiter+strconv.FormatFloat(bucket.Sum, 'g', -1, 64))
	}
	return lines
}

// DecodeBuckets parses the payload lines of a StageAggregated chunk.
func DecodeBuckets(lines []string) ([]pipeline.Bucket, error) {
	buckets := make([]pipeline.Bucket, 0, len(lines))
	for _, line := range lines {
		key, raw, found := strings.Cut(line, bucketDelimiter)
		if !found {
			return nil, fmt.Errorf("malformed bucket line %q", line)
		}
		sum, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse bucket sum %q: %w", raw, err)
		}
		buckets = append(buckets, pipeline.Bucket{Key: key, Sum: sum})
	}
	return buckets, nil
}
