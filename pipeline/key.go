package pipeline

import (
	"fmt"
	"strings"
)

// KeyDelimiter joins and splits the composite REGION-YEAR-MONTH key.
const KeyDelimiter = "-"

// KeyedMeasure pairs a composite key with one measure contribution.
type KeyedMeasure struct {
	Key   string
	Value float64
}

// validateRegion enforces the key contract at parse time: a region token
// must be non-empty and must not contain the key delimiter, otherwise
// splitting the composite key back apart becomes ambiguous.
func validateRegion(region string) error {
	if region == "" {
		return fmt.Errorf("empty region code")
	}
	if strings.Contains(region, KeyDelimiter) {
		return fmt.Errorf("region code %q contains the key delimiter %q", region, KeyDelimiter)
	}
	return nil
}

// SplitKey splits a composite key back into its region, year and month
// tokens. Any other token count means the key was built from malformed
// input and the run cannot produce a well-formed row for it.
func SplitKey(key string) (region, year, month string, err error) {
	tokens := strings.Split(key, KeyDelimiter)
	if len(tokens) != 3 {
		return "", "", "", fmt.Errorf("composite key %q has %d tokens, want 3", key, len(tokens))
	}
	return tokens[0], tokens[1], tokens[2], nil
}
