package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRainKeyedMeasure(t *testing.T) {
	measure, err := RainKeyedMeasure("2015-03-05,5.5,SP")

	require.NoError(t, err)
	assert.Equal(t, KeyedMeasure{Key: "SP-2015-03", Value: 5.5}, measure)
}

func TestRainKeyedMeasureClampsNegativeRainfall(t *testing.T) {
	measure, err := RainKeyedMeasure("2015-04-01,-3.0,SP")

	require.NoError(t, err)
	assert.Equal(t, KeyedMeasure{Key: "SP-2015-04", Value: 0.0}, measure)
}

func TestRainKeyedMeasureStrictParse(t *testing.T) {
	// The rain side has no digit-presence leniency: a malformed measure
	// is fatal.
	_, err := RainKeyedMeasure("2015-03-05,abc,SP")
	assert.Error(t, err)
}

func TestRainKeyedMeasureFieldCount(t *testing.T) {
	_, err := RainKeyedMeasure("2015-03-05,5.5")
	assert.Error(t, err)

	_, err = RainKeyedMeasure("2015-03-05,5.5,SP,extra")
	assert.Error(t, err)
}

func TestRainKeyedMeasureRejectsRegionWithDelimiter(t *testing.T) {
	_, err := RainKeyedMeasure("2015-03-05,5.5,S-P")
	assert.Error(t, err)
}

func TestCollectRainSumsPerKey(t *testing.T) {
	aggregation := NewRoundedAggregation(RainPrecision)
	err := CollectRain(aggregation, []string{
		"2015-03-05,5.5,SP",
		"2015-03-25,4.5,SP",
		"2015-04-01,-3.0,SP",
	})

	require.NoError(t, err)
	assert.Equal(t, []Bucket{
		{Key: "SP-2015-03", Sum: 10.0},
		{Key: "SP-2015-04", Sum: 0.0},
	}, aggregation.Buckets())
}

func TestCollectRainAbortsOnMalformedMeasure(t *testing.T) {
	err := CollectRain(NewRoundedAggregation(RainPrecision), []string{
		"2015-03-05,5.5,SP",
		"2015-03-06,not-a-number,SP",
	})
	assert.Error(t, err)
}
