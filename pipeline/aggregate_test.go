package pipeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationSumsPerKey(t *testing.T) {
	aggregation := NewAggregation()
	aggregation.Add(KeyedMeasure{Key: "SP-2015-03", Value: 10.0})
	aggregation.Add(KeyedMeasure{Key: "SP-2015-03", Value: 0.0})
	aggregation.Add(KeyedMeasure{Key: "RJ-2015-03", Value: 2.0})

	assert.Equal(t, []Bucket{
		{Key: "RJ-2015-03", Sum: 2.0},
		{Key: "SP-2015-03", Sum: 10.0},
	}, aggregation.Buckets())
}

func TestAggregationOrderIndependent(t *testing.T) {
	measures := []KeyedMeasure{
		{Key: "SP-2015-03", Value: 1.25},
		{Key: "SP-2015-03", Value: 2.5},
		{Key: "SP-2015-03", Value: 3.75},
		{Key: "SP-2015-03", Value: 0.5},
	}

	forward := NewAggregation()
	for _, measure := range measures {
		forward.Add(measure)
	}

	shuffled := NewAggregation()
	perm := rand.New(rand.NewSource(42)).Perm(len(measures))
	for _, i := range perm {
		shuffled.Add(measures[i])
	}

	require.Len(t, forward.Buckets(), 1)
	assert.InDelta(t, forward.Buckets()[0].Sum, shuffled.Buckets()[0].Sum, 1e-9)
}

func TestRoundedAggregationSixDigits(t *testing.T) {
	aggregation := NewRoundedAggregation(RainPrecision)
	aggregation.Add(KeyedMeasure{Key: "SP-2015-03", Value: 12.3456789})

	buckets := aggregation.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, 12.345679, buckets[0].Sum)
}

func TestRoundingAppliesAfterSummation(t *testing.T) {
	aggregation := NewRoundedAggregation(RainPrecision)
	aggregation.Add(KeyedMeasure{Key: "SP-2015-03", Value: 6.17283945})
	aggregation.Add(KeyedMeasure{Key: "SP-2015-03", Value: 6.17283945})

	buckets := aggregation.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, 12.345679, buckets[0].Sum)
}

func TestAggregationLen(t *testing.T) {
	aggregation := NewAggregation()
	assert.Equal(t, 0, aggregation.Len())

	aggregation.Add(KeyedMeasure{Key: "SP-2015-03", Value: 1.0})
	aggregation.Add(KeyedMeasure{Key: "SP-2015-03", Value: 1.0})
	aggregation.Add(KeyedMeasure{Key: "RJ-2015-03", Value: 1.0})
	assert.Equal(t, 2, aggregation.Len())
}
