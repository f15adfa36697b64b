package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T) (*Pipeline, *Aggregation, *Aggregation) {
	t.Helper()

	p := New()
	dengue := NewAggregation()
	rain := NewRoundedAggregation(RainPrecision)
	require.NoError(t, p.Register(DengueSource, dengue))
	require.NoError(t, p.Register(RainSource, rain))
	return p, dengue, rain
}

func TestRegisterDuplicateSource(t *testing.T) {
	p := New()
	require.NoError(t, p.Register(DengueSource, NewAggregation()))
	assert.Error(t, p.Register(DengueSource, NewAggregation()))
}

func TestPipelinesAreIndependent(t *testing.T) {
	first, firstDengue, _ := newTestPipeline(t)
	second, _, _ := newTestPipeline(t)

	firstDengue.Add(KeyedMeasure{Key: "SP-2015-03", Value: 1.0})

	assert.Equal(t, 1, first.Aggregation(DengueSource).Len())
	assert.Equal(t, 0, second.Aggregation(DengueSource).Len())
}

func TestEndToEndReport(t *testing.T) {
	p, dengue, rain := newTestPipeline(t)

	require.NoError(t, CollectDengue(dengue, []string{
		dengueLine("2015-03-10", "10", "SP"),
		dengueLine("2015-03-20", "abc", "SP"),
	}))
	require.NoError(t, CollectRain(rain, []string{
		"2015-03-05,5.5,SP",
		"2015-03-25,4.5,SP",
	}))

	report, err := p.Report()

	require.NoError(t, err)
	assert.Equal(t, []string{"SP;2015;03;10.0;10.0"}, report)
}

func TestOneSourceKeysAreDropped(t *testing.T) {
	p, dengue, rain := newTestPipeline(t)

	// Rain data for April has no dengue counterpart and must not appear.
	require.NoError(t, CollectDengue(dengue, []string{
		dengueLine("2015-03-10", "10", "SP"),
	}))
	require.NoError(t, CollectRain(rain, []string{
		"2015-03-05,5.5,SP",
		"2015-04-05,8.0,SP",
	}))

	report, err := p.Report()

	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "SP;2015;03;10.0;5.5", report[0])
}

func TestBothSourceKeysAppearExactlyOnce(t *testing.T) {
	p, dengue, rain := newTestPipeline(t)

	require.NoError(t, CollectDengue(dengue, []string{
		dengueLine("2015-03-10", "3", "SP"),
		dengueLine("2015-03-17", "4", "SP"),
		dengueLine("2015-03-10", "1", "RJ"),
	}))
	require.NoError(t, CollectRain(rain, []string{
		"2015-03-05,1.0,SP",
		"2015-03-06,2.0,SP",
		"2015-03-05,9.0,RJ",
	}))

	report, err := p.Report()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"RJ;2015;03;9.0;1.0",
		"SP;2015;03;3.0;7.0",
	}, report)
}

func TestNegativeRainfallContributesZero(t *testing.T) {
	p, dengue, rain := newTestPipeline(t)

	require.NoError(t, CollectDengue(dengue, []string{
		dengueLine("2015-04-02", "2", "SP"),
	}))
	require.NoError(t, CollectRain(rain, []string{
		"2015-04-01,-3.0,SP",
	}))

	report, err := p.Report()

	require.NoError(t, err)
	assert.Equal(t, []string{"SP;2015;04;0.0;2.0"}, report)
}

func TestRainSumRoundsToSixDigits(t *testing.T) {
	p, dengue, rain := newTestPipeline(t)

	require.NoError(t, CollectDengue(dengue, []string{
		dengueLine("2015-03-10", "1", "SP"),
	}))
	require.NoError(t, CollectRain(rain, []string{
		"2015-03-05,12.3456789,SP",
	}))

	report, err := p.Report()

	require.NoError(t, err)
	assert.Equal(t, []string{"SP;2015;03;12.345679;1.0"}, report)
}
