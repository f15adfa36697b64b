package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitKeyRoundTrip(t *testing.T) {
	region, year, month, err := SplitKey("SP-2015-03")

	require.NoError(t, err)
	assert.Equal(t, "SP", region)
	assert.Equal(t, "2015", year)
	assert.Equal(t, "03", month)
}

func TestSplitKeyWrongTokenCount(t *testing.T) {
	_, _, _, err := SplitKey("SP-2015")
	assert.Error(t, err)

	_, _, _, err = SplitKey("S-P-2015-03")
	assert.Error(t, err)
}

func TestUnpackRow(t *testing.T) {
	bucket := JoinedBucket{
		Key: "SP-2015-03",
		Values: map[string][]float64{
			RainSource:   {10.0},
			DengueSource: {7.5},
		},
	}

	row, err := UnpackRow(bucket)

	require.NoError(t, err)
	assert.Equal(t, []string{"SP", "2015", "03", "10.0", "7.5"}, row)
}

func TestUnpackRowIncompleteBucket(t *testing.T) {
	bucket := JoinedBucket{
		Key: "SP-2015-03",
		Values: map[string][]float64{
			RainSource:   {10.0},
			DengueSource: nil,
		},
	}

	_, err := UnpackRow(bucket)
	assert.Error(t, err)
}

func TestFormatRow(t *testing.T) {
	row := []string{"SP", "2015", "03", "10.0", "7.5"}
	assert.Equal(t, "SP;2015;03;10.0;7.5", FormatRow(row))
}

func TestFormatMeasure(t *testing.T) {
	assert.Equal(t, "10.0", FormatMeasure(10.0))
	assert.Equal(t, "0.0", FormatMeasure(0.0))
	assert.Equal(t, "12.345679", FormatMeasure(12.345679))
	assert.Equal(t, "2.5", FormatMeasure(2.5))
}

func TestReportHeader(t *testing.T) {
	assert.Equal(t, "UF;YEAR;MONTH;RAINFALL;DENGUE_CASES", ReportHeader())
}
