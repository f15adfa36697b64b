package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readShard(t *testing.T, dir, name string) []string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func TestShardedCSVWriterSingleShard(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewShardedCSVWriter(dir, "resultado", 1)
	require.NoError(t, err)

	rows := [][]string{
		{"SP", "2015", "03", "10.0", "10.0"},
		{"RJ", "2015", "03", "9.0", "1.0"},
	}
	require.NoError(t, writer.Write(rows))
	require.NoError(t, writer.Close())

	lines := readShard(t, dir, "resultado-00000-of-00001.csv")
	require.Len(t, lines, 3)
	assert.Equal(t, "UF;YEAR;MONTH;RAINFALL;DENGUE_CASES", lines[0])
	assert.Contains(t, lines, "SP;2015;03;10.0;10.0")
	assert.Contains(t, lines, "RJ;2015;03;9.0;1.0")
}

func TestShardedCSVWriterDistributesRows(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewShardedCSVWriter(dir, "resultado", 2)
	require.NoError(t, err)

	rows := [][]string{
		{"SP", "2015", "03", "1.0", "1.0"},
		{"RJ", "2015", "03", "2.0", "2.0"},
		{"MG", "2015", "03", "3.0", "3.0"},
	}
	require.NoError(t, writer.Write(rows))
	require.NoError(t, writer.Close())

	first := readShard(t, dir, "resultado-00000-of-00002.csv")
	second := readShard(t, dir, "resultado-00001-of-00002.csv")

	// Every shard carries the header, data rows are spread across shards.
	assert.Equal(t, "UF;YEAR;MONTH;RAINFALL;DENGUE_CASES", first[0])
	assert.Equal(t, "UF;YEAR;MONTH;RAINFALL;DENGUE_CASES", second[0])
	assert.Equal(t, len(rows), (len(first)-1)+(len(second)-1))
}

func TestShardedCSVWriterEmptyReportKeepsHeader(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewShardedCSVWriter(dir, "resultado", 1)
	require.NoError(t, err)
	require.NoError(t, writer.Write(nil))
	require.NoError(t, writer.Close())

	lines := readShard(t, dir, "resultado-00000-of-00001.csv")
	assert.Equal(t, []string{"UF;YEAR;MONTH;RAINFALL;DENGUE_CASES"}, lines)
}

func TestShardedCSVWriterClampsShardCount(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewShardedCSVWriter(dir, "resultado", 0)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	_, statErr := os.Stat(filepath.Join(dir, "resultado-00000-of-00001.csv"))
	assert.NoError(t, statErr)
}
