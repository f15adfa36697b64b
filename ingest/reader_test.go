package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadLinesSkipsHeader(t *testing.T) {
	path := writeDataset(t, "data,rainfall,uf\n2015-03-05,5.5,SP\n2015-03-25,4.5,SP\n")

	lines, err := ReadLines(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"2015-03-05,5.5,SP", "2015-03-25,4.5,SP"}, lines)
}

func TestReadLinesEmptyDataset(t *testing.T) {
	path := writeDataset(t, "data,rainfall,uf\n")

	lines, err := ReadLines(path)

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadLinesSkipsBlankLines(t *testing.T) {
	path := writeDataset(t, "header\nfirst\n\nsecond\n")

	lines, err := ReadLines(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, lines)
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestChunkLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	chunks := ChunkLines(lines, 2)

	require.Len(t, chunks, 3)
	assert.Equal(t, []string{"a", "b"}, chunks[0])
	assert.Equal(t, []string{"c", "d"}, chunks[1])
	assert.Equal(t, []string{"e"}, chunks[2])
}

func TestChunkLinesZeroSizeMeansOneChunk(t *testing.T) {
	chunks := ChunkLines([]string{"a", "b"}, 0)

	require.Len(t, chunks, 1)
	assert.Equal(t, []string{"a", "b"}, chunks[0])
}

func TestChunkLinesEmptyInput(t *testing.T) {
	assert.Nil(t, ChunkLines(nil, 10))
}
