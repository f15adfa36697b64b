// Package storage persists the final report. The pipeline hands every sink
// the same ordered (UF, YEAR, MONTH, RAINFALL, DENGUE_CASES) tuples.
package storage

// ReportWriter is the interface any report sink must satisfy.
type ReportWriter interface {
	Write(rows [][]string) error
	Close() error
}
