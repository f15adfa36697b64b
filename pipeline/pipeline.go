// Package pipeline implements the core report dataflow: parsing the two
// dataset layouts, deriving the REGION-YEAR-MONTH composite key, summing
// measures per key per source, co-grouping both sources and formatting the
// surviving rows.
package pipeline

import "fmt"

// Pipeline owns the named per-source aggregations of one report run. Every
// stage receives the pipeline (or a piece of it) explicitly, so independent
// runs never share state.
type Pipeline struct {
	names        map[string]bool
	order        []string
	aggregations map[string]*Aggregation
}

// New creates an empty pipeline with no registered sources.
func New() *Pipeline {
	return &Pipeline{
		names:        make(map[string]bool),
		aggregations: make(map[string]*Aggregation),
	}
}

// Register attaches a named source aggregation to the pipeline. Registering
// the same name twice is an error.
func (p *Pipeline) Register(name string, aggregation *Aggregation) error {
	if p.names[name] {
		return fmt.Errorf("source %q already registered", name)
	}
	p.names[name] = true
	p.order = append(p.order, name)
	p.aggregations[name] = aggregation
	return nil
}

// Aggregation returns the aggregation registered under name, or nil.
func (p *Pipeline) Aggregation(name string) *Aggregation {
	return p.aggregations[name]
}

// Sources returns the registered source names in registration order.
func (p *Pipeline) Sources() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// CoGroup merges the summed buckets of every registered source into a
// single co-group over the union of their keys.
func (p *Pipeline) CoGroup() *CoGroup {
	group := NewCoGroup(p.order...)
	for _, name := range p.order {
		for _, bucket := range p.aggregations[name].Buckets() {
			group.Add(name, bucket)
		}
	}
	return group
}

// Rows runs the join, completeness filter and row unpacking over the
// collected data and returns the surviving report tuples.
func (p *Pipeline) Rows() ([][]string, error) {
	group := p.CoGroup()

	var rows [][]string
	for _, bucket := range group.Buckets() {
		if !group.Complete(bucket) {
			continue
		}
		row, err := UnpackRow(bucket)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Report returns the final report lines, header excluded.
func (p *Pipeline) Report() ([]string, error) {
	rows, err := p.Rows()
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, FormatRow(row))
	}
	return lines, nil
}
