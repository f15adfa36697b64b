package pipeline

import "sort"

// JoinedBucket holds, for one composite key, the value sequences every
// named source contributed. A source with no bucket for the key keeps an
// empty sequence.
type JoinedBucket struct {
	Key    string
	Values map[string][]float64
}

// CoGroup merges named aggregated streams into per-key buckets over the
// union of all keys. No key is dropped here, even when only one source has
// data for it; completeness is a separate predicate so the grouping itself
// stays source-count-agnostic.
type CoGroup struct {
	sources []string
	groups  map[string]map[string][]float64
}

// NewCoGroup creates a co-group over the given source names.
func NewCoGroup(sources ...string) *CoGroup {
	names := make([]string, len(sources))
	copy(names, sources)
	return &CoGroup{
		sources: names,
		groups:  make(map[string]map[string][]float64),
	}
}

// Add records one summed bucket under its source name. Buckets from
// unregistered sources are ignored.
func (cg *CoGroup) Add(source string, bucket Bucket) {
	known := false
	for _, name := range cg.sources {
		if name == source {
			known = true
			break
		}
	}
	if !known {
		return
	}

	group, exists := cg.groups[bucket.Key]
	if !exists {
		group = make(map[string][]float64, len(cg.sources))
		cg.groups[bucket.Key] = group
	}
	group[source] = append(group[source], bucket.Sum)
}

// Buckets emits one joined bucket per key in the union of all sources'
// keys, sorted by key. Every bucket carries an entry for every source.
func (cg *CoGroup) Buckets() []JoinedBucket {
	keys := make([]string, 0, len(cg.groups))
	for key := range cg.groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]JoinedBucket, 0, len(keys))
	for _, key := range keys {
		values := make(map[string][]float64, len(cg.sources))
		for _, source := range cg.sources {
			values[source] = cg.groups[key][source]
		}
		buckets = append(buckets, JoinedBucket{Key: key, Values: values})
	}
	return buckets
}

// Complete reports whether every named source contributed at least one
// value for the bucket's key. Incomplete keys are dropped from the report,
// giving inner-join semantics on top of the outer grouping.
func (cg *CoGroup) Complete(bucket JoinedBucket) bool {
	for _, source := range cg.sources {
		if len(bucket.Values[source]) == 0 {
			return false
		}
	}
	return true
}
