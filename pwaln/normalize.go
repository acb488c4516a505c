package pwaln

import (
	"cmp"
	"slices"
)

// Normalize returns the records sorted ascending by the canonical key
// (RefChrom, RefStart, QryChrom, QryStart) with exact duplicates
// removed.
//
// Deduplication compares all six fields, not just the sort key: two
// records may tie on the key yet differ in RefEnd or QryEnd, and both
// must be kept. Only rows that are field-wise identical (typically
// produced by overlapping upstream alignment jobs) are dropped.
//
// The input slice is not modified.
func Normalize(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}

	sorted := slices.Clone(records)
	slices.SortFunc(sorted, compareFull)

	// The full order places exact duplicates adjacently, so a single
	// compaction pass removes them all.
	return slices.CompactFunc(sorted, Record.Equal)
}

// compareFull is the total order used for sorting: the canonical key
// first, then RefEnd and QryEnd as tie breakers. The key alone is not
// a total order over records, and an unstable sort under it may
// separate exact duplicates with key-equal neighbors, leaving them
// non-adjacent for compaction. Any order among key-equal records is
// acceptable on the wire; this one also makes it deterministic.
func compareFull(a, b Record) int {
	if c := a.Compare(b); c != 0 {
		return c
	}
	if c := cmp.Compare(a.RefEnd, b.RefEnd); c != 0 {
		return c
	}

	return cmp.Compare(a.QryEnd, b.QryEnd)
}
