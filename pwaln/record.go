// Package pwaln models pairwise genome-alignment (pwaln) tables and
// the normalization that prepares them for binary encoding: sorting by
// the canonical key, exact-duplicate removal, and run-length grouping
// by reference chromosome.
//
// All types are plain values derived once from the source dataset and
// never mutated afterwards.
package pwaln

import "cmp"

// Record is one pairwise alignment entry. Chromosomes are positional
// indices into the dataset's chromosome dictionary; coordinates are
// passed through unchanged (whether an end is inclusive or exclusive is
// the upstream aligner's convention, not this module's).
//
// The field widths match the wire format exactly, so a Record can never
// hold a value its wire encoding cannot represent.
type Record struct {
	RefChrom uint16
	RefStart uint32
	RefEnd   uint32
	QryChrom uint16
	QryStart uint32
	QryEnd   uint32
}

// Compare orders records by the canonical sort key
// (RefChrom, RefStart, QryChrom, QryStart), ascending.
//
// The key deliberately excludes RefEnd and QryEnd: records equal under
// the key but differing in an end coordinate are distinct and both
// survive normalization.
func (r Record) Compare(other Record) int {
	if c := cmp.Compare(r.RefChrom, other.RefChrom); c != 0 {
		return c
	}
	if c := cmp.Compare(r.RefStart, other.RefStart); c != 0 {
		return c
	}
	if c := cmp.Compare(r.QryChrom, other.QryChrom); c != 0 {
		return c
	}

	return cmp.Compare(r.QryStart, other.QryStart)
}

// Equal reports whether the two records match on all six fields.
func (r Record) Equal(other Record) bool {
	return r == other
}
