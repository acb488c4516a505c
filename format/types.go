// Package format defines the structural limits of the pwaln binary
// format and the width checks every count must pass before it is
// written.
//
// The wire format uses three fixed integer widths (u8, u16, u32) and
// zero-terminated strings. Rather than checking ranges ad hoc at each
// write site, out-of-range values are rejected at a single choke point
// per width, so a violation is reported with the field name and value
// that caused it instead of being silently truncated.
package format

import (
	"fmt"
	"math"

	"github.com/seqforge/pwalnbin/errs"
)

// Wire field widths in bytes.
const (
	Uint8Size  = 1
	Uint16Size = 2
	Uint32Size = 4

	// RecordSize is the fixed width of one alignment record on the
	// wire: four u32 coordinates followed by two u16 chromosome
	// indices.
	RecordSize = 4*Uint32Size + 2*Uint16Size
)

// Structural limits implied by the field widths.
const (
	// MaxChromosomes bounds the chromosome dictionary; indices must fit
	// the u16 ref_chrom/qry_chrom record fields.
	MaxChromosomes = math.MaxUint16

	// MaxPrimarySpecies bounds the number of primary species (num_sp1
	// is a u8).
	MaxPrimarySpecies = math.MaxUint8

	// MaxSecondarySpecies bounds the number of secondary species per
	// primary (num_sp2 is a u8).
	MaxSecondarySpecies = math.MaxUint8

	// MaxRuns bounds the number of runs per species pair (num_runs is
	// a u32).
	MaxRuns = math.MaxUint32

	// MaxRunRecords bounds the number of records per run (run_len is a
	// u32).
	MaxRunRecords = math.MaxUint32
)

// CheckUint8 reports whether v is representable as an unsigned 8-bit
// wire field. The label names the field in the returned error.
func CheckUint8(label string, v int) error {
	if v < 0 || v > math.MaxUint8 {
		return fmt.Errorf("%w: %s %d does not fit in 1 byte", errs.ErrRangeOverflow, label, v)
	}

	return nil
}

// CheckUint16 reports whether v is representable as an unsigned 16-bit
// wire field.
func CheckUint16(label string, v int) error {
	if v < 0 || v > math.MaxUint16 {
		return fmt.Errorf("%w: %s %d does not fit in 2 bytes", errs.ErrRangeOverflow, label, v)
	}

	return nil
}

// CheckUint32 reports whether v is representable as an unsigned 32-bit
// wire field.
func CheckUint32(label string, v int) error {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return fmt.Errorf("%w: %s %d does not fit in 4 bytes", errs.ErrRangeOverflow, label, v)
	}

	return nil
}
