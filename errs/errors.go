// Package errs defines the sentinel errors returned by pwalnbin.
//
// All errors returned from the encoder and decoder either are, or wrap
// (via fmt.Errorf("%w: ...")), one of the sentinels below, so callers
// can classify failures with errors.Is while still receiving the
// species-pair and field context in the message.
package errs

import "errors"

var (
	// ErrRangeOverflow indicates a count or coordinate does not fit the
	// fixed width its wire field declares (e.g. more than 65535
	// chromosomes, more than 255 species under one primary).
	ErrRangeOverflow = errors.New("value exceeds field width")

	// ErrEmbeddedZero indicates a name contains a NUL byte, which would
	// corrupt the zero-terminated string encoding.
	ErrEmbeddedZero = errors.New("name contains embedded zero byte")

	// ErrUnexpectedEOF indicates the input ended before a declared
	// count of items or bytes was satisfied.
	ErrUnexpectedEOF = errors.New("unexpected end of data")

	// ErrTrailingData indicates bytes remain after the grammar has been
	// fully consumed.
	ErrTrailingData = errors.New("trailing data after end of file grammar")

	// ErrUnterminatedString indicates a name field has no zero
	// terminator before the end of the input.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrEmptyRun indicates a run header declared zero records; runs
	// are non-empty by construction.
	ErrEmptyRun = errors.New("run with zero records")

	// ErrDuplicateRunChrom indicates two runs within one species pair
	// share a reference-chromosome index; each index must appear in
	// exactly one run.
	ErrDuplicateRunChrom = errors.New("duplicate reference chromosome across runs")

	// ErrRunChromMismatch indicates a record inside a run carries a
	// different reference-chromosome index than the run's first record.
	ErrRunChromMismatch = errors.New("mixed reference chromosomes within run")
)
