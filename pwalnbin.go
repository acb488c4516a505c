// Package pwalnbin converts in-memory pairwise genome-alignment
// (pwaln) tables into the compact fixed-layout binary file consumed by
// the native projection engine, and parses such files back.
//
// The conversion is a single forward pipeline per species pair:
// normalize (sort by the canonical key, drop exact duplicates), group
// into runs of equal reference chromosome, then serialize with
// fixed-width integer fields and zero-terminated strings. The file has
// no magic number, version field, checksum or index; the grammar alone
// is the contract between writer and reader.
//
// # Basic Usage
//
// Encoding a dataset:
//
//	ds := &pwaln.Dataset{
//	    Chromosomes: []string{"chr1", "chr2"},
//	    Species: []pwaln.PrimaryEntry{{
//	        Name: "human",
//	        Pairs: []pwaln.PairTable{{Query: "mouse", Records: records}},
//	    }},
//	}
//
//	data, err := pwalnbin.Encode(ds)
//
// Streaming to a file, encoding species pairs in parallel:
//
//	n, err := pwalnbin.EncodeTo(f, ds)
//
// Decoding:
//
//	ds, err := pwalnbin.Decode(data)
//
// Byte order is little-endian unless switched per call with
// blob.WithBigEndian (and its writer/decoder counterparts); writer and
// reader must agree, as the file does not announce its order.
//
// This package provides convenient wrappers around the blob package;
// use blob directly for reusable encoders or fine-grained control.
package pwalnbin

import (
	"io"
	"slices"

	"github.com/seqforge/pwalnbin/blob"
	"github.com/seqforge/pwalnbin/internal/hash"
	"github.com/seqforge/pwalnbin/pwaln"
)

// Encode normalizes and serializes the dataset, returning the encoded
// file contents.
func Encode(ds *pwaln.Dataset, opts ...blob.EncoderOption) ([]byte, error) {
	enc, err := blob.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	defer enc.Reset()

	data, err := enc.Encode(ds)
	if err != nil {
		return nil, err
	}

	// The encoder's buffer goes back to the pool on Reset.
	return slices.Clone(data), nil
}

// EncodeTo normalizes and serializes the dataset directly to w,
// encoding species pairs in parallel while keeping the output bytes in
// source order. It returns the number of bytes written.
//
// On error any bytes already written leave w holding a truncated,
// non-conforming file; the caller should delete or flag it.
func EncodeTo(w io.Writer, ds *pwaln.Dataset, opts ...blob.FileWriterOption) (int64, error) {
	fw, err := blob.NewFileWriter(opts...)
	if err != nil {
		return 0, err
	}

	return fw.WriteTo(w, ds)
}

// Decode parses an encoded pwaln file back into a dataset. Each
// species pair's records are returned in file order, i.e. sorted by
// (ref_chrom, ref_start, qry_chrom, qry_start) and duplicate-free for
// files produced by this package.
func Decode(data []byte, opts ...blob.DecoderOption) (*pwaln.Dataset, error) {
	dec, err := blob.NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode()
}

// Fingerprint returns the xxHash64 of encoded file contents.
//
// The format itself carries no checksum, so this is the supported way
// to compare two outputs for byte identity or log a stable identifier
// for a produced file.
func Fingerprint(data []byte) uint64 {
	return hash.Sum64(data)
}
