package blob

import (
	"fmt"
	"strings"

	"github.com/seqforge/pwalnbin/endian"
	"github.com/seqforge/pwalnbin/errs"
	"github.com/seqforge/pwalnbin/format"
	"github.com/seqforge/pwalnbin/internal/options"
	"github.com/seqforge/pwalnbin/internal/pool"
	"github.com/seqforge/pwalnbin/pwaln"
)

// EncoderOption represents a functional option for configuring the Encoder.
type EncoderOption = options.Option[*Encoder]

// WithLittleEndian sets the encoder to use little-endian byte order.
// This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian sets the encoder to use big-endian byte order, for
// readers built on big-endian platforms.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetBigEndianEngine()
	})
}

// Encoder serializes a pwaln.Dataset into the binary wire format in a
// single linear pass.
//
// The encoder normalizes each species pair's records (sort plus exact
// duplicate removal) and groups them into runs before writing, so the
// caller can hand over raw alignment tables as produced upstream.
//
// Note: The Encoder is not safe for concurrent use, and the slice
// returned by Encode is only valid until Reset is called.
type Encoder struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
}

// NewEncoder creates a new Encoder. Without options it writes
// little-endian.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	enc := &Encoder{
		engine: endian.GetLittleEndianEngine(),
		buf:    pool.GetPairBuffer(),
	}

	if err := options.Apply(enc, opts...); err != nil {
		enc.Reset()
		return nil, err
	}

	return enc, nil
}

// Encode serializes the dataset and returns the encoded bytes.
//
// Counts are validated against their wire widths and names against the
// embedded-zero rule before anything depending on them is written; a
// violation aborts with an error naming the offending field, value and
// species pair. On error the partially filled buffer is discarded and
// nothing of it escapes.
func (e *Encoder) Encode(ds *pwaln.Dataset) ([]byte, error) {
	if err := format.CheckUint16("chromosome count", len(ds.Chromosomes)); err != nil {
		return nil, err
	}
	if err := format.CheckUint8("primary species count", len(ds.Species)); err != nil {
		return nil, err
	}

	e.buf.Reset()
	e.buf.Grow(datasetSizeHint(ds))

	b := e.buf.B
	b = e.engine.AppendUint16(b, uint16(len(ds.Chromosomes)))

	var err error
	for _, name := range ds.Chromosomes {
		if b, err = appendCString(b, "chromosome name", name); err != nil {
			return nil, err
		}
	}

	b = append(b, uint8(len(ds.Species)))
	for _, sp1 := range ds.Species {
		if b, err = appendCString(b, "primary species name", sp1.Name); err != nil {
			return nil, err
		}

		if err = format.CheckUint8("secondary species count", len(sp1.Pairs)); err != nil {
			return nil, fmt.Errorf("primary species %q: %w", sp1.Name, err)
		}
		b = append(b, uint8(len(sp1.Pairs)))

		for _, pair := range sp1.Pairs {
			if b, err = appendPairEntry(b, e.engine, sp1.Name, pair); err != nil {
				return nil, err
			}
		}
	}

	e.buf.B = b

	return e.buf.Bytes(), nil
}

// Reset returns the encoder's buffer to the pool. The encoder must not
// be used afterwards.
func (e *Encoder) Reset() {
	if e.buf != nil {
		pool.PutPairBuffer(e.buf)
		e.buf = nil
	}
}

// datasetSizeHint estimates the encoded size so the buffer grows once.
// Name bytes and run headers are approximated; records dominate.
func datasetSizeHint(ds *pwaln.Dataset) int {
	hint := format.Uint16Size + format.Uint8Size
	for _, name := range ds.Chromosomes {
		hint += len(name) + 1
	}

	return hint + ds.RecordCount()*format.RecordSize
}

// appendCString appends the raw bytes of name followed by a zero
// terminator. Names containing a zero byte are rejected, since the
// reader has no other way to find the end of the string.
func appendCString(dst []byte, label, name string) ([]byte, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return nil, fmt.Errorf("%w: %s %q", errs.ErrEmbeddedZero, label, name)
	}

	dst = append(dst, name...)

	return append(dst, 0), nil
}

// appendRecord appends one fixed-width wire record: the four u32
// coordinates first, then the two u16 chromosome indices.
func appendRecord(dst []byte, engine endian.EndianEngine, rec pwaln.Record) []byte {
	dst = engine.AppendUint32(dst, rec.RefStart)
	dst = engine.AppendUint32(dst, rec.RefEnd)
	dst = engine.AppendUint32(dst, rec.QryStart)
	dst = engine.AppendUint32(dst, rec.QryEnd)
	dst = engine.AppendUint16(dst, rec.RefChrom)

	return engine.AppendUint16(dst, rec.QryChrom)
}

// appendPairEntry normalizes, groups and appends one complete
// sp2_entry. Errors carry the species pair for diagnosis.
func appendPairEntry(dst []byte, engine endian.EndianEngine, primary string, pair pwaln.PairTable) ([]byte, error) {
	dst, err := appendCString(dst, "secondary species name", pair.Query)
	if err != nil {
		return nil, fmt.Errorf("primary species %q: %w", primary, err)
	}

	records := pwaln.Normalize(pair.Records)
	runs := pwaln.GroupRuns(records)

	if err := format.CheckUint32("run count", len(runs)); err != nil {
		return nil, fmt.Errorf("pair %s/%s: %w", primary, pair.Query, err)
	}
	dst = engine.AppendUint32(dst, uint32(len(runs)))

	for _, run := range runs {
		if err := format.CheckUint32("run length", len(run.Records)); err != nil {
			return nil, fmt.Errorf("pair %s/%s ref chrom %d: %w", primary, pair.Query, run.RefChrom, err)
		}
		dst = engine.AppendUint32(dst, uint32(len(run.Records)))

		for _, rec := range run.Records {
			dst = appendRecord(dst, engine, rec)
		}
	}

	return dst, nil
}
