package blob

import (
	"bytes"
	"fmt"

	"github.com/seqforge/pwalnbin/endian"
	"github.com/seqforge/pwalnbin/errs"
	"github.com/seqforge/pwalnbin/format"
	"github.com/seqforge/pwalnbin/internal/options"
	"github.com/seqforge/pwalnbin/pwaln"
)

// DecoderOption represents a functional option for configuring the Decoder.
type DecoderOption = options.Option[*Decoder]

// WithDecoderLittleEndian sets the decoder to read little-endian data.
// This is the default.
func WithDecoderLittleEndian() DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.engine = endian.GetLittleEndianEngine()
	})
}

// WithDecoderBigEndian sets the decoder to read big-endian data.
//
// The format carries no byte-order flag, so the caller must know how
// the file was written; a wrong choice typically surfaces as an
// implausible count and an unexpected-EOF error.
func WithDecoderBigEndian() DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.engine = endian.GetBigEndianEngine()
	})
}

// Decoder parses a complete pwaln binary file back into a
// pwaln.Dataset.
//
// Parsing is strictly top-down over the grammar using the declared
// counts; there are no terminators to resynchronize on, so any
// structural violation (truncation, trailing bytes, an empty run, a
// reference chromosome split across runs) is a hard error.
type Decoder struct {
	engine endian.EndianEngine
	data   []byte
	off    int
}

// NewDecoder creates a Decoder over the given encoded bytes. Without
// options it reads little-endian.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	dec := &Decoder{
		engine: endian.GetLittleEndianEngine(),
		data:   data,
	}

	if err := options.Apply(dec, opts...); err != nil {
		return nil, err
	}

	return dec, nil
}

// Decode parses the full grammar and returns the reconstructed dataset.
//
// Each species pair's records come back as the concatenation of its
// runs in file order, which for a conforming file is the normalized
// (sorted, deduplicated) record sequence the encoder wrote.
func (d *Decoder) Decode() (*pwaln.Dataset, error) {
	numChroms, err := d.readUint16("num_chroms")
	if err != nil {
		return nil, err
	}

	ds := &pwaln.Dataset{}
	if numChroms > 0 {
		ds.Chromosomes = make([]string, 0, numChroms)
	}
	for i := 0; i < int(numChroms); i++ {
		name, err := d.readCString("chrom_name")
		if err != nil {
			return nil, err
		}
		ds.Chromosomes = append(ds.Chromosomes, name)
	}

	numSp1, err := d.readUint8("num_sp1")
	if err != nil {
		return nil, err
	}

	if numSp1 > 0 {
		ds.Species = make([]pwaln.PrimaryEntry, 0, numSp1)
	}
	for i := 0; i < int(numSp1); i++ {
		sp1, err := d.decodePrimaryEntry()
		if err != nil {
			return nil, err
		}
		ds.Species = append(ds.Species, sp1)
	}

	if remaining := len(d.data) - d.off; remaining > 0 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrTrailingData, remaining)
	}

	return ds, nil
}

func (d *Decoder) decodePrimaryEntry() (pwaln.PrimaryEntry, error) {
	sp1 := pwaln.PrimaryEntry{}

	name, err := d.readCString("sp1_name")
	if err != nil {
		return sp1, err
	}
	sp1.Name = name

	numSp2, err := d.readUint8("num_sp2")
	if err != nil {
		return sp1, err
	}

	if numSp2 > 0 {
		sp1.Pairs = make([]pwaln.PairTable, 0, numSp2)
	}
	for j := 0; j < int(numSp2); j++ {
		pair, err := d.decodePairEntry(sp1.Name)
		if err != nil {
			return sp1, err
		}
		sp1.Pairs = append(sp1.Pairs, pair)
	}

	return sp1, nil
}

func (d *Decoder) decodePairEntry(primary string) (pwaln.PairTable, error) {
	pair := pwaln.PairTable{}

	query, err := d.readCString("sp2_name")
	if err != nil {
		return pair, err
	}
	pair.Query = query

	numRuns, err := d.readUint32("num_runs")
	if err != nil {
		return pair, fmt.Errorf("pair %s/%s: %w", primary, query, err)
	}

	// Cap the size hint: ref chrom is a u16, so no conforming file has
	// more runs than distinct u16 values, and a corrupt count must not
	// drive a huge allocation before the EOF checks catch it.
	hint := int(numRuns)
	if hint > format.MaxChromosomes+1 {
		hint = format.MaxChromosomes + 1
	}
	seen := make(map[uint16]struct{}, hint)
	for k := 0; k < int(numRuns); k++ {
		runChrom, records, err := d.decodeRun(pair.Records)
		if err != nil {
			return pair, fmt.Errorf("pair %s/%s: %w", primary, query, err)
		}

		if _, dup := seen[runChrom]; dup {
			return pair, fmt.Errorf("%w: pair %s/%s ref chrom %d", errs.ErrDuplicateRunChrom, primary, query, runChrom)
		}
		seen[runChrom] = struct{}{}

		pair.Records = records
	}

	return pair, nil
}

// decodeRun reads one run header and its records, appending onto dst.
// It returns the run's reference-chromosome index, taken from the first
// record since the header does not carry it.
func (d *Decoder) decodeRun(dst []pwaln.Record) (uint16, []pwaln.Record, error) {
	runLen, err := d.readUint32("run_len")
	if err != nil {
		return 0, nil, err
	}
	if runLen == 0 {
		return 0, nil, errs.ErrEmptyRun
	}

	// Bound the whole run against the remaining input before reading,
	// so a corrupt length cannot trigger a huge allocation.
	need := uint64(runLen) * format.RecordSize
	if uint64(len(d.data)-d.off) < need {
		return 0, nil, fmt.Errorf("%w: run of %d records needs %d bytes, %d remain",
			errs.ErrUnexpectedEOF, runLen, need, len(d.data)-d.off)
	}

	var runChrom uint16
	for n := 0; n < int(runLen); n++ {
		rec := d.readRecord()
		if n == 0 {
			runChrom = rec.RefChrom
		} else if rec.RefChrom != runChrom {
			return 0, nil, fmt.Errorf("%w: ref chrom %d in run of %d", errs.ErrRunChromMismatch, rec.RefChrom, runChrom)
		}
		dst = append(dst, rec)
	}

	return runChrom, dst, nil
}

// readRecord decodes one fixed-width record. The caller has already
// verified the remaining length.
func (d *Decoder) readRecord() pwaln.Record {
	b := d.data[d.off : d.off+format.RecordSize]
	d.off += format.RecordSize

	return pwaln.Record{
		RefStart: d.engine.Uint32(b[0:4]),
		RefEnd:   d.engine.Uint32(b[4:8]),
		QryStart: d.engine.Uint32(b[8:12]),
		QryEnd:   d.engine.Uint32(b[12:16]),
		RefChrom: d.engine.Uint16(b[16:18]),
		QryChrom: d.engine.Uint16(b[18:20]),
	}
}

func (d *Decoder) readUint8(field string) (uint8, error) {
	if len(d.data)-d.off < format.Uint8Size {
		return 0, fmt.Errorf("%w: reading %s", errs.ErrUnexpectedEOF, field)
	}

	v := d.data[d.off]
	d.off += format.Uint8Size

	return v, nil
}

func (d *Decoder) readUint16(field string) (uint16, error) {
	if len(d.data)-d.off < format.Uint16Size {
		return 0, fmt.Errorf("%w: reading %s", errs.ErrUnexpectedEOF, field)
	}

	v := d.engine.Uint16(d.data[d.off : d.off+format.Uint16Size])
	d.off += format.Uint16Size

	return v, nil
}

func (d *Decoder) readUint32(field string) (uint32, error) {
	if len(d.data)-d.off < format.Uint32Size {
		return 0, fmt.Errorf("%w: reading %s", errs.ErrUnexpectedEOF, field)
	}

	v := d.engine.Uint32(d.data[d.off : d.off+format.Uint32Size])
	d.off += format.Uint32Size

	return v, nil
}

func (d *Decoder) readCString(field string) (string, error) {
	idx := bytes.IndexByte(d.data[d.off:], 0)
	if idx < 0 {
		return "", fmt.Errorf("%w: reading %s", errs.ErrUnterminatedString, field)
	}

	s := string(d.data[d.off : d.off+idx])
	d.off += idx + 1

	return s, nil
}
