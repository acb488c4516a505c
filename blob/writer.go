package blob

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/seqforge/pwalnbin/endian"
	"github.com/seqforge/pwalnbin/format"
	"github.com/seqforge/pwalnbin/internal/options"
	"github.com/seqforge/pwalnbin/internal/pool"
	"github.com/seqforge/pwalnbin/pwaln"
)

// FileWriterOption represents a functional option for configuring the FileWriter.
type FileWriterOption = options.Option[*FileWriter]

// WithWriterLittleEndian sets the writer to produce little-endian
// output. This is the default.
func WithWriterLittleEndian() FileWriterOption {
	return options.NoError(func(w *FileWriter) {
		w.engine = endian.GetLittleEndianEngine()
	})
}

// WithWriterBigEndian sets the writer to produce big-endian output.
func WithWriterBigEndian() FileWriterOption {
	return options.NoError(func(w *FileWriter) {
		w.engine = endian.GetBigEndianEngine()
	})
}

// WithConcurrency limits how many species pairs are encoded in
// parallel. Values below 1 are rejected. The default is
// runtime.GOMAXPROCS(0).
func WithConcurrency(n int) FileWriterOption {
	return options.New(func(w *FileWriter) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", n)
		}
		w.concurrency = n

		return nil
	})
}

// FileWriter streams an encoded dataset to an io.Writer.
//
// Species pairs carry no shared state, so their payloads are encoded
// concurrently, each into its own pooled buffer; the buffers are then
// written to the output strictly in source order, preserving the exact
// byte layout of the sequential Encoder. The output writer is touched
// by one goroutine only.
//
// Any failure is terminal for the conversion. Validation errors occur
// before the first byte reaches the writer; an I/O error mid-stream
// leaves a truncated, non-conforming file that the caller should delete
// or flag.
type FileWriter struct {
	engine      endian.EndianEngine
	concurrency int
}

// NewFileWriter creates a FileWriter. Without options it writes
// little-endian and encodes pairs with GOMAXPROCS parallelism.
func NewFileWriter(opts ...FileWriterOption) (*FileWriter, error) {
	fw := &FileWriter{
		engine:      endian.GetLittleEndianEngine(),
		concurrency: runtime.GOMAXPROCS(0),
	}

	if err := options.Apply(fw, opts...); err != nil {
		return nil, err
	}

	return fw, nil
}

// WriteTo encodes the dataset and writes it to out, returning the
// number of bytes written.
func (fw *FileWriter) WriteTo(out io.Writer, ds *pwaln.Dataset) (int64, error) {
	if err := format.CheckUint16("chromosome count", len(ds.Chromosomes)); err != nil {
		return 0, err
	}
	if err := format.CheckUint8("primary species count", len(ds.Species)); err != nil {
		return 0, err
	}
	for _, sp1 := range ds.Species {
		if err := format.CheckUint8("secondary species count", len(sp1.Pairs)); err != nil {
			return 0, fmt.Errorf("primary species %q: %w", sp1.Name, err)
		}
	}

	bufs, err := fw.encodePairs(ds)
	defer releasePairBuffers(bufs)
	if err != nil {
		return 0, err
	}

	head := pool.GetPairBuffer()
	defer pool.PutPairBuffer(head)

	b := fw.engine.AppendUint16(head.B, uint16(len(ds.Chromosomes)))
	for _, name := range ds.Chromosomes {
		if b, err = appendCString(b, "chromosome name", name); err != nil {
			return 0, err
		}
	}
	b = append(b, uint8(len(ds.Species)))
	head.B = b

	var total int64
	if err := writeBuffer(out, head, &total); err != nil {
		return total, err
	}

	entry := pool.GetPairBuffer()
	defer pool.PutPairBuffer(entry)

	for i, sp1 := range ds.Species {
		entry.Reset()
		if entry.B, err = appendCString(entry.B, "primary species name", sp1.Name); err != nil {
			return total, err
		}
		entry.B = append(entry.B, uint8(len(sp1.Pairs)))

		if err := writeBuffer(out, entry, &total); err != nil {
			return total, err
		}

		for j := range sp1.Pairs {
			if err := writeBuffer(out, bufs[i][j], &total); err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

// encodePairs encodes every species pair's sp2_entry payload into its
// own buffer, in parallel. The returned slice is indexed by
// [primary][pair] in source order.
func (fw *FileWriter) encodePairs(ds *pwaln.Dataset) ([][]*pool.ByteBuffer, error) {
	bufs := make([][]*pool.ByteBuffer, len(ds.Species))
	for i, sp1 := range ds.Species {
		bufs[i] = make([]*pool.ByteBuffer, len(sp1.Pairs))
	}

	var g errgroup.Group
	g.SetLimit(fw.concurrency)

	for i := range ds.Species {
		sp1 := &ds.Species[i]
		for j := range sp1.Pairs {
			i, j, sp1 := i, j, sp1
			g.Go(func() error {
				buf := pool.GetPairBuffer()
				bufs[i][j] = buf

				b, err := appendPairEntry(buf.B, fw.engine, sp1.Name, sp1.Pairs[j])
				if err != nil {
					return err
				}
				buf.B = b

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return bufs, err
	}

	return bufs, nil
}

func writeBuffer(out io.Writer, buf *pool.ByteBuffer, total *int64) error {
	n, err := buf.WriteTo(out)
	*total += n

	return err
}

func releasePairBuffers(bufs [][]*pool.ByteBuffer) {
	for _, row := range bufs {
		for _, buf := range row {
			pool.PutPairBuffer(buf)
		}
	}
}
