package blob

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seqforge/pwalnbin/errs"
	"github.com/seqforge/pwalnbin/pwaln"
)

// exampleDataset is the reference scenario: two chromosomes, one
// human/mouse pair with an out-of-order record and an exact duplicate.
func exampleDataset() *pwaln.Dataset {
	return &pwaln.Dataset{
		Chromosomes: []string{"chr1", "chr2"},
		Species: []pwaln.PrimaryEntry{{
			Name: "human",
			Pairs: []pwaln.PairTable{{
				Query: "mouse",
				Records: []pwaln.Record{
					{RefChrom: 1, RefStart: 500, RefEnd: 600, QryChrom: 0, QryStart: 10, QryEnd: 20},
					{RefChrom: 0, RefStart: 100, RefEnd: 200, QryChrom: 0, QryStart: 5, QryEnd: 15},
					{RefChrom: 0, RefStart: 100, RefEnd: 200, QryChrom: 0, QryStart: 5, QryEnd: 15}, // duplicate
				},
			}},
		}},
	}
}

func TestEncoderExampleScenarioLayout(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Reset()

	data, err := enc.Encode(exampleDataset())
	require.NoError(t, err)

	le := binary.LittleEndian
	var want []byte
	want = le.AppendUint16(want, 2)         // num_chroms
	want = append(want, "chr1\x00"...)
	want = append(want, "chr2\x00"...)
	want = append(want, 1)                  // num_sp1
	want = append(want, "human\x00"...)
	want = append(want, 1)                  // num_sp2
	want = append(want, "mouse\x00"...)
	want = le.AppendUint32(want, 2)         // num_runs
	want = le.AppendUint32(want, 1)         // run 1 (ref_chrom 0), deduplicated
	want = le.AppendUint32(want, 100)       //   ref_start
	want = le.AppendUint32(want, 200)       //   ref_end
	want = le.AppendUint32(want, 5)         //   qry_start
	want = le.AppendUint32(want, 15)        //   qry_end
	want = le.AppendUint16(want, 0)         //   ref_chrom
	want = le.AppendUint16(want, 0)         //   qry_chrom
	want = le.AppendUint32(want, 1)         // run 2 (ref_chrom 1)
	want = le.AppendUint32(want, 500)       //   ref_start
	want = le.AppendUint32(want, 600)       //   ref_end
	want = le.AppendUint32(want, 10)        //   qry_start
	want = le.AppendUint32(want, 20)        //   qry_end
	want = le.AppendUint16(want, 1)         //   ref_chrom
	want = le.AppendUint16(want, 0)         //   qry_chrom

	require.Equal(t, want, data)
}

func TestEncoderBigEndianLayout(t *testing.T) {
	enc, err := NewEncoder(WithBigEndian())
	require.NoError(t, err)
	defer enc.Reset()

	data, err := enc.Encode(&pwaln.Dataset{Chromosomes: []string{"x"}})
	require.NoError(t, err)

	// num_chroms=1 big-endian, "x\0", num_sp1=0.
	require.Equal(t, []byte{0x00, 0x01, 'x', 0x00, 0x00}, data)
}

func TestEncoderEmptyDataset(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Reset()

	data, err := enc.Encode(&pwaln.Dataset{})
	require.NoError(t, err)

	// num_chroms=0 + num_sp1=0.
	require.Equal(t, []byte{0, 0, 0}, data)
}

func TestEncoderPairWithNoRecords(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Reset()

	ds := &pwaln.Dataset{
		Species: []pwaln.PrimaryEntry{{
			Name:  "human",
			Pairs: []pwaln.PairTable{{Query: "mouse"}},
		}},
	}

	data, err := enc.Encode(ds)
	require.NoError(t, err)

	var want []byte
	want = append(want, 0, 0, 1)        // num_chroms=0, num_sp1=1
	want = append(want, "human\x00"...)
	want = append(want, 1)              // num_sp2
	want = append(want, "mouse\x00"...)
	want = append(want, 0, 0, 0, 0)     // num_runs=0
	require.Equal(t, want, data)
}

func TestEncoderChromosomeCountOverflow(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Reset()

	ds := &pwaln.Dataset{Chromosomes: make([]string, 65536)}

	_, err = enc.Encode(ds)
	require.ErrorIs(t, err, errs.ErrRangeOverflow)
	require.Contains(t, err.Error(), "chromosome count")
}

func TestEncoderPrimarySpeciesCountOverflow(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Reset()

	ds := &pwaln.Dataset{Species: make([]pwaln.PrimaryEntry, 256)}

	_, err = enc.Encode(ds)
	require.ErrorIs(t, err, errs.ErrRangeOverflow)
	require.Contains(t, err.Error(), "primary species count")
}

func TestEncoderSecondarySpeciesCountOverflow(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Reset()

	ds := &pwaln.Dataset{
		Species: []pwaln.PrimaryEntry{{
			Name:  "human",
			Pairs: make([]pwaln.PairTable, 256),
		}},
	}

	_, err = enc.Encode(ds)
	require.ErrorIs(t, err, errs.ErrRangeOverflow)
	require.Contains(t, err.Error(), `"human"`)
}

func TestEncoderRejectsEmbeddedZero(t *testing.T) {
	tests := []struct {
		name string
		ds   *pwaln.Dataset
	}{
		{
			name: "chromosome name",
			ds:   &pwaln.Dataset{Chromosomes: []string{"chr\x001"}},
		},
		{
			name: "primary species name",
			ds:   &pwaln.Dataset{Species: []pwaln.PrimaryEntry{{Name: "hu\x00man"}}},
		},
		{
			name: "secondary species name",
			ds: &pwaln.Dataset{Species: []pwaln.PrimaryEntry{{
				Name:  "human",
				Pairs: []pwaln.PairTable{{Query: "mo\x00use"}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder()
			require.NoError(t, err)
			defer enc.Reset()

			_, err = enc.Encode(tt.ds)
			require.ErrorIs(t, err, errs.ErrEmbeddedZero)
		})
	}
}

func TestEncoderDeterministic(t *testing.T) {
	first, err := encodeOnce(t, exampleDataset())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := encodeOnce(t, exampleDataset())
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func encodeOnce(t *testing.T, ds *pwaln.Dataset) ([]byte, error) {
	t.Helper()

	enc, err := NewEncoder()
	require.NoError(t, err)
	defer enc.Reset()

	data, err := enc.Encode(ds)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}
