package pwalnbin

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seqforge/pwalnbin/pwaln"
)

// synthDataset builds a reproducible dataset with several species
// pairs, shuffled records and injected duplicates.
func synthDataset(seed int64) *pwaln.Dataset {
	rng := rand.New(rand.NewSource(seed))

	chroms := []string{"chr1", "chr2", "chr3", "chr4", "chrX", "scaffold_71"}

	makeRecords := func(n int) []pwaln.Record {
		records := make([]pwaln.Record, 0, n+n/4)
		for i := 0; i < n; i++ {
			rec := pwaln.Record{
				RefChrom: uint16(rng.Intn(len(chroms))),
				RefStart: rng.Uint32() % 1_000_000,
				QryChrom: uint16(rng.Intn(len(chroms))),
				QryStart: rng.Uint32() % 1_000_000,
			}
			rec.RefEnd = rec.RefStart + 1 + rng.Uint32()%5_000
			rec.QryEnd = rec.QryStart + 1 + rng.Uint32()%5_000
			records = append(records, rec)

			// Sprinkle exact duplicates, as overlapping upstream
			// alignment jobs would.
			if rng.Intn(4) == 0 {
				records = append(records, rec)
			}
		}
		rng.Shuffle(len(records), func(i, j int) {
			records[i], records[j] = records[j], records[i]
		})

		return records
	}

	// Records drawn from a tiny coordinate space, so canonical-key ties
	// and exact duplicates are both frequent and non-adjacent.
	makeTieHeavyRecords := func(n int) []pwaln.Record {
		records := make([]pwaln.Record, 0, n)
		for i := 0; i < n; i++ {
			rec := pwaln.Record{
				RefChrom: uint16(rng.Intn(2)),
				RefStart: rng.Uint32() % 3,
				QryChrom: uint16(rng.Intn(2)),
				QryStart: rng.Uint32() % 3,
				RefEnd:   rng.Uint32() % 8,
				QryEnd:   rng.Uint32() % 8,
			}
			records = append(records, rec)
		}

		return records
	}

	return &pwaln.Dataset{
		Chromosomes: chroms,
		Species: []pwaln.PrimaryEntry{
			{
				Name: "human",
				Pairs: []pwaln.PairTable{
					{Query: "mouse", Records: makeRecords(400)},
					{Query: "chicken", Records: makeRecords(120)},
				},
			},
			{
				Name: "mouse",
				Pairs: []pwaln.PairTable{
					{Query: "rat", Records: makeRecords(250)},
					{Query: "frog", Records: makeTieHeavyRecords(300)},
				},
			},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ds := synthDataset(42)

	data, err := Encode(ds)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, ds.Chromosomes, got.Chromosomes)
	require.Len(t, got.Species, len(ds.Species))

	for i, sp1 := range ds.Species {
		require.Equal(t, sp1.Name, got.Species[i].Name)
		require.Len(t, got.Species[i].Pairs, len(sp1.Pairs))

		for j, pair := range sp1.Pairs {
			decoded := got.Species[i].Pairs[j]
			require.Equal(t, pair.Query, decoded.Query)

			// Exactly the sorted, deduplicated input: order preserved,
			// nothing added or lost.
			require.Equal(t, pwaln.Normalize(pair.Records), decoded.Records)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	first, err := Encode(synthDataset(7))
	require.NoError(t, err)

	second, err := Encode(synthDataset(7))
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, Fingerprint(first), Fingerprint(second))
}

func TestFingerprintDistinguishesOutputs(t *testing.T) {
	a, err := Encode(synthDataset(7))
	require.NoError(t, err)

	b, err := Encode(synthDataset(8))
	require.NoError(t, err)

	require.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestEncodeToMatchesEncode(t *testing.T) {
	ds := synthDataset(99)

	want, err := Encode(ds)
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := EncodeTo(&out, ds)
	require.NoError(t, err)
	require.Equal(t, int64(len(want)), n)
	require.Equal(t, want, out.Bytes())
}

func TestDecodedRecordsHoldInvariants(t *testing.T) {
	data, err := Encode(synthDataset(1234))
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	for _, sp1 := range got.Species {
		for _, pair := range sp1.Pairs {
			records := pair.Records

			// Sort invariant: non-decreasing under the canonical key.
			require.True(t, slices.IsSortedFunc(records, pwaln.Record.Compare),
				"pair %s/%s not sorted", sp1.Name, pair.Query)

			// Dedup invariant: no two records field-wise identical,
			// adjacent or not.
			uniq := make(map[pwaln.Record]struct{}, len(records))
			for i, rec := range records {
				_, dup := uniq[rec]
				require.False(t, dup, "pair %s/%s has duplicate at %d", sp1.Name, pair.Query, i)
				uniq[rec] = struct{}{}
			}

			// Run partition invariant: each ref chrom appears in one
			// contiguous block, and the runs sum to the record count.
			runs := pwaln.GroupRuns(records)
			seen := make(map[uint16]bool)
			sum := 0
			for _, run := range runs {
				require.False(t, seen[run.RefChrom])
				seen[run.RefChrom] = true
				sum += len(run.Records)
			}
			require.Equal(t, len(records), sum)
		}
	}
}
