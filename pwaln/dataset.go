package pwaln

// Dataset is the in-memory input to one conversion job: the global
// chromosome dictionary plus every species pair's alignment table.
//
// Slice order is meaningful everywhere. Chromosome indices in records
// refer to positions in Chromosomes, and the encoder emits species in
// exactly the order they appear here, mirroring the insertion order of
// the source mapping.
type Dataset struct {
	// Chromosomes is the positional chromosome dictionary; records
	// reference entries by index. At most 65535 entries.
	Chromosomes []string

	// Species holds one entry per primary species, in source order.
	Species []PrimaryEntry
}

// PrimaryEntry groups the alignment tables of one primary species
// against each of its secondary species.
type PrimaryEntry struct {
	Name  string
	Pairs []PairTable
}

// PairTable is the alignment table of one species pair. Query names the
// secondary species; the primary is the enclosing PrimaryEntry.
type PairTable struct {
	Query   string
	Records []Record
}

// RecordCount returns the total number of records across all species
// pairs in the dataset.
func (d *Dataset) RecordCount() int {
	total := 0
	for _, sp1 := range d.Species {
		for _, pair := range sp1.Pairs {
			total += len(pair.Records)
		}
	}

	return total
}
