package pwaln

// Run is a maximal contiguous group of sorted records sharing one
// reference-chromosome index. Records is never empty.
type Run struct {
	RefChrom uint16
	Records  []Record
}

// GroupRuns partitions a normalized (sorted, deduplicated) record
// sequence into its runs, in order.
//
// Because the input is sorted with RefChrom as the leading key, every
// reference-chromosome value appears in exactly one run; the
// concatenation of the returned runs is exactly the input. The returned
// runs share the input slice's backing array.
func GroupRuns(sorted []Record) []Run {
	if len(sorted) == 0 {
		return nil
	}

	runs := make([]Run, 0, 8)
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i].RefChrom != sorted[start].RefChrom {
			runs = append(runs, Run{
				RefChrom: sorted[start].RefChrom,
				Records:  sorted[start:i:i],
			})
			start = i
		}
	}

	return runs
}
