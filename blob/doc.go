// Package blob implements the pwaln binary wire format: the Encoder
// and FileWriter produce it, the Decoder parses it back.
//
// The format is a single fixed-layout stream with no magic number,
// version field, checksum or index. All multi-byte integers share one
// byte order (little-endian unless configured otherwise) and strings
// are zero-terminated:
//
//	file            := chrom_table sp1_table
//	chrom_table     := num_chroms:u16 chrom_name{num_chroms}
//	chrom_name      := cstring
//	sp1_table       := num_sp1:u8 sp1_entry{num_sp1}
//	sp1_entry       := sp1_name:cstring num_sp2:u8 sp2_entry{num_sp2}
//	sp2_entry       := sp2_name:cstring num_runs:u32 run{num_runs}
//	run             := run_len:u32 record{run_len}
//	record          := ref_start:u32 ref_end:u32 qry_start:u32 qry_end:u32
//	                   ref_chrom:u16 qry_chrom:u16
//
// A run's reference-chromosome index is not part of the run header; the
// native reader takes it from the run's first record. That coupling is
// preserved here for wire compatibility.
//
// Records inside each sp2_entry are normalized before writing: sorted
// ascending by (ref_chrom, ref_start, qry_chrom, qry_start) and
// stripped of field-wise duplicates, then grouped into one run per
// distinct ref_chrom.
package blob
