// Package hash provides content fingerprints for encoded pwaln files.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given bytes.
//
// The pwaln format itself carries no checksum, so the fingerprint is
// the module's way to compare two encoded files for byte identity
// without holding both in memory side by side.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
