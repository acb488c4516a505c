// Package endian provides byte order utilities for encoding and
// decoding the pwaln binary format.
//
// The format fixes one byte order for the whole file and carries no
// flag announcing it, so the writer and the native reader must agree up
// front. The default everywhere in this module is little-endian; a
// reader built for a big-endian platform needs the writer switched to
// the big-endian engine.
//
// # Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, value)
//
// # Native byte order
//
// The original converter wrote integers in whatever order the host
// happened to use, which silently breaks when producer and consumer run
// on different platforms. CheckEndianness exposes the host's order so
// callers can detect such a mismatch explicitly instead of inheriting
// it.
//
// All functions in this package are safe for concurrent use; the
// returned engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces
// from encoding/binary into a single interface for byte order
// operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so the
// engines interoperate with any code built on the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Inspect the byte at the lowest memory address.
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether the given engine matches the
// host's native byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine, the default
// byte order for pwaln files.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
