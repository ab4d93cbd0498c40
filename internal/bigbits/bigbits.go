// Package bigbits supplies the 256-bit unsigned integer primitive that a
// Huffman codeword and its length are built on. The codec never needs
// arbitrary-precision arithmetic, only a fixed 256-bit word with
// shift/and/or/add/compare, so this package is a thin adapter over
// github.com/holiman/uint256 rather than a hand-rolled bignum.
package bigbits

import "github.com/holiman/uint256"

// BigBits is a 256-bit unsigned integer. The zero value is zero.
type BigBits = uint256.Int

// Zero returns the zero BigBits.
func Zero() *BigBits { return new(BigBits) }

// FromUint8 returns a BigBits holding the small value x.
func FromUint8(x uint8) *BigBits {
	return new(BigBits).SetUint64(uint64(x))
}

// Lower128 extracts the low 128 bits of b as two 64-bit limbs, lo being
// bits 0..63 and hi being bits 64..127. Bits 128..255 are discarded; the
// bit buffer's invariant (symbols are only ever packed while at least
// one 128-bit word of room remains) guarantees those bits are always
// zero when this is called.
func Lower128(b *BigBits) (hi, lo uint64) {
	words := b.Bytes32() // big-endian 32 bytes
	hi = beUint64(words[16:24])
	lo = beUint64(words[24:32])
	return hi, lo
}

func beUint64(b []byte) (x uint64) {
	for _, c := range b {
		x = x<<8 | uint64(c)
	}
	return x
}

// PutLittleEndian32 writes b to dst (which must be 32 bytes) as the
// little-endian byte sequence of the 256-bit unsigned integer, matching
// the container's codeword field encoding. uint256.Int.Bytes32 produces
// big-endian bytes (the math/big.Int.Bytes convention), so this reverses
// them.
func PutLittleEndian32(dst []byte, b *BigBits) {
	be := b.Bytes32()
	for i := 0; i < 32; i++ {
		dst[i] = be[31-i]
	}
}

// FromLittleEndian32 is the inverse of PutLittleEndian32.
func FromLittleEndian32(src []byte) *BigBits {
	var be [32]byte
	for i := 0; i < 32; i++ {
		be[i] = src[31-i]
	}
	return new(BigBits).SetBytes32(be[:])
}
