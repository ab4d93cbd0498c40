// Package codeword defines the Huffman codeword type shared by the code
// builder, the bit buffer, and the container header codec.
package codeword

import "github.com/parahuff/phuff/internal/bigbits"

// Symbol is a single Huffman codeword: Bits holds the codeword with its
// first-emitted bit at position Length-1 (the MSB of the significant
// field); bits at or above Length are always zero. A Length of 0 means
// the byte value never occurred in the input.
type Symbol struct {
	Bits   *bigbits.BigBits
	Length uint8
}

// Table maps each of the 256 byte values to its Symbol.
type Table [256]Symbol

// NewTable returns a Table of 256 zero-length symbols.
func NewTable() *Table {
	var t Table
	for i := range t {
		t[i] = Symbol{Bits: bigbits.Zero(), Length: 0}
	}
	return &t
}

// AppendBit returns the symbol formed by emitting bit (0 or 1) after s,
// i.e. shifting s left by one and OR-ing in bit. This is the DFS descent
// rule of the forward code builder (§4.3): append 0 when descending
// left, 1 when descending right.
func AppendBit(s Symbol, bit uint8) Symbol {
	next := new(bigbits.BigBits).Lsh(s.Bits, 1)
	if bit != 0 {
		next.Or(next, bigbits.FromUint8(1))
	}
	return Symbol{Bits: next, Length: s.Length + 1}
}

// IsPrefixFree reports whether no symbol in t with nonzero length is a
// bit-prefix of another (testable property #2).
func IsPrefixFree(t *Table) bool {
	for i := range t {
		a := t[i]
		if a.Length == 0 {
			continue
		}
		for j := range t {
			if i == j {
				continue
			}
			b := t[j]
			if b.Length == 0 || b.Length < a.Length {
				continue
			}
			// Does a's codeword form the high Length bits of b's codeword?
			shifted := new(bigbits.BigBits).Rsh(b.Bits, uint(b.Length-a.Length))
			if shifted.Eq(a.Bits) {
				return false
			}
		}
	}
	return true
}
