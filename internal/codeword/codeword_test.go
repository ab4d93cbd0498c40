package codeword

import (
	"testing"

	"github.com/parahuff/phuff/internal/bigbits"
)

func TestAppendBit(t *testing.T) {
	s := Symbol{Bits: bigbits.Zero(), Length: 0}
	s = AppendBit(s, 1)
	s = AppendBit(s, 0)
	s = AppendBit(s, 1)
	if s.Length != 3 {
		t.Fatalf("Length = %d, want 3", s.Length)
	}
	hi, lo := bigbits.Lower128(s.Bits)
	if hi != 0 || lo != 0b101 {
		t.Fatalf("Bits = (%d,%d), want (0, 0b101)", hi, lo)
	}
}

func TestIsPrefixFreeDetectsViolation(t *testing.T) {
	table := NewTable()
	table[0] = Symbol{Bits: bigbits.FromUint8(0b10), Length: 2}
	table[1] = Symbol{Bits: bigbits.FromUint8(0b101), Length: 3} // shares the 0b10 prefix
	if IsPrefixFree(table) {
		t.Fatal("IsPrefixFree = true, want false: 0b10 is a prefix of 0b101")
	}
}

func TestIsPrefixFreeAcceptsValidCode(t *testing.T) {
	table := NewTable()
	table[0] = Symbol{Bits: bigbits.FromUint8(0b0), Length: 1}
	table[1] = Symbol{Bits: bigbits.FromUint8(0b10), Length: 2}
	table[2] = Symbol{Bits: bigbits.FromUint8(0b11), Length: 2}
	if !IsPrefixFree(table) {
		t.Fatal("IsPrefixFree = false, want true: this is a valid prefix code")
	}
}
