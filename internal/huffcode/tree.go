// Package huffcode builds a Huffman code table from a frequency vector
// (§4.3) and, symmetrically, reconstructs a decoding tree from a code
// table (§4.4). The tree-construction loop and its tie-breaking rule are
// grounded on Huffman/v3_src/huffman_tree_v3.c's calculateSymbols: a
// linear scan for the two smallest not-yet-parented frequencies, with
// ties broken by scan order, repeated until one root remains.
package huffcode

import (
	"math"

	"github.com/parahuff/phuff/internal/bigbits"
	"github.com/parahuff/phuff/internal/codeword"
	"github.com/parahuff/phuff/internal/freqcount"
)

// Build constructs a code table from freq. Byte values with zero
// frequency are excluded from the tree entirely and receive a
// zero-length symbol. If exactly one byte value has nonzero frequency,
// it is forced to a length-1 codeword (§4.3 edge case) since a
// single-leaf tree would otherwise never emit a bit.
func Build(freq *freqcount.Vector) *codeword.Table {
	var a arena
	nonZero := 0
	var onlySymbol int = -1
	for b := 0; b < 256; b++ {
		a.add(node{isLeaf: true, byteVal: uint8(b), left: noChild, right: noChild, freq: freq[b]})
		if freq[b] > 0 {
			nonZero++
			onlySymbol = b
		}
	}

	table := codeword.NewTable()
	if nonZero == 0 {
		return table // no non-empty bytes: every symbol stays length 0
	}
	if nonZero == 1 {
		table[onlySymbol] = codeword.Symbol{Bits: bigbits.Zero(), Length: 1}
		return table
	}

	remaining := nonZero
	for remaining > 1 {
		s1, s2 := findTwoSmallest(&a)

		parent := node{
			isLeaf: false,
			left:   s1,
			right:  s2,
			freq:   a.nodes[s1].freq + a.nodes[s2].freq,
		}
		a.add(parent)
		a.nodes[s1].inTree = true
		a.nodes[s2].inTree = true
		remaining--
	}

	root := uint16(a.n - 1)
	assignSymbols(&a, root, codeword.Symbol{Bits: bigbits.Zero(), Length: 0}, table)
	return table
}

// findTwoSmallest scans the arena for the two lowest-frequency nodes not
// yet made a child of a parent, skipping zero-frequency leaves (they are
// never part of the tree). Ties are broken purely by scan order: a node
// takes the s1 slot only if its frequency is strictly lower than s1's
// (so the first-seen minimum keeps it, and the displaced s1 moves to
// s2), and otherwise takes the s2 slot only if its frequency is strictly
// lower than s2's, exactly as the single linear pass in the original
// source does it.
func findTwoSmallest(a *arena) (s1, s2 uint16) {
	var s1Freq, s2Freq uint64 = math.MaxUint64, math.MaxUint64
	s1, s2 = noChild, noChild
	for i := 0; i < a.n; i++ {
		nd := &a.nodes[i]
		if nd.inTree || nd.freq == 0 {
			continue
		}
		switch {
		case nd.freq < s1Freq:
			s2, s2Freq = s1, s1Freq
			s1, s1Freq = uint16(i), nd.freq
		case nd.freq < s2Freq:
			s2, s2Freq = uint16(i), nd.freq
		}
	}
	return s1, s2
}

// assignSymbols is the depth-first codeword emission pass (§4.3 pass 2):
// append bit 0 descending left, bit 1 descending right, and record the
// accumulated symbol at every leaf.
func assignSymbols(a *arena, idx uint16, sym codeword.Symbol, table *codeword.Table) {
	nd := &a.nodes[idx]
	if nd.isLeaf {
		table[nd.byteVal] = sym
		return
	}
	assignSymbols(a, nd.left, codeword.AppendBit(sym, 0), table)
	assignSymbols(a, nd.right, codeword.AppendBit(sym, 1), table)
}
