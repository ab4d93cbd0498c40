package huffcode

import "github.com/parahuff/phuff/internal/bigbits"

// noChild marks the absence of a child in the arena, mirroring the
// original source's -1 child index but sized for a u16 arena as spec.md
// §3/§9 call for (the source used raw signed ints for child pointers;
// this redesign keeps the same back-pointer-by-index shape but with an
// explicit sentinel instead of relying on a signed/unsigned mismatch).
const noChild = 0xFFFF

// arenaCap is 256 leaves plus up to 255 internal nodes.
const arenaCap = 511

// node is one entry of the tree arena. Leaves carry byteVal; internal
// nodes carry left/right child indices.
type node struct {
	isLeaf      bool
	byteVal     uint8
	left, right uint16
	inTree      bool // true once this node has been made a child of a parent

	// Used only by the forward builder (tree.go).
	freq uint64

	// Used only by the inverse builder (decode_tree.go): the implied
	// codeword prefix this node (leaf or internal) represents.
	codeBits *bigbits.BigBits
	codeLen  uint8
}

type arena struct {
	nodes [arenaCap]node
	n     int // number of nodes currently populated
}

func (a *arena) add(nd node) uint16 {
	idx := a.n
	a.nodes[idx] = nd
	a.n++
	return uint16(idx)
}
