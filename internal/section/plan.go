// Package section implements the parallel section layout (§4.5):
// planning each worker's disjoint input and output byte ranges, and the
// encoder/decoder workers that fill them. The planner's cumulative-sum
// range math is grounded on Huffman/src/pthread/compress_pth.cpp's
// compressFile, which derives start_byte/end_byte from running
// frequency sums and chains compressed_start_byte/compressed_end_byte
// the same way across workers.
package section

import (
	"github.com/parahuff/phuff/internal/codeword"
	"github.com/parahuff/phuff/internal/freqcount"
)

// Descriptor is one worker's section (spec.md §3's section descriptor).
// Plan predicts Blocks; Blocks, PaddingBits, and CRC are filled in by
// the encoder worker upon completion (Encode). On the decode side
// PlanDecode takes Blocks and PaddingBits from the container header;
// Decode reads them and fills in nothing, returning the CRC of the bytes
// it emits for the caller to verify.
type Descriptor struct {
	SrcBegin, SrcEnd uint64
	DstBegin, DstEnd uint64
	Blocks           uint32
	PaddingBits      uint32
	CRC              uint32
}

// Plan computes every worker's section descriptor from the per-worker
// frequency matrix and the code table. headerSize is the byte offset
// the first section's compressed data begins at. DstEnd for each
// worker is computed from the number of blocks its codeword bits will
// occupy once packed, so the caller can pre-size the output file and
// let every worker write independently, with no worker needing to wait
// on another to learn its own offset.
func Plan(freq freqcount.Matrix, table *codeword.Table, blockSizeBits int, headerSize int64) []Descriptor {
	n := len(freq)
	descs := make([]Descriptor, n)

	srcCum := uint64(0)
	dstCum := uint64(headerSize)
	blockBytes := uint64(blockSizeBits / 8)

	for k := 0; k < n; k++ {
		row := freq[k]
		rowLen := row.Sum()

		var bits uint64
		for b := 0; b < 256; b++ {
			bits += row[b] * uint64(table[b].Length)
		}
		var blocks uint32
		if bits > 0 {
			blocks = uint32((bits + uint64(blockSizeBits) - 1) / uint64(blockSizeBits))
		}

		descs[k] = Descriptor{
			SrcBegin: srcCum,
			SrcEnd:   srcCum + rowLen,
			DstBegin: dstCum,
			DstEnd:   dstCum + uint64(blocks)*blockBytes,
			Blocks:   blocks,
		}

		srcCum = descs[k].SrcEnd
		dstCum = descs[k].DstEnd
	}

	return descs
}

// PlanDecode reconstructs each section's descriptor from the values a
// container header persists: decompressed length, compressed block
// count, and padding bits. It mirrors Plan's cumulative-sum layout
// exactly, since the decoder has no access to the original per-worker
// frequency matrix, only what the encoder chose to carry through the
// header.
func PlanDecode(lengths []uint64, blocks []uint32, padding []uint32, blockSizeBits int, headerSize int64) []Descriptor {
	n := len(lengths)
	descs := make([]Descriptor, n)

	srcCum := uint64(0)
	dstCum := uint64(headerSize)
	blockBytes := uint64(blockSizeBits / 8)

	for k := 0; k < n; k++ {
		descs[k] = Descriptor{
			SrcBegin:    srcCum,
			SrcEnd:      srcCum + lengths[k],
			DstBegin:    dstCum,
			DstEnd:      dstCum + uint64(blocks[k])*blockBytes,
			Blocks:      blocks[k],
			PaddingBits: padding[k],
		}
		srcCum = descs[k].SrcEnd
		dstCum = descs[k].DstEnd
	}
	return descs
}

// TotalOutputSize returns the byte offset one past the last section's
// compressed data — the size the compressed file must be pre-truncated
// to before any worker writes.
func TotalOutputSize(descs []Descriptor) uint64 {
	if len(descs) == 0 {
		return 0
	}
	return descs[len(descs)-1].DstEnd
}
