package section

import (
	"bufio"
	"io"
	"os"

	"github.com/parahuff/phuff/internal/bitblock"
	"github.com/parahuff/phuff/internal/huffcode"
)

// Decode runs one decoder worker (§4.5): it opens its own read and
// write handles, seeks to desc.DstBegin in the compressed file and
// decompBegin in the output file, and walks the decoding tree bit by
// bit MSB-first over the section's packed blocks — left on 0, right on
// 1 — emitting a byte and resetting to the root at every leaf. Only
// Blocks*blockSizeBits - PaddingBits bits are decoded; the section's
// trailing padding bits are never fed to the tree walk. Decoded bytes
// pass through a 2048-byte write-behind buffer (§6.3). It returns the
// CRC-32 of the bytes it emitted, for the caller to combine across
// sections and compare against the container's fileCRC.
func Decode(desc Descriptor, tree *huffcode.DecodeTree, blockSizeBits int, decompBegin uint64, compressedPath, outputPath string) (crc uint32, err error) {
	if desc.Blocks == 0 {
		return 0, nil
	}

	in, err := os.Open(compressedPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	if _, err := in.Seek(int64(desc.DstBegin), os.SEEK_SET); err != nil {
		return 0, err
	}

	out, err := os.OpenFile(outputPath, os.O_WRONLY, 0)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	if _, err := out.Seek(int64(decompBegin), os.SEEK_SET); err != nil {
		return 0, err
	}
	bw := bufio.NewWriterSize(out, 2048)

	sectionBytes := int64(desc.Blocks) * int64(blockSizeBits/8)
	lr := io.LimitReader(bufio.NewReader(in), sectionBytes)
	bits := bitblock.NewReader(lr)

	totalBits := uint64(desc.Blocks)*uint64(blockSizeBits) - uint64(desc.PaddingBits)

	state := tree.Root()
	outBuf := make([]byte, 0, 2048)
	for i := uint64(0); i < totalBits; i++ {
		bit, berr := bits.ReadBit()
		if berr != nil {
			return 0, berr
		}
		state = tree.Child(state, bit)
		if tree.IsLeaf(state) {
			b := tree.Byte(state)
			outBuf = append(outBuf, b)
			crc = updateCRC(crc, outBuf[len(outBuf)-1:])
			state = tree.Root()
			if len(outBuf) == cap(outBuf) {
				if _, err := bw.Write(outBuf); err != nil {
					return 0, err
				}
				outBuf = outBuf[:0]
			}
		}
	}
	if len(outBuf) > 0 {
		if _, err := bw.Write(outBuf); err != nil {
			return 0, err
		}
	}

	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return crc, nil
}
