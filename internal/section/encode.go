package section

import (
	"bufio"
	"os"

	"github.com/parahuff/phuff/internal/bitblock"
	"github.com/parahuff/phuff/internal/codeword"
)

// Encode runs one encoder worker (§4.5): it opens its own read and
// write handles on inputPath and outputPath, seeks to desc.SrcBegin and
// desc.DstBegin respectively, and streams every byte of its range
// through its own private bit buffer, pushing C[b] for each byte b
// read. It never shares a buffer or file handle with any other worker;
// write regions never overlap by construction. It returns desc with
// Blocks, PaddingBits, and CRC filled in from the actual run (CRC is a
// supplemented integrity check, computed over the section's input
// bytes, not part of the bit-packing contract).
func Encode(desc Descriptor, table *codeword.Table, blockSizeBits int, inputPath, outputPath string) (Descriptor, error) {
	if desc.SrcEnd <= desc.SrcBegin {
		desc.Blocks, desc.PaddingBits, desc.CRC = 0, 0, 0
		return desc, nil
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return desc, err
	}
	defer in.Close()
	if _, err := in.Seek(int64(desc.SrcBegin), os.SEEK_SET); err != nil {
		return desc, err
	}

	out, err := os.OpenFile(outputPath, os.O_WRONLY, 0)
	if err != nil {
		return desc, err
	}
	defer out.Close()
	if _, err := out.Seek(int64(desc.DstBegin), os.SEEK_SET); err != nil {
		return desc, err
	}

	bw := bufio.NewWriter(out)
	block := bitblock.NewWriter(bw, blockSizeBits)

	const chunkSize = 64 * 1024
	remaining := desc.SrcEnd - desc.SrcBegin
	buf := make([]byte, chunkSize)
	crc := uint32(0)

	for remaining > 0 {
		n := uint64(len(buf))
		if remaining < n {
			n = remaining
		}
		read, rerr := in.Read(buf[:n])
		if read > 0 {
			crc = updateCRC(crc, buf[:read])
			for _, b := range buf[:read] {
				if err := block.Push(table[b]); err != nil {
					return desc, err
				}
			}
			remaining -= uint64(read)
		}
		if rerr != nil {
			if remaining == 0 {
				break
			}
			return desc, rerr
		}
	}

	blocks, padding, err := block.Finalize()
	if err != nil {
		return desc, err
	}
	if err := bw.Flush(); err != nil {
		return desc, err
	}

	desc.Blocks, desc.PaddingBits, desc.CRC = blocks, padding, crc
	return desc, nil
}
