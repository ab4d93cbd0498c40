// Package phuff implements a byte-granular parallel Huffman codec: it
// losslessly compresses an arbitrary file into a self-describing
// container and restores it exactly, splitting both the input and the
// container into N independent sections that N workers encode or
// decode concurrently with no synchronization beyond a single join.
package phuff

import (
	"context"
	"os"
	"sync"

	"github.com/parahuff/phuff/internal/freqcount"
	"github.com/parahuff/phuff/internal/huffcode"
	"github.com/parahuff/phuff/internal/section"
)

// Compress reads inputPath, builds a Huffman code for its byte
// distribution, and writes a self-describing compressed container to
// outputPath. cfg controls the worker count and block size; see
// DefaultConfig.
func Compress(ctx context.Context, inputPath, outputPath string, cfg Config) (err error) {
	if err := cfg.validate(); err != nil {
		return err
	}

	fi, err := os.Stat(inputPath)
	if err != nil {
		return &Error{Kind: KindOpenFailed, Path: inputPath, Section: -1, Worker: -1, Err: err}
	}
	length := uint64(fi.Size())

	ranges := freqcount.Partition(length, cfg.WorkerCount)
	matrix, err := freqcount.Count(inputPath, ranges)
	if err != nil {
		return &Error{Kind: KindIoFailed, Path: inputPath, Phase: "count", Section: -1, Worker: -1, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	global := freqcount.Merge(matrix)
	table := huffcode.Build(&global)

	descs := section.Plan(matrix, table, cfg.BlockSizeBits, headerSize(cfg.WorkerCount))
	total := section.TotalOutputSize(descs)

	out, err := os.Create(outputPath)
	if err != nil {
		return &Error{Kind: KindOpenFailed, Path: outputPath, Section: -1, Worker: -1, Err: err}
	}
	if err := out.Truncate(int64(total)); err != nil {
		out.Close()
		return &Error{Kind: KindIoFailed, Path: outputPath, Phase: "preallocate", Section: -1, Worker: -1, Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Kind: KindIoFailed, Path: outputPath, Phase: "preallocate", Section: -1, Worker: -1, Err: err}
	}

	results := make([]section.Descriptor, len(descs))
	errsOut := make([]error, len(descs))
	var wg sync.WaitGroup
	wg.Add(len(descs))
	for k, desc := range descs {
		k, desc := k, desc
		go func() {
			defer wg.Done()
			d, err := section.Encode(desc, table, cfg.BlockSizeBits, inputPath, outputPath)
			results[k] = d
			errsOut[k] = err
		}()
	}
	wg.Wait()

	for k, werr := range errsOut {
		if werr != nil {
			return &Error{Kind: KindWorkerFailed, Phase: "encode", Section: k, Worker: k, Err: werr}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	hdr := &header{
		lengths:       make([]uint64, len(results)),
		padding:       make([]uint32, len(results)),
		blocks:        make([]uint32, len(results)),
		blockSizeBits: uint16(cfg.BlockSizeBits),
		table:         table,
	}
	var fileCRC uint32
	for k, d := range results {
		hdr.lengths[k] = d.SrcEnd - d.SrcBegin
		hdr.padding[k] = d.PaddingBits
		hdr.blocks[k] = d.Blocks
		if k == 0 {
			fileCRC = d.CRC
		} else {
			fileCRC = section.CombineCRC(fileCRC, d.CRC, int64(hdr.lengths[k]))
		}
	}
	hdr.fileCRC = fileCRC

	hf, err := os.OpenFile(outputPath, os.O_WRONLY, 0)
	if err != nil {
		return &Error{Kind: KindOpenFailed, Path: outputPath, Section: -1, Worker: -1, Err: err}
	}
	defer hf.Close()
	if err := writeHeader(hf, hdr); err != nil {
		return &Error{Kind: KindIoFailed, Path: outputPath, Phase: "write header", Section: -1, Worker: -1, Err: err}
	}
	return nil
}

// Decompress reads a container written by Compress from inputPath and
// restores the original file exactly to outputPath.
func Decompress(ctx context.Context, inputPath, outputPath string) (err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return &Error{Kind: KindOpenFailed, Path: inputPath, Section: -1, Worker: -1, Err: err}
	}
	hdr, hdrSize, err := readHeader(in)
	closeErr := in.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return &Error{Kind: KindIoFailed, Path: inputPath, Phase: "read header", Section: -1, Worker: -1, Err: closeErr}
	}

	tree, terr := huffcode.BuildDecodeTree(hdr.table)
	if terr != nil {
		return &Error{Kind: KindBadCodeTable, Path: inputPath, Section: -1, Worker: -1, Err: terr}
	}

	descs := section.PlanDecode(hdr.lengths, hdr.blocks, hdr.padding, int(hdr.blockSizeBits), hdrSize)
	total := section.TotalOutputSize(descs)

	fi, err := os.Stat(inputPath)
	if err != nil {
		return &Error{Kind: KindOpenFailed, Path: inputPath, Section: -1, Worker: -1, Err: err}
	}
	if uint64(fi.Size()) < total {
		return &Error{Kind: KindTruncated, Path: inputPath, Section: -1, Worker: -1,
			Reason: "compressed file is shorter than the header declares"}
	}

	var decompTotal uint64
	for _, d := range descs {
		decompTotal += d.SrcEnd - d.SrcBegin
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return &Error{Kind: KindOpenFailed, Path: outputPath, Section: -1, Worker: -1, Err: err}
	}
	if err := out.Truncate(int64(decompTotal)); err != nil {
		out.Close()
		return &Error{Kind: KindIoFailed, Path: outputPath, Phase: "preallocate", Section: -1, Worker: -1, Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Kind: KindIoFailed, Path: outputPath, Phase: "preallocate", Section: -1, Worker: -1, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	crcs := make([]uint32, len(descs))
	errsOut := make([]error, len(descs))
	var wg sync.WaitGroup
	wg.Add(len(descs))
	for k, desc := range descs {
		k, desc := k, desc
		go func() {
			defer wg.Done()
			crc, err := section.Decode(desc, tree, int(hdr.blockSizeBits), desc.SrcBegin, inputPath, outputPath)
			crcs[k] = crc
			errsOut[k] = err
		}()
	}
	wg.Wait()

	for k, werr := range errsOut {
		if werr != nil {
			return &Error{Kind: KindWorkerFailed, Phase: "decode", Section: k, Worker: k, Err: werr}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var fileCRC uint32
	for k, crc := range crcs {
		length := descs[k].SrcEnd - descs[k].SrcBegin
		if k == 0 {
			fileCRC = crc
		} else {
			fileCRC = section.CombineCRC(fileCRC, crc, int64(length))
		}
	}
	if fileCRC != hdr.fileCRC {
		return &Error{Kind: KindBadContainer, Path: inputPath, Section: -1, Worker: -1,
			Reason: "combined section CRC does not match the stored file CRC"}
	}

	return nil
}
