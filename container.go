package phuff

import (
	"encoding/binary"
	"io"

	"github.com/parahuff/phuff/internal/bigbits"
	"github.com/parahuff/phuff/internal/codeword"
)

// codeTableBytes is the fixed on-disk size of the 256-entry code table:
// a 32-byte little-endian codeword field plus a 1-byte length, per byte
// value 0..255.
const codeTableBytes = 256 * (32 + 1)

// header is the container's fixed-layout metadata (§6.1). lengths,
// padding, and blocks are per-section arrays of length N; fileCRC,
// blockSizeBits, and the code table are single values.
//
// lengths is an addendum beyond spec.md's original layout: the
// decompressed byte length of each section. Genuinely parallel decode
// workers (§4.5, as opposed to the sequential decompressFile the
// original sources implement) need to seek straight to their own
// decompressed output offset without waiting on any other worker to
// finish, the same way dst_begin lets encode workers write without
// contention. The encoder already computes src_end-src_begin per
// section while planning; persisting it is the only way the decoder can
// reconstruct the same cumulative offsets.
type header struct {
	fileCRC       uint32
	lengths       []uint64 // per-section decompressed byte length
	padding       []uint32 // per-section padding bit counts
	blocks        []uint32 // per-section block counts
	blockSizeBits uint16
	table         *codeword.Table
}

// headerSize returns the number of bytes the header occupies for n
// sections, independent of the header's field values. The section
// planner needs this before any section has been encoded, since every
// section's dst_begin is header-relative.
func headerSize(n int) int64 {
	return 1 + 4 + 8*int64(n) + 4*int64(n) + 4*int64(n) + 2 + codeTableBytes
}

// writeHeader writes hdr in the §6.1 layout. N is len(hdr.padding) ==
// len(hdr.blocks) == len(hdr.lengths), which must fit in a uint8.
func writeHeader(w io.Writer, hdr *header) error {
	n := len(hdr.padding)
	buf := make([]byte, headerSize(n))

	buf[0] = uint8(n)
	binary.LittleEndian.PutUint32(buf[1:5], hdr.fileCRC)

	off := 5
	for _, l := range hdr.lengths {
		binary.LittleEndian.PutUint64(buf[off:off+8], l)
		off += 8
	}
	for _, p := range hdr.padding {
		binary.LittleEndian.PutUint32(buf[off:off+4], p)
		off += 4
	}
	for _, b := range hdr.blocks {
		binary.LittleEndian.PutUint32(buf[off:off+4], b)
		off += 4
	}
	binary.LittleEndian.PutUint16(buf[off:off+2], hdr.blockSizeBits)
	off += 2

	for b := 0; b < 256; b++ {
		sym := hdr.table[b]
		bigbits.PutLittleEndian32(buf[off:off+32], sym.Bits)
		buf[off+32] = sym.Length
		off += 33
	}

	_, err := w.Write(buf)
	return err
}

// readHeader parses a container header from r, validating every
// structural invariant §6.1 and §7 require (nonzero section count,
// block size a positive multiple of 128, and — since the compressed
// data's total length is known only after reading all of it — a check
// that the declared block counts are internally consistent is left to
// the caller, which knows the file's actual length).
func readHeader(r io.Reader) (hdr *header, size int64, err error) {
	defer errRecover(&err)

	var first [5]byte
	panicOn(readFull(r, first[:]))
	n := int(first[0])
	assert(n > 0, &Error{Kind: KindBadContainer, Section: -1, Worker: -1,
		Reason: "section count is zero"})

	hdr = &header{
		fileCRC: binary.LittleEndian.Uint32(first[1:5]),
		lengths: make([]uint64, n),
		padding: make([]uint32, n),
		blocks:  make([]uint32, n),
		table:   codeword.NewTable(),
	}

	rest := make([]byte, headerSize(n)-5)
	panicOn(readFull(r, rest))

	off := 0
	for i := 0; i < n; i++ {
		hdr.lengths[i] = binary.LittleEndian.Uint64(rest[off : off+8])
		off += 8
	}
	for i := 0; i < n; i++ {
		hdr.padding[i] = binary.LittleEndian.Uint32(rest[off : off+4])
		off += 4
	}
	for i := 0; i < n; i++ {
		hdr.blocks[i] = binary.LittleEndian.Uint32(rest[off : off+4])
		off += 4
	}
	hdr.blockSizeBits = binary.LittleEndian.Uint16(rest[off : off+2])
	off += 2
	assert(hdr.blockSizeBits > 0 && hdr.blockSizeBits%128 == 0,
		&Error{Kind: KindBadContainer, Section: -1, Worker: -1,
			Reason: "block size is not a positive multiple of 128"})

	for b := 0; b < 256; b++ {
		bits := bigbits.FromLittleEndian32(rest[off : off+32])
		length := rest[off+32]
		hdr.table[b] = codeword.Symbol{Bits: bits, Length: length}
		off += 33
	}

	return hdr, headerSize(n), nil
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return &Error{Kind: KindTruncated, Section: -1, Worker: -1,
			Reason: "container header is shorter than declared"}
	}
	return err
}
