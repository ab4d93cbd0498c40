// Package bitblock packs Huffman codewords MSB-first into fixed-size
// blocks of 128-bit words (§4.1) and, on the decode side, exposes the
// same bitstream one bit at a time for a tree walk (§4.5). The packing
// state machine — word index, free-bit cursor, overflow split-and-
// recurse — is grounded on Huffman/v3_src/bit_buffer_v3.c's
// pushBits/flushBuffer. The bit-at-a-time read side is grounded on
// brotli/bit_reader.go's buffered-byte bitReader, adapted from its
// little-endian multi-bit reads to a single MSB-first bit per call.
package bitblock

import (
	"encoding/binary"
	"io"

	"github.com/parahuff/phuff/internal/bigbits"
	"github.com/parahuff/phuff/internal/codeword"
)

var mask128 = func() *bigbits.BigBits {
	one := bigbits.FromUint8(1)
	shifted := new(bigbits.BigBits).Lsh(one, 128)
	return new(bigbits.BigBits).Sub(shifted, one)
}()

// Writer packs codewords MSB-first into words of 128 bits, B words per
// block, flushing full blocks to w as they fill.
type Writer struct {
	w      io.Writer
	b      int // words per block
	words  []*bigbits.BigBits
	i      int  // word currently being filled
	c      uint // free bits remaining in words[i], 0..128
	blocks uint32
}

// NewWriter returns a Writer that packs into blocks of blockBits bits
// (must be a positive multiple of 128) and flushes full blocks to w.
func NewWriter(w io.Writer, blockBits int) *Writer {
	b := blockBits / 128
	words := make([]*bigbits.BigBits, b)
	for i := range words {
		words[i] = bigbits.Zero()
	}
	return &Writer{w: w, b: b, words: words, i: 0, c: 128}
}

// Push packs one codeword, splitting across word and block boundaries
// as needed and flushing full blocks as they fill.
func (bw *Writer) Push(sym codeword.Symbol) error {
	if sym.Length == 0 {
		return nil
	}
	return bw.push(sym.Bits, uint(sym.Length))
}

func (bw *Writer) push(bits *bigbits.BigBits, length uint) error {
	if length <= bw.c {
		word := bw.words[bw.i]
		word.Lsh(word, length)
		word.Or(word, bits)
		word.And(word, mask128)
		bw.c -= length
		if bw.c == 0 {
			return bw.advanceWord()
		}
		return nil
	}

	headLen := bw.c
	tailLen := length - headLen
	head := new(bigbits.BigBits).Rsh(bits, tailLen)

	tailMask := new(bigbits.BigBits).Lsh(bigbits.FromUint8(1), tailLen)
	tailMask.Sub(tailMask, bigbits.FromUint8(1))
	tail := new(bigbits.BigBits).And(bits, tailMask)

	if err := bw.push(head, headLen); err != nil {
		return err
	}
	return bw.push(tail, tailLen)
}

func (bw *Writer) advanceWord() error {
	bw.i++
	bw.c = 128
	if bw.i == bw.b {
		if err := bw.flush(); err != nil {
			return err
		}
		bw.blocks++
		bw.i = 0
		for _, w := range bw.words {
			w.Clear()
		}
	}
	return nil
}

// flush serializes each 128-bit word as a little-endian integer (§6.1):
// lo's bytes first, then hi's, each little-endian. The first-packed bit
// (the MSB of hi) lands in the top bit of the word's last byte;
// Reader.ReadBit walks each word back to front to undo this.
func (bw *Writer) flush() error {
	var buf [16]byte
	for _, word := range bw.words {
		hi, lo := bigbits.Lower128(word)
		binary.LittleEndian.PutUint64(buf[0:8], lo)
		binary.LittleEndian.PutUint64(buf[8:16], hi)
		if _, err := bw.w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// Finalize pads and flushes the in-progress block, if any bits have
// been packed into it since the last flush, and reports the section's
// total block count and the number of padding bits in its final block.
// A section that never received a push (an empty worker range) reports
// zero blocks and zero padding without writing anything.
func (bw *Writer) Finalize() (blocks uint32, paddingBits uint32, err error) {
	if bw.i == 0 && bw.c == 128 {
		return bw.blocks, 0, nil
	}

	pad := bw.c + 128*uint(bw.b-bw.i-1)
	word := bw.words[bw.i]
	word.Lsh(word, bw.c)
	word.And(word, mask128)

	if err := bw.flush(); err != nil {
		return 0, 0, err
	}
	bw.blocks++
	return bw.blocks, uint32(pad), nil
}
