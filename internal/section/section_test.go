package section

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parahuff/phuff/internal/freqcount"
	"github.com/parahuff/phuff/internal/huffcode"
	"github.com/parahuff/phuff/internal/testutil"
)

func roundTrip(t *testing.T, data []byte, workers int, blockSizeBits int) {
	t.Helper()
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in")
	compPath := filepath.Join(dir, "comp")
	outPath := filepath.Join(dir, "out")

	if err := os.WriteFile(inPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	ranges := freqcount.Partition(uint64(len(data)), workers)
	matrix, err := freqcount.Count(inPath, ranges)
	if err != nil {
		t.Fatal(err)
	}
	global := freqcount.Merge(matrix)
	table := huffcode.Build(&global)

	const hdrSize = 64 // arbitrary stand-in header size for this unit test
	descs := Plan(matrix, table, blockSizeBits, hdrSize)
	total := TotalOutputSize(descs)

	if err := os.WriteFile(compPath, make([]byte, total), 0o644); err != nil {
		t.Fatal(err)
	}

	lengths := make([]uint64, len(descs))
	blocks := make([]uint32, len(descs))
	padding := make([]uint32, len(descs))
	var results []Descriptor
	for _, desc := range descs {
		d, err := Encode(desc, table, blockSizeBits, inPath, compPath)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		results = append(results, d)
	}
	for k, d := range results {
		lengths[k] = d.SrcEnd - d.SrcBegin
		blocks[k] = d.Blocks
		padding[k] = d.PaddingBits
	}

	tree, err := huffcode.BuildDecodeTree(table)
	if err != nil {
		t.Fatalf("BuildDecodeTree: %v", err)
	}

	decodeDescs := PlanDecode(lengths, blocks, padding, blockSizeBits, hdrSize)
	for i := range decodeDescs {
		want := results[i]
		got := decodeDescs[i]
		if got.SrcBegin != want.SrcBegin || got.SrcEnd != want.SrcEnd ||
			got.DstBegin != want.DstBegin || got.DstEnd != want.DstEnd ||
			got.Blocks != want.Blocks || got.PaddingBits != want.PaddingBits {
			t.Fatalf("section %d: PlanDecode = %+v, want layout matching Encode's %+v", i, got, want)
		}
	}

	if err := os.WriteFile(outPath, make([]byte, len(data)), 0o644); err != nil {
		t.Fatal(err)
	}
	for k, desc := range decodeDescs {
		if _, err := Decode(desc, tree, blockSizeBits, desc.SrcBegin, compPath, outPath); err != nil {
			t.Fatalf("Decode section %d: %v", k, err)
		}
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(data) {
		t.Fatalf("decoded %d bytes, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte %d mismatch: got %#x, want %#x", i, got[i], data[i])
		}
	}
}

func TestRoundTripEmptyFile(t *testing.T) {
	roundTrip(t, nil, 1, 1024)
}

func TestRoundTripSingleByte(t *testing.T) {
	roundTrip(t, []byte{0x41}, 1, 1024)
}

func TestRoundTripAlternatingBytesMultiWorker(t *testing.T) {
	data := make([]byte, 256*1024)
	for i := range data {
		if i%2 == 0 {
			data[i] = 0x00
		} else {
			data[i] = 0xFF
		}
	}
	roundTrip(t, data, 4, 32768)
}

func TestRoundTripRandomMultiWorker(t *testing.T) {
	data := testutil.NewRand(42).Bytes(1 << 20)
	roundTrip(t, data, 8, 1024)
}
