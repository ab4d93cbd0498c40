package freqcount

import (
	"os"
	"testing"

	"github.com/parahuff/phuff/internal/testutil"
)

func TestPartitionCoversWholeRangeExactlyOnce(t *testing.T) {
	for _, tc := range []struct {
		length uint64
		n      int
	}{
		{0, 1}, {1, 1}, {17, 4}, {1024, 8}, {7, 16},
	} {
		ranges := Partition(tc.length, tc.n)
		if len(ranges) != tc.n {
			t.Fatalf("Partition(%d, %d): got %d ranges, want %d", tc.length, tc.n, len(ranges), tc.n)
		}
		var prevEnd uint64
		for k, r := range ranges {
			if r.Begin != prevEnd {
				t.Fatalf("Partition(%d, %d): range %d begins at %d, want %d", tc.length, tc.n, k, r.Begin, prevEnd)
			}
			if r.End < r.Begin {
				t.Fatalf("Partition(%d, %d): range %d end %d < begin %d", tc.length, tc.n, k, r.End, r.Begin)
			}
			prevEnd = r.End
		}
		if prevEnd != tc.length {
			t.Fatalf("Partition(%d, %d): ranges end at %d, want %d", tc.length, tc.n, prevEnd, tc.length)
		}
	}
}

func TestPartitionIsIdempotent(t *testing.T) {
	a := Partition(12345, 7)
	b := Partition(12345, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Partition is not idempotent at index %d: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestCountMergeMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/input.bin"
	data := testutil.NewRand(1).Bytes(64 * 1024)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	var want Vector
	for _, b := range data {
		want[b]++
	}

	ranges := Partition(uint64(len(data)), 5)
	matrix, err := Count(path, ranges)
	if err != nil {
		t.Fatal(err)
	}
	got := Merge(matrix)
	if got != want {
		t.Fatalf("Merge(Count(...)) does not match the sequential frequency count")
	}

	var total uint64
	for k, r := range ranges {
		total += r.End - r.Begin
		if matrix[k].Sum() != r.End-r.Begin {
			t.Fatalf("worker %d counted %d bytes, want %d", k, matrix[k].Sum(), r.End-r.Begin)
		}
	}
	if total != uint64(len(data)) {
		t.Fatalf("ranges cover %d bytes, want %d", total, len(data))
	}
}
