package bigbits

import "testing"

func TestLower128(t *testing.T) {
	b := new(BigBits).Lsh(FromUint8(1), 130) // bit 130, above the low 128 bits
	hi, lo := Lower128(b)
	if hi != 0 || lo != 0 {
		t.Fatalf("Lower128 of a bit-130 value = (%d, %d), want (0, 0)", hi, lo)
	}

	b = new(BigBits).Lsh(FromUint8(1), 64) // bit 64, the low bit of hi
	hi, lo = Lower128(b)
	if hi != 1 || lo != 0 {
		t.Fatalf("Lower128 of a bit-64 value = (%d, %d), want (1, 0)", hi, lo)
	}
}

func TestLittleEndianRoundTrip(t *testing.T) {
	want := new(BigBits).Lsh(FromUint8(0xab), 200)
	var buf [32]byte
	PutLittleEndian32(buf[:], want)
	got := FromLittleEndian32(buf[:])
	if !got.Eq(want) {
		t.Fatalf("round trip mismatch: got %x, want %x", got.Bytes32(), want.Bytes32())
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	// A value of exactly 1 should serialize with its single set bit in
	// the first byte, not the last, since the field is little-endian.
	var buf [32]byte
	PutLittleEndian32(buf[:], FromUint8(1))
	if buf[0] != 1 {
		t.Fatalf("buf[0] = %d, want 1", buf[0])
	}
	for i := 1; i < 32; i++ {
		if buf[i] != 0 {
			t.Fatalf("buf[%d] = %d, want 0", i, buf[i])
		}
	}
}
