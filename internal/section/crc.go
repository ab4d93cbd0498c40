package section

import (
	"hash/crc32"

	"github.com/dsnet/golib/hashutil"

	"github.com/parahuff/phuff/internal/bitrev"
)

// updateCRC folds buf into crc using the bzip2 bit-reversed convention:
// bytes are treated as having their bits in big-endian order, so both
// the running CRC and every input byte are bit-reversed around the
// standard library's CRC-32 IEEE update.
func updateCRC(crc uint32, buf []byte) uint32 {
	crc = bitrev.Uint32(crc)
	var arr [4096]byte
	for len(buf) > 0 {
		n := copy(arr[:], buf)
		buf = buf[n:]
		for i, b := range arr[:n] {
			arr[i] = bitrev.ReverseLUT[b]
		}
		crc = crc32.Update(crc, crc32.IEEETable, arr[:n])
	}
	return bitrev.Uint32(crc)
}

// CombineCRC combines two section CRCs, crc2 having been computed over
// len2 bytes, into the CRC of the concatenation. Exported for the
// top-level package, which folds every section's CRC into one fileCRC.
func CombineCRC(crc1, crc2 uint32, len2 int64) uint32 {
	crc1 = bitrev.Uint32(crc1)
	crc2 = bitrev.Uint32(crc2)
	crc := hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, len2)
	return bitrev.Uint32(crc)
}
