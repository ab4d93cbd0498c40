package phuff

import (
	"runtime"

	"github.com/klauspost/cpuid"
)

// Config controls how Compress partitions work and packs the container.
type Config struct {
	// WorkerCount is the number of goroutines used for each of the
	// counting, encoding, and decoding phases. It must be at least 1.
	// Decompress always reads WorkerCount back out of the container
	// header (the number of sections written by Compress); it is only
	// meaningful as an input to Compress.
	WorkerCount int

	// BlockSizeBits is the bit-packed block size used by the bit
	// buffer. It must be a positive multiple of 128.
	BlockSizeBits int
}

// DefaultConfig returns a Config sized for the running machine: one
// worker per physical core (falling back to runtime.NumCPU if the CPU
// feature probe can't determine a physical core count) and a 1024-bit
// block size.
func DefaultConfig() Config {
	n := cpuid.CPU.PhysicalCores
	if n < 1 {
		n = runtime.NumCPU()
	}
	return Config{WorkerCount: n, BlockSizeBits: 1024}
}

// validate rejects out-of-range configuration the way
// bzip2.NewWriterLevel rejects an out-of-range compression level.
func (cfg Config) validate() error {
	if cfg.WorkerCount < 1 {
		return &Error{Kind: KindBadContainer, Section: -1, Worker: -1,
			Reason: "worker count must be at least 1"}
	}
	if cfg.BlockSizeBits <= 0 || cfg.BlockSizeBits%128 != 0 {
		return &Error{Kind: KindBadContainer, Section: -1, Worker: -1,
			Reason: "block size must be a positive multiple of 128"}
	}
	return nil
}
