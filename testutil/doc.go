// Package testutil provides testing utilities for netbuf.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic byte generators for filling buffers.
//
// # Random Payloads
//
//	rng := testutil.NewRNG(seed)
//	payload := rng.Bytes(1200)
//	packets := rng.Packets(64, 40, 1500)
//
// # Fixed Patterns
//
//	testutil.Pattern(1024)      // 0,1,2,...,255,0,1,...
//	testutil.Compressible(4096) // repeating text
package testutil
