package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// FillBytes fills dst with random bytes.
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) FillBytes(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.FillBytes(b)
	return b
}

// Packets returns num random payloads with lengths in [minLen, maxLen].
// Uses a single backing array for efficiency.
func (r *RNG) Packets(num, minLen, maxLen int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]byte, num*maxLen)
	packets := make([][]byte, num)

	for i := range num {
		n := minLen
		if maxLen > minLen {
			n += r.rand.Intn(maxLen - minLen + 1)
		}
		p := data[i*maxLen : i*maxLen+n : (i+1)*maxLen]
		_, _ = r.rand.Read(p)
		packets[i] = p
	}

	return packets
}

// Pattern returns n bytes counting up from 0 and wrapping at 256.
// Unlike random data it makes misplaced offsets obvious in test output.
func Pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// Compressible returns n bytes of low-entropy data: runs of a repeating
// short phrase, which block compressors shrink well.
func Compressible(n int) []byte {
	const phrase = "netbuf packet payload "
	b := make([]byte, n)
	for i := range b {
		b[i] = phrase[i%len(phrase)]
	}
	return b
}
