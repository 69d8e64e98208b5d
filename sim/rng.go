package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
)

// === VariateGenerator ===

// VariateGenerator produces the random quantities the engine consumes during
// one replication: exponential variates for event scheduling and uniform
// integer picks for idle-server selection. Both kinds of draw come from one
// underlying stream, so the full sequence of engine decisions is reproducible
// from a single seed.
type VariateGenerator interface {
	// Sample returns a non-negative exponential variate with the given mean.
	Sample(mean float64) float64

	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// ExpGenerator is the production VariateGenerator. It draws from an owned
// *rand.Rand using the inverse CDF transform -mean*ln(U).
type ExpGenerator struct {
	rng *rand.Rand
}

// NewExpGenerator creates an ExpGenerator over the given stream.
func NewExpGenerator(rng *rand.Rand) *ExpGenerator {
	return &ExpGenerator{rng: rng}
}

// Sample returns -mean*ln(U) with U uniform over the open interval (0,1).
// rand.Float64 can return exactly 0, which would map to +Inf; such a draw is
// discarded and retried so a non-finite time never reaches the scheduler.
func (g *ExpGenerator) Sample(mean float64) float64 {
	u := g.rng.Float64()
	for u == 0 {
		u = g.rng.Float64()
	}
	return -mean * math.Log(u)
}

// Intn returns a uniform int in [0, n) from the same stream.
func (g *ExpGenerator) Intn(n int) int {
	return g.rng.Intn(n)
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === PartitionedRNG ===

// PartitionedRNG derives deterministic, isolated RNG streams from a master
// seed. Each replication gets its own stream, seeded with
// masterSeed XOR fnv1a64(label), so replication k's draws never depend on
// how many samples earlier replications consumed.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForReplication returns the deterministically-seeded stream for the given
// replication index. The same index always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForReplication(rep int) *rand.Rand {
	name := fmt.Sprintf("replication_%d", rep)
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
