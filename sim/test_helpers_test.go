package sim

import (
	"math/rand"
	"testing"
)

// scriptedGen is a VariateGenerator that plays back prepared values, letting
// handler tests pin every scheduled time and routing pick. The test fails if
// the engine draws more than the script provides or picks out of range.
type scriptedGen struct {
	t       *testing.T
	samples []float64 // returned by Sample in order
	picks   []int     // returned by Intn in order
}

func newScriptedGen(t *testing.T, samples []float64, picks []int) *scriptedGen {
	t.Helper()
	return &scriptedGen{t: t, samples: samples, picks: picks}
}

func (g *scriptedGen) Sample(mean float64) float64 {
	g.t.Helper()
	if len(g.samples) == 0 {
		g.t.Fatalf("Sample(mean=%v): script exhausted", mean)
	}
	v := g.samples[0]
	g.samples = g.samples[1:]
	return v
}

func (g *scriptedGen) Intn(n int) int {
	g.t.Helper()
	if len(g.picks) == 0 {
		g.t.Fatalf("Intn(%d): script exhausted", n)
	}
	v := g.picks[0]
	g.picks = g.picks[1:]
	if v < 0 || v >= n {
		g.t.Fatalf("Intn(%d): scripted pick %d out of range", n, v)
	}
	return v
}

// seededGen builds the production generator over a fixed seed for tests that
// need realistic randomness with reproducible results.
func seededGen(seed int64) *ExpGenerator {
	return NewExpGenerator(rand.New(rand.NewSource(seed)))
}

// requireQueueInvariant asserts the mirrored queue length of every server
// matches its queue's actual size.
func requireQueueInvariant(t *testing.T, s *Simulator) {
	t.Helper()
	for _, server := range s.Servers {
		if server.QueueLen != server.Queue.Len() {
			t.Fatalf("server %d: QueueLen %d does not match queue size %d",
				server.ID, server.QueueLen, server.Queue.Len())
		}
	}
}
