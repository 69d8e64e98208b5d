package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// ServerSummary aggregates one server's reports across all replications: the
// component-wise mean of the per-replication 4-tuples, plus the sample
// standard deviation of each component as a measure of replication spread.
type ServerSummary struct {
	Server             int     `json:"server"`
	AvgWaitMinutes     float64 `json:"avg_wait_minutes"`
	WaitStdDev         float64 `json:"wait_stddev"`
	AvgQueueLength     float64 `json:"avg_queue_length"`
	QueueLengthStdDev  float64 `json:"queue_length_stddev"`
	UtilizationPercent float64 `json:"utilization_percent"`
	UtilizationStdDev  float64 `json:"utilization_stddev"`
	AvgServiceMinutes  float64 `json:"avg_service_minutes"`
	ServiceStdDev      float64 `json:"service_stddev"`
}

// Summary is the final output of a study: one ServerSummary per server,
// index-aligned with server ids.
type Summary struct {
	Servers      []ServerSummary `json:"servers"`
	Replications int             `json:"replications"`
	Horizon      float64         `json:"horizon_hours"`
	Seed         int64           `json:"seed"`
}

// Experiment runs N independent replications of one scenario on a single
// engine and averages the per-server reports component-wise.
type Experiment struct {
	cfg Config
	sim *Simulator
	rng *PartitionedRNG
}

// NewExperiment validates the configuration and builds the engine, failing
// fast before any replication starts. A zero Seed is replaced with a
// wall-clock-derived one so separate processes produce independent draws;
// fix the seed to reproduce a run.
func NewExperiment(cfg Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Experiment{
		cfg: cfg,
		sim: NewSimulator(cfg.Servers, cfg.MeanInterarrival(), cfg.MeanService()),
		rng: NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}, nil
}

// Seed returns the effective master seed, never 0 after construction.
func (e *Experiment) Seed() int64 {
	return int64(e.rng.Key())
}

// Simulator exposes the underlying engine, mainly for attaching a trace.
func (e *Experiment) Simulator() *Simulator {
	return e.sim
}

// Run executes all replications sequentially and returns the aggregated
// summary. Each replication draws from its own sub-stream of the master seed
// and starts from freshly initialized engine state, so no state or randomness
// carries across replications.
func (e *Experiment) Run() (*Summary, error) {
	samples := newReplicationSamples(e.cfg.Servers, e.cfg.Replications)
	for rep := 0; rep < e.cfg.Replications; rep++ {
		gen := NewExpGenerator(e.rng.ForReplication(rep))
		e.sim.Initialize(gen, e.sim.Arrival())
		elapsed, err := e.sim.RunReplication(e.cfg.Horizon)
		if err != nil {
			return nil, fmt.Errorf("replication %d: %w", rep, err)
		}
		reports := e.sim.Report(elapsed)
		samples.add(rep, reports)

		logrus.Debugf("replication %d finished at t=%.4f", rep, elapsed)
		for _, r := range reports {
			logrus.Debugf("  server %d: wait=%.4f min, queue=%.4f, util=%.2f%%, service=%.4f min",
				r.Server, r.AvgWaitMinutes, r.AvgQueueLength, r.UtilizationPercent, r.AvgServiceMinutes)
		}
	}
	return samples.summarize(e.cfg), nil
}

// replicationSamples holds one value per replication for each server metric,
// so means and spreads can be computed once every replication has finished.
type replicationSamples struct {
	wait    [][]float64 // indexed [server][replication]
	queue   [][]float64
	util    [][]float64
	service [][]float64
}

func newReplicationSamples(servers, replications int) *replicationSamples {
	alloc := func() [][]float64 {
		s := make([][]float64, servers)
		for i := range s {
			s[i] = make([]float64, replications)
		}
		return s
	}
	return &replicationSamples{
		wait:    alloc(),
		queue:   alloc(),
		util:    alloc(),
		service: alloc(),
	}
}

func (rs *replicationSamples) add(rep int, reports []ServerReport) {
	for i, r := range reports {
		rs.wait[i][rep] = r.AvgWaitMinutes
		rs.queue[i][rep] = r.AvgQueueLength
		rs.util[i][rep] = r.UtilizationPercent
		rs.service[i][rep] = r.AvgServiceMinutes
	}
}

func (rs *replicationSamples) summarize(cfg Config) *Summary {
	out := &Summary{
		Servers:      make([]ServerSummary, len(rs.wait)),
		Replications: cfg.Replications,
		Horizon:      cfg.Horizon,
		Seed:         cfg.Seed,
	}
	for i := range out.Servers {
		out.Servers[i] = ServerSummary{
			Server:             i,
			AvgWaitMinutes:     stat.Mean(rs.wait[i], nil),
			WaitStdDev:         spread(rs.wait[i]),
			AvgQueueLength:     stat.Mean(rs.queue[i], nil),
			QueueLengthStdDev:  spread(rs.queue[i]),
			UtilizationPercent: stat.Mean(rs.util[i], nil),
			UtilizationStdDev:  spread(rs.util[i]),
			AvgServiceMinutes:  stat.Mean(rs.service[i], nil),
			ServiceStdDev:      spread(rs.service[i]),
		}
	}
	return out
}

// spread is the sample standard deviation, defined as 0 for a single
// replication where gonum would return NaN.
func spread(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
