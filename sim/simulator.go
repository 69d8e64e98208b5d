// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/mmc-sim/mmc-sim/sim/trace"
)

// ErrNoEligibleEvent reports that every registered event is disabled. Hitting
// this before the stop condition means the arrival stream was disabled
// incorrectly, which is fatal for the replication.
var ErrNoEligibleEvent = errors.New("no eligible event to fire")

// Clock tracks simulated time within one replication. Previous holds the
// value Current had before the last advance; handlers use the difference as
// the elapsed interval when accumulating time-weighted statistics.
type Clock struct {
	Current  float64
	Previous float64
}

// advance moves the clock to the given time, remembering where it was.
// Simulated time never runs backwards; a regression is a scheduling defect.
func (c *Clock) advance(to float64) {
	if to < c.Current {
		panic(fmt.Sprintf("Clock went backwards: %.6f < %.6f", to, c.Current))
	}
	c.Previous = c.Current
	c.Current = to
}

// Simulator is the core engine object: it owns the simulated clock, the event
// registry, and the per-server states, and advances the system one event at a
// time. All state mutation during a replication happens inside the handler
// fired by AdvanceAndFire, so the engine is strictly sequential.
type Simulator struct {
	clock  Clock
	events eventSet

	// Servers holds the per-replication server states, index-aligned with
	// the departure events. Populated by Initialize.
	Servers []*ServerState

	// gen is the variate generator owned for the current replication.
	gen VariateGenerator

	// Trace, when non-nil, records every fired event for offline
	// verification. Recording is in-memory only.
	Trace *trace.ReplicationTrace
}

// NewSimulator creates an engine for the given number of servers. The event
// registry is populated once here and covers the lifetime of all
// replications; Initialize establishes fresh per-replication state.
func NewSimulator(servers int, meanInterarrival, meanService float64) *Simulator {
	return &Simulator{
		events: newEventSet(servers, meanInterarrival, meanService),
	}
}

// Arrival returns the registered arrival event, typically to build the seed
// list passed to Initialize.
func (sim *Simulator) Arrival() *ArrivalEvent {
	return sim.events.arrival
}

// Departure returns the registered departure event bound to the given server.
func (sim *Simulator) Departure(serverID int) *DepartureEvent {
	return sim.events.departures[serverID]
}

// Clock returns the current clock values.
func (sim *Simulator) Clock() Clock {
	return sim.clock
}

// ServerCount returns the number of servers the engine was built with.
func (sim *Simulator) ServerCount() int {
	return len(sim.events.departures)
}

// Initialize establishes a fresh replication: new idle server states, the
// clock back at zero, every registered event disabled and zeroed, and each
// seed event scheduled from time 0 with the replication's variate generator.
// The caller decides the seed list; a run that should produce arrivals must
// include the arrival event. This is the sole entry point for starting a
// replication.
func (sim *Simulator) Initialize(gen VariateGenerator, seeds ...Schedulable) {
	sim.gen = gen
	sim.clock = Clock{}
	sim.Servers = make([]*ServerState, sim.ServerCount())
	for i := range sim.Servers {
		sim.Servers[i] = NewServerState(i)
	}
	sim.events.forEach(func(ev Schedulable) {
		ev.Reset()
	})
	for _, ev := range seeds {
		ev.Schedule(gen, 0)
	}
	if sim.Trace != nil {
		sim.Trace.Reset()
	}
}

// SelectNextEvent returns the enabled event with the minimum scheduled time,
// or nil when every registered event is disabled. Ties go to the earliest
// registered event: arrival first, then departures by server id.
func (sim *Simulator) SelectNextEvent() Schedulable {
	return sim.events.nextEligible()
}

// AdvanceAndFire selects the next event, advances the clock to its scheduled
// time, and fires it. This is the single simulated time-step primitive.
func (sim *Simulator) AdvanceAndFire() error {
	ev := sim.SelectNextEvent()
	if ev == nil {
		return ErrNoEligibleEvent
	}
	sim.clock.advance(ev.ScheduledAt())
	ev.Fire(sim)
	return nil
}

// RunReplication advances the engine until the clock reaches the horizon and
// returns the final clock value for use as the report's elapsed time. The
// event that crosses the horizon is still processed, so the returned time may
// exceed the horizon.
func (sim *Simulator) RunReplication(horizon float64) (float64, error) {
	for sim.clock.Current < horizon {
		if err := sim.AdvanceAndFire(); err != nil {
			return sim.clock.Current, fmt.Errorf(
				"replication stalled at t=%.4f before horizon %.4f: %w",
				sim.clock.Current, horizon, err)
		}
	}
	return sim.clock.Current, nil
}

// FindFreeServer picks the target server for an arriving customer. Idle
// servers win a uniform random draw so no low index is systematically favored
// under ties; when every server is busy, the first server with the strictly
// smallest queue wins deterministically. The asymmetry between the two
// tie-breaks is intentional and preserved.
func (sim *Simulator) FindFreeServer() int {
	idle := make([]int, 0, len(sim.Servers))
	shortest := 0
	for i, server := range sim.Servers {
		if !server.Busy {
			idle = append(idle, i)
		}
		if server.QueueLen < sim.Servers[shortest].QueueLen {
			shortest = i
		}
	}
	if len(idle) > 0 {
		return idle[sim.gen.Intn(len(idle))]
	}
	return shortest
}

// handleArrival fires when the arrival event occurs. It routes the customer,
// keeps the arrival stream going, and either starts service on an idle server
// or queues the customer behind a busy one.
func (sim *Simulator) handleArrival() {
	now := sim.clock.Current
	target := sim.Servers[sim.FindFreeServer()]
	queueLenBefore := target.QueueLen

	// The stream continues regardless of how this customer is routed.
	sim.events.arrival.Schedule(sim.gen, now)

	if !target.Busy {
		target.Busy = true
		target.BusySince = now
		target.CompletedCount++
		departAt := sim.events.departures[target.ID].Schedule(sim.gen, now)
		target.ServiceSum += departAt - now
	} else {
		// Credit the elapsed interval at the pre-arrival queue length,
		// strictly before the queue grows.
		target.QueueAreaSum += (now - sim.clock.Previous) * float64(target.QueueLen)
		target.Queue.Enqueue(now)
		target.QueueLen++
	}

	sim.recordTrace(trace.KindArrival, target, queueLenBefore)
}

// handleDeparture fires when the given server's departure event occurs. An
// empty queue idles the server and closes its busy interval; otherwise the
// oldest waiting customer enters service and the next departure is scheduled.
func (sim *Simulator) handleDeparture(serverID int) {
	now := sim.clock.Current
	server := sim.Servers[serverID]
	queueLenBefore := server.QueueLen

	if server.Queue.Len() == 0 {
		sim.events.departures[serverID].Disable()
		server.Busy = false
		server.BusySum += now - server.BusySince
	} else {
		departAt := sim.events.departures[serverID].Schedule(sim.gen, now)
		server.ServiceSum += departAt - now
		// Credit the elapsed interval at the pre-departure queue length,
		// strictly before popping.
		server.QueueAreaSum += (now - sim.clock.Previous) * float64(server.QueueLen)
		arrivedAt := server.Queue.Dequeue()
		server.QueueLen--
		server.WaitSum += now - arrivedAt
		server.CompletedCount++
	}

	sim.recordTrace(trace.KindDeparture, server, queueLenBefore)
}

func (sim *Simulator) recordTrace(kind trace.Kind, server *ServerState, queueLenBefore int) {
	if sim.Trace == nil {
		return
	}
	sim.Trace.Record(trace.Record{
		Time:           sim.clock.Current,
		Previous:       sim.clock.Previous,
		Kind:           kind,
		Server:         server.ID,
		QueueLenBefore: queueLenBefore,
		QueueLenAfter:  server.QueueLen,
		Busy:           server.Busy,
	})
}
