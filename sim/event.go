package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Schedulable defines the interface for all simulation events. An event is a
// named occurrence with a mean inter-occurrence time, an enabled flag, and a
// scheduled time that is only meaningful while the event is enabled.
type Schedulable interface {
	Name() string

	// Enabled reports whether the event is eligible for selection.
	Enabled() bool

	// ScheduledAt returns the simulated time at which the event will fire.
	// Only meaningful while Enabled is true.
	ScheduledAt() float64

	// Schedule enables the event, sets its scheduled time to now plus an
	// exponential variate of the event's mean interval, and returns that
	// time. It is the only mutator of the scheduled time.
	Schedule(gen VariateGenerator, now float64) float64

	// Enable and Disable toggle eligibility without altering the
	// scheduled time.
	Enable()
	Disable()

	// Reset disables the event and zeroes its scheduled time. Applied to
	// every registered event at the start of each replication.
	Reset()

	// Fire invokes the engine handler bound to the event variant.
	Fire(sim *Simulator)
}

// baseEvent carries the fields and lifecycle shared by both event variants.
type baseEvent struct {
	name         string
	meanInterval float64 // mean time between occurrences
	scheduledAt  float64 // valid only while enabled
	enabled      bool
}

func (e *baseEvent) Name() string {
	return e.name
}

func (e *baseEvent) Enabled() bool {
	return e.enabled
}

func (e *baseEvent) ScheduledAt() float64 {
	return e.scheduledAt
}

func (e *baseEvent) Schedule(gen VariateGenerator, now float64) float64 {
	e.enabled = true
	e.scheduledAt = gen.Sample(e.meanInterval) + now
	return e.scheduledAt
}

func (e *baseEvent) Enable() {
	e.enabled = true
}

func (e *baseEvent) Disable() {
	e.enabled = false
}

func (e *baseEvent) Reset() {
	e.enabled = false
	e.scheduledAt = 0
}

// ArrivalEvent represents the next customer entering the system. A single
// arrival stream feeds all servers; the event reschedules itself each time
// it fires.
type ArrivalEvent struct {
	baseEvent
}

// NewArrivalEvent creates the arrival event with the given mean
// interarrival time.
func NewArrivalEvent(meanInterarrival float64) *ArrivalEvent {
	return &ArrivalEvent{baseEvent{name: "arrival", meanInterval: meanInterarrival}}
}

// Fire routes the arriving customer through the engine's arrival handler.
func (e *ArrivalEvent) Fire(sim *Simulator) {
	logrus.Debugf("<< Arrival at %.4f", sim.clock.Current)
	sim.handleArrival()
}

// DepartureEvent represents a customer completing service at one server.
// The server binding is fixed at construction; one instance exists per
// server for the lifetime of the engine.
type DepartureEvent struct {
	baseEvent
	serverID int
}

// NewDepartureEvent creates the departure event bound to the given server.
func NewDepartureEvent(serverID int, meanService float64) *DepartureEvent {
	return &DepartureEvent{
		baseEvent: baseEvent{
			name:         fmt.Sprintf("departure_%d", serverID),
			meanInterval: meanService,
		},
		serverID: serverID,
	}
}

// ServerID returns the server this departure is bound to.
func (e *DepartureEvent) ServerID() int {
	return e.serverID
}

// Fire completes a service at the bound server via the departure handler.
func (e *DepartureEvent) Fire(sim *Simulator) {
	logrus.Debugf("<< Departure at %.4f from server %d", sim.clock.Current, e.serverID)
	sim.handleDeparture(e.serverID)
}

// eventSet is the engine's event registry: one arrival slot plus one
// departure slot per server, indexed by server id. It is populated once at
// engine construction; replications reset the events, never the registry.
type eventSet struct {
	arrival    *ArrivalEvent
	departures []*DepartureEvent
}

func newEventSet(servers int, meanInterarrival, meanService float64) eventSet {
	es := eventSet{
		arrival:    NewArrivalEvent(meanInterarrival),
		departures: make([]*DepartureEvent, servers),
	}
	for i := range es.departures {
		es.departures[i] = NewDepartureEvent(i, meanService)
	}
	return es
}

// forEach visits every registered event in scan order: the arrival first,
// then departures by ascending server id. Selection ties are broken by this
// order, so it must stay deterministic.
func (es *eventSet) forEach(fn func(Schedulable)) {
	fn(es.arrival)
	for _, d := range es.departures {
		fn(d)
	}
}

// nextEligible returns the enabled event with the smallest scheduled time,
// or nil if every event is disabled. Strict less-than keeps the first event
// in scan order as the winner of exact ties.
func (es *eventSet) nextEligible() Schedulable {
	var next Schedulable
	es.forEach(func(ev Schedulable) {
		if !ev.Enabled() {
			return
		}
		if next == nil || ev.ScheduledAt() < next.ScheduledAt() {
			next = ev
		}
	})
	return next
}
