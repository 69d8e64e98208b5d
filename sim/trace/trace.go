// Package trace records the events fired during one replication so that
// time-weighted statistics can be reconstructed and checked offline. Records
// stay in memory; nothing is persisted.
package trace

// Kind identifies which event variant produced a record.
type Kind string

const (
	// KindArrival marks a customer entering the system.
	KindArrival Kind = "arrival"
	// KindDeparture marks a customer completing service at a server.
	KindDeparture Kind = "departure"
)

// Record captures one fired event and the state transition it applied to the
// affected server. Queue lengths are taken immediately before and after the
// handler ran.
type Record struct {
	Seq            int     // position in firing order, starting at 0
	Time           float64 // clock after the advance that fired the event
	Previous       float64 // clock before the advance
	Kind           Kind
	Server         int // affected server id
	QueueLenBefore int
	QueueLenAfter  int
	Busy           bool // server occupancy after the handler ran
}

// ReplicationTrace collects the records of one replication in firing order.
type ReplicationTrace struct {
	Records []Record
}

// NewReplicationTrace creates a trace ready for recording.
func NewReplicationTrace() *ReplicationTrace {
	return &ReplicationTrace{Records: make([]Record, 0)}
}

// Record appends an event record, assigning its sequence number.
func (rt *ReplicationTrace) Record(r Record) {
	r.Seq = len(rt.Records)
	rt.Records = append(rt.Records, r)
}

// Reset discards all records; called when a new replication begins.
func (rt *ReplicationTrace) Reset() {
	rt.Records = rt.Records[:0]
}

// Len returns the number of recorded events.
func (rt *ReplicationTrace) Len() int {
	return len(rt.Records)
}

// QueueLengthIntegral reconstructs the piecewise-constant time-integral of
// the given server's queue length from the recorded events, integrating from
// time 0 to the last recorded clock value. The queue length is constant
// between events, so each record contributes the length that held since the
// previous record.
func (rt *ReplicationTrace) QueueLengthIntegral(server int) float64 {
	var area, lastTime float64
	queueLen := 0
	for _, r := range rt.Records {
		area += float64(queueLen) * (r.Time - lastTime)
		lastTime = r.Time
		if r.Server == server {
			queueLen = r.QueueLenAfter
		}
	}
	return area
}

// CreditedQueueArea replays the engine's accumulation rule for the given
// server: each record that changed the server's queue credits the interval
// since the immediately preceding event at the pre-change queue length.
// Matches the accumulator exactly for any server count; for a single server
// it coincides with QueueLengthIntegral.
func (rt *ReplicationTrace) CreditedQueueArea(server int) float64 {
	var area float64
	for _, r := range rt.Records {
		if r.Server != server || r.QueueLenAfter == r.QueueLenBefore {
			continue
		}
		area += float64(r.QueueLenBefore) * (r.Time - r.Previous)
	}
	return area
}
