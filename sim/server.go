package sim

// ServerState is the per-server mutable record for one replication: current
// occupancy, the FIFO queue of waiting customers, and the accumulators the
// end-of-run report is computed from. A fresh instance is created for every
// server at the start of each replication; nothing carries across
// replications.
type ServerState struct {
	ID        int
	Busy      bool
	BusySince float64 // start of the current busy interval; valid only while Busy

	Queue    *ArrivalQueue
	QueueLen int // must equal Queue.Len() at all times

	// Statistical accumulators, maintained by the arrival and departure
	// handlers. Wait and service sums are in the caller's rate time unit;
	// the report scales them to minutes.
	QueueAreaSum   float64 // time-integral of queue length
	CompletedCount int     // customers counted at start of service
	WaitSum        float64 // queueing delays of customers popped at departure
	ServiceSum     float64 // service intervals sampled for counted customers
	BusySum        float64 // closed busy intervals
}

// NewServerState creates an idle server with zeroed accumulators.
func NewServerState(id int) *ServerState {
	return &ServerState{
		ID:    id,
		Queue: &ArrivalQueue{},
	}
}
