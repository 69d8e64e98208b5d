package trace

import "testing"

func TestRecord_AssignsSequenceNumbers(t *testing.T) {
	rt := NewReplicationTrace()

	// Seq on the way in is ignored; firing order wins.
	rt.Record(Record{Seq: 99, Time: 1, Kind: KindArrival})
	rt.Record(Record{Seq: 99, Time: 3, Kind: KindArrival})
	rt.Record(Record{Seq: 99, Time: 6, Kind: KindDeparture})

	if rt.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", rt.Len())
	}
	for i, r := range rt.Records {
		if r.Seq != i {
			t.Errorf("record %d: Seq = %d, want %d", i, r.Seq, i)
		}
	}
}

func TestReset_DiscardsRecordsAndRestartsNumbering(t *testing.T) {
	rt := NewReplicationTrace()
	rt.Record(Record{Time: 1})
	rt.Record(Record{Time: 2})

	rt.Reset()

	if rt.Len() != 0 {
		t.Fatalf("Len after Reset: got %d, want 0", rt.Len())
	}
	rt.Record(Record{Time: 5})
	if rt.Records[0].Seq != 0 {
		t.Errorf("Seq after Reset: got %d, want 0", rt.Records[0].Seq)
	}
}

func TestQueueLengthIntegral_PiecewiseConstantReconstruction(t *testing.T) {
	// GIVEN a single-server history: an arrival at t=1 that starts service,
	// an arrival at t=3 that queues, and a departure at t=6 that pops it
	rt := NewReplicationTrace()
	rt.Record(Record{Time: 1, Previous: 0, Kind: KindArrival, Server: 0, QueueLenBefore: 0, QueueLenAfter: 0, Busy: true})
	rt.Record(Record{Time: 3, Previous: 1, Kind: KindArrival, Server: 0, QueueLenBefore: 0, QueueLenAfter: 1, Busy: true})
	rt.Record(Record{Time: 6, Previous: 3, Kind: KindDeparture, Server: 0, QueueLenBefore: 1, QueueLenAfter: 0, Busy: true})

	// WHEN the integral is reconstructed
	got := rt.QueueLengthIntegral(0)

	// THEN only the interval [3,6] at length 1 contributes
	if got != 3.0 {
		t.Errorf("QueueLengthIntegral: got %v, want 3.0", got)
	}
	if credited := rt.CreditedQueueArea(0); credited != 3.0 {
		t.Errorf("CreditedQueueArea: got %v, want 3.0", credited)
	}
}

func TestQueueLengthIntegral_TracksOnlyRequestedServer(t *testing.T) {
	// Interleaved two-server history: server 1 holds one queued customer on
	// [2,8], server 0 on [3,6].
	rt := interleavedTrace()

	if got := rt.QueueLengthIntegral(0); got != 3.0 {
		t.Errorf("server 0 integral: got %v, want 3.0", got)
	}
	if got := rt.QueueLengthIntegral(1); got != 6.0 {
		t.Errorf("server 1 integral: got %v, want 6.0", got)
	}
}

func TestCreditedQueueArea_CountsOnlyIntervalsEndingAtOwnQueueChange(t *testing.T) {
	rt := interleavedTrace()

	// Server 0's queue changes at t=3 (growth from 0) and t=6 (pop after an
	// uninterrupted interval), so crediting recovers the full integral.
	if got := rt.CreditedQueueArea(0); got != 3.0 {
		t.Errorf("server 0 credited area: got %v, want 3.0", got)
	}
	// Server 1's pop at t=8 credits only the interval since the t=6 event;
	// [2,6] passed without a server-1 queue change and stays uncredited.
	if got := rt.CreditedQueueArea(1); got != 2.0 {
		t.Errorf("server 1 credited area: got %v, want 2.0", got)
	}
}

func TestQueueLengthIntegral_EmptyTrace(t *testing.T) {
	rt := NewReplicationTrace()
	if got := rt.QueueLengthIntegral(0); got != 0 {
		t.Errorf("integral over empty trace: got %v, want 0", got)
	}
}

func interleavedTrace() *ReplicationTrace {
	rt := NewReplicationTrace()
	rt.Record(Record{Time: 1, Previous: 0, Kind: KindArrival, Server: 0, QueueLenBefore: 0, QueueLenAfter: 0, Busy: true})
	rt.Record(Record{Time: 2, Previous: 1, Kind: KindArrival, Server: 1, QueueLenBefore: 0, QueueLenAfter: 1, Busy: true})
	rt.Record(Record{Time: 3, Previous: 2, Kind: KindArrival, Server: 0, QueueLenBefore: 0, QueueLenAfter: 1, Busy: true})
	rt.Record(Record{Time: 6, Previous: 3, Kind: KindDeparture, Server: 0, QueueLenBefore: 1, QueueLenAfter: 0, Busy: true})
	rt.Record(Record{Time: 8, Previous: 6, Kind: KindDeparture, Server: 1, QueueLenBefore: 1, QueueLenAfter: 0, Busy: true})
	return rt
}
