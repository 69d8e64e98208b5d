package sim

import "testing"

func TestNewServerState_StartsIdleAndZeroed(t *testing.T) {
	s := NewServerState(3)

	if s.ID != 3 {
		t.Errorf("ID: got %d, want 3", s.ID)
	}
	if s.Busy {
		t.Error("new server is busy, want idle")
	}
	if s.Queue == nil || s.Queue.Len() != 0 {
		t.Errorf("new server queue: got %v, want empty", s.Queue)
	}
	if s.QueueLen != 0 {
		t.Errorf("QueueLen: got %d, want 0", s.QueueLen)
	}
	if s.QueueAreaSum != 0 || s.CompletedCount != 0 || s.WaitSum != 0 ||
		s.ServiceSum != 0 || s.BusySum != 0 {
		t.Errorf("accumulators not zeroed: %+v", s)
	}
}
