package sim

// minutesPerHour scales waits and service durations for reporting. Rates are
// given per hour; reports show the derived durations in minutes.
const minutesPerHour = 60

// ServerReport is the 4-tuple of performance estimates for one server over
// one replication.
type ServerReport struct {
	Server             int     `json:"server"`
	AvgWaitMinutes     float64 `json:"avg_wait_minutes"`
	AvgQueueLength     float64 `json:"avg_queue_length"`
	UtilizationPercent float64 `json:"utilization_percent"`
	AvgServiceMinutes  float64 `json:"avg_service_minutes"`
}

// Report computes the per-server 4-tuples at the given elapsed clock time,
// normally the final clock returned by RunReplication. Index i of the result
// reports server i.
func (sim *Simulator) Report(elapsed float64) []ServerReport {
	reports := make([]ServerReport, len(sim.Servers))
	for i, server := range sim.Servers {
		reports[i] = server.report(elapsed)
	}
	return reports
}

// report derives the server's estimates from its accumulators. Every
// division guards its denominator and yields 0 instead of a fault. A server
// still busy at the stop time has its open busy interval counted in the
// reported value without writing it back, so reporting is idempotent.
func (s *ServerState) report(elapsed float64) ServerReport {
	r := ServerReport{Server: s.ID}
	if s.CompletedCount > 0 {
		r.AvgWaitMinutes = s.WaitSum / float64(s.CompletedCount) * minutesPerHour
		r.AvgServiceMinutes = s.ServiceSum / float64(s.CompletedCount) * minutesPerHour
	}
	if elapsed > 0 {
		busy := s.BusySum
		if s.Busy {
			busy += elapsed - s.BusySince
		}
		r.AvgQueueLength = s.QueueAreaSum / elapsed
		r.UtilizationPercent = busy / elapsed * 100
	}
	return r
}
