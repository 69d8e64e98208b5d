// Package analytic provides closed-form steady-state metrics for Markovian
// queues, used as reference values beside simulation estimates.
package analytic

import "fmt"

// Metrics holds steady-state quantities in the units the simulator reports:
// rates per hour, derived durations in minutes.
type Metrics struct {
	Rho                float64 `json:"rho"`                 // offered load per server, lambda/(c*mu)
	UtilizationPercent float64 `json:"utilization_percent"` // 100*rho
	AvgQueueLength     float64 `json:"avg_queue_length"`    // Lq, mean customers waiting
	AvgWaitMinutes     float64 `json:"avg_wait_minutes"`    // Wq in minutes
	AvgServiceMinutes  float64 `json:"avg_service_minutes"` // 60/mu
}

// MM1 returns the steady-state metrics of the M/M/1 queue with arrival rate
// lambda and service rate mu, both per hour. Requires 0 < lambda < mu.
func MM1(lambda, mu float64) (Metrics, error) {
	return MMC(1, lambda, mu)
}

// MMC returns the steady-state metrics of the shared-queue M/M/c system with
// arrival rate lambda and per-server service rate mu, both per hour. A steady
// state requires lambda < c*mu.
func MMC(c int, lambda, mu float64) (Metrics, error) {
	if c < 1 {
		return Metrics{}, fmt.Errorf("servers must be at least 1, got %d", c)
	}
	if lambda <= 0 || mu <= 0 {
		return Metrics{}, fmt.Errorf("rates must be positive, got lambda=%f, mu=%f", lambda, mu)
	}
	rho := lambda / (float64(c) * mu)
	if rho >= 1 {
		return Metrics{}, fmt.Errorf("no steady state: lambda=%f >= c*mu=%f", lambda, float64(c)*mu)
	}

	lq := erlangC(c, lambda/mu) * rho / (1 - rho)
	wq := lq / lambda // hours, by Little's law

	return Metrics{
		Rho:                rho,
		UtilizationPercent: rho * 100,
		AvgQueueLength:     lq,
		AvgWaitMinutes:     wq * 60,
		AvgServiceMinutes:  60 / mu,
	}, nil
}

// erlangC returns the probability that an arrival has to wait, for offered
// load a = lambda/mu spread over c servers. Terms a^k/k! are built
// incrementally to avoid overflowing factorials.
func erlangC(c int, a float64) float64 {
	term := 1.0 // a^k/k!, starting at k=0
	sum := term
	for k := 1; k < c; k++ {
		term *= a / float64(k)
		sum += term
	}
	rho := a / float64(c)
	tail := term * a / float64(c) / (1 - rho) // (a^c/c!)/(1-rho)
	return tail / (sum + tail)
}
