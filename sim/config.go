package sim

import "fmt"

// DefaultHorizon is the simulated duration, in hours, used when the caller
// does not configure one.
const DefaultHorizon = 8.0

// Config holds the parameters of one simulation study. Rates are per hour;
// the horizon is in hours of simulated time.
type Config struct {
	Servers      int     `yaml:"servers" json:"servers"`             // number of parallel servers c
	ArrivalRate  float64 `yaml:"arrival_rate" json:"arrival_rate"`   // Poisson arrival rate lambda, customers per hour
	ServiceRate  float64 `yaml:"service_rate" json:"service_rate"`   // per-server exponential service rate mu, per hour
	Replications int     `yaml:"replications" json:"replications"`   // independent replications to average
	Horizon      float64 `yaml:"horizon" json:"horizon"`             // simulated hours per replication
	Seed         int64   `yaml:"seed,omitempty" json:"seed"`         // master seed; 0 derives one from the wall clock
}

// Validate rejects configurations the engine must never be constructed with.
// Called at the boundary before any replication starts.
func (c Config) Validate() error {
	if c.Servers < 1 {
		return fmt.Errorf("servers must be at least 1, got %d", c.Servers)
	}
	if c.ArrivalRate <= 0 {
		return fmt.Errorf("arrival_rate must be positive, got %f", c.ArrivalRate)
	}
	if c.ServiceRate <= 0 {
		return fmt.Errorf("service_rate must be positive, got %f", c.ServiceRate)
	}
	if c.Replications < 1 {
		return fmt.Errorf("replications must be at least 1, got %d", c.Replications)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %f", c.Horizon)
	}
	return nil
}

// MeanInterarrival returns the mean time between arrivals, 1/lambda.
func (c Config) MeanInterarrival() float64 {
	return 1 / c.ArrivalRate
}

// MeanService returns the mean service duration, 1/mu.
func (c Config) MeanService() float64 {
	return 1 / c.ServiceRate
}
