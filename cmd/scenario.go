package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/mmc-sim/mmc-sim/sim"
)

// LoadScenario reads a YAML scenario file into a sim.Config. Unknown fields
// are rejected so a typo fails loudly instead of silently falling back to a
// default. Omitted fields keep their zero value except the horizon, which
// defaults to sim.DefaultHorizon; validation happens later, when the
// experiment is constructed.
func LoadScenario(path string) (*sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	cfg := sim.Config{Horizon: sim.DefaultHorizon}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &cfg, nil
}
