package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/mmc-sim/mmc-sim/sim"
	"github.com/mmc-sim/mmc-sim/sim/analytic"
)

var (
	// CLI flags for the simulation scenario
	servers      int     // Number of parallel servers c
	arrivalRate  float64 // Poisson arrival rate lambda (customers per hour)
	serviceRate  float64 // Per-server exponential service rate mu (per hour)
	replications int     // Number of independent replications to average
	horizon      float64 // Simulated hours per replication
	seed         int64   // Master seed (0 = derive from wall clock)
	scenarioPath string  // Optional YAML scenario file replacing the flags above
	logLevel     string  // Log verbosity level
	format       string  // Output format (text or json)
	expected     bool    // Print closed-form reference values after the estimates
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mmc-sim",
	Short: "Discrete-event simulator for multi-server queueing systems",
}

// configureLogging applies the --log flag before any command output
func configureLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// scenarioConfig assembles the study configuration from the scenario file if
// one was given, otherwise from the individual flags.
func scenarioConfig() sim.Config {
	if scenarioPath != "" {
		cfg, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to read scenario: %v", err)
		}
		return *cfg
	}
	return sim.Config{
		Servers:      servers,
		ArrivalRate:  arrivalRate,
		ServiceRate:  serviceRate,
		Replications: replications,
		Horizon:      horizon,
		Seed:         seed,
	}
}

// runCmd executes the simulation study using parameters from CLI flags or a
// scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queueing simulation study",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging()

		cfg := scenarioConfig()
		exp, err := sim.NewExperiment(cfg)
		if err != nil {
			logrus.Fatalf("Cannot start study: %v", err)
		}

		logrus.Infof("Starting study: c=%d, lambda=%.4f/h, mu=%.4f/h, N=%d, horizon=%.2fh, seed=%d",
			cfg.Servers, cfg.ArrivalRate, cfg.ServiceRate, cfg.Replications, cfg.Horizon, exp.Seed())

		startTime := time.Now()
		summary, err := exp.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if err := printSummary(os.Stdout, format, summary); err != nil {
			logrus.Fatalf("Cannot write summary: %v", err)
		}
		if expected {
			printReference(os.Stdout, cfg)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// printSummary writes the averaged per-server estimates in the chosen format.
func printSummary(w io.Writer, format string, s *sim.Summary) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text":
		fmt.Fprintf(w, "Averaged over %d replications (horizon %.2f h, seed %d)\n",
			s.Replications, s.Horizon, s.Seed)
		for _, srv := range s.Servers {
			fmt.Fprintf(w, "Server %d\n", srv.Server)
			fmt.Fprintf(w, "  average wait:         %10.4f min  (stddev %.4f)\n", srv.AvgWaitMinutes, srv.WaitStdDev)
			fmt.Fprintf(w, "  average queue length: %10.4f      (stddev %.4f)\n", srv.AvgQueueLength, srv.QueueLengthStdDev)
			fmt.Fprintf(w, "  utilization:          %10.2f %%    (stddev %.2f)\n", srv.UtilizationPercent, srv.UtilizationStdDev)
			fmt.Fprintf(w, "  average service time: %10.4f min  (stddev %.4f)\n", srv.AvgServiceMinutes, srv.ServiceStdDev)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

// printReference prints the shared-queue M/M/c steady state beside the
// simulated estimates. The simulated system queues per server, so for c > 1
// the closed form is a reference point, not an exact prediction.
func printReference(w io.Writer, cfg sim.Config) {
	m, err := analytic.MMC(cfg.Servers, cfg.ArrivalRate, cfg.ServiceRate)
	if err != nil {
		logrus.Warnf("No closed-form reference: %v", err)
		return
	}
	fmt.Fprintf(w, "M/M/%d closed-form reference (shared queue)\n", cfg.Servers)
	fmt.Fprintf(w, "  utilization:          %10.2f %%\n", m.UtilizationPercent)
	fmt.Fprintf(w, "  average queue length: %10.4f\n", m.AvgQueueLength)
	fmt.Fprintf(w, "  average wait:         %10.4f min\n", m.AvgWaitMinutes)
	fmt.Fprintf(w, "  average service time: %10.4f min\n", m.AvgServiceMinutes)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scenarioFlags registers the flags shared by commands that describe a queue.
func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&servers, "servers", 2, "Number of parallel servers")
	cmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 9, "Arrival rate lambda (customers per hour)")
	cmd.Flags().Float64Var(&serviceRate, "service-rate", 6, "Service rate mu per server (per hour)")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text or json)")
}

// init sets up CLI flags and subcommands
func init() {
	scenarioFlags(runCmd)
	runCmd.Flags().IntVar(&replications, "replications", 30, "Number of independent replications to average")
	runCmd.Flags().Float64Var(&horizon, "horizon", sim.DefaultHorizon, "Simulated hours per replication")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for all replications (0 = derive from wall clock)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file; when set, the scenario flags are ignored")
	runCmd.Flags().BoolVar(&expected, "expected", false, "Print closed-form M/M/c reference values after the estimates")

	rootCmd.AddCommand(runCmd)
}
