package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mmc-sim/mmc-sim/sim/analytic"
)

// analyzeCmd prints closed-form steady-state metrics without simulating,
// useful for sanity-checking a scenario before spending replications on it.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print closed-form M/M/c steady-state metrics",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging()

		m, err := analytic.MMC(servers, arrivalRate, serviceRate)
		if err != nil {
			logrus.Fatalf("Cannot analyze: %v", err)
		}

		switch format {
		case "json":
			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				logrus.Fatalf("Cannot write metrics: %v", err)
			}
			fmt.Println(string(data))
		case "text":
			fmt.Printf("M/M/%d steady state (lambda=%.4f/h, mu=%.4f/h, rho=%.4f)\n",
				servers, arrivalRate, serviceRate, m.Rho)
			fmt.Printf("  utilization:          %10.2f %%\n", m.UtilizationPercent)
			fmt.Printf("  average queue length: %10.4f\n", m.AvgQueueLength)
			fmt.Printf("  average wait:         %10.4f min\n", m.AvgWaitMinutes)
			fmt.Printf("  average service time: %10.4f min\n", m.AvgServiceMinutes)
		default:
			logrus.Fatalf("Unknown output format %q (want text or json)", format)
		}
	},
}

func init() {
	scenarioFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}
