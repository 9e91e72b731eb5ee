package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/lotkit/internal/demo"
	"github.com/joshuapare/lotkit/lot/metrics"
)

var (
	demoVehicles    int
	demoConcurrency int
	demoScenario    string
	demoSeed        int64
	demoMetrics     bool
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoVehicles, "vehicles", 100, "Number of requests to fire")
	cmd.Flags().IntVar(&demoConcurrency, "concurrency", 0, "Maximum in-flight requests (0 = unlimited)")
	cmd.Flags().StringVar(&demoScenario, "scenario", string(demo.Mixed), "Request pattern (mixed, duplicate, churn)")
	cmd.Flags().Int64Var(&demoSeed, "seed", 1, "Seed for vehicle kinds")
	cmd.Flags().BoolVar(&demoMetrics, "metrics", false, "Print collected metrics after the run")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Fire a batch of concurrent requests and report the results",
		Long: `The demo command builds an empty lot, fires a batch of concurrent park
requests, and reports outcome counts, elapsed time and final availability.
The lot invariants are checked once all requests have returned.

Scenarios:
  mixed      distinct vehicles of random kinds
  duplicate  every request uses the same vehicle id (at most one wins;
             kinds that cannot fit fail with full)
  churn      each vehicle parks and then leaves

Example:
  lotctl demo --vehicles 1000 --concurrency 64
  lotctl demo --scenario duplicate --vehicles 50
  lotctl demo --scenario churn --floor-sizes 4,4,2 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context())
		},
	}
	return cmd
}

func runDemo(ctx context.Context) error {
	scenario, err := demo.ParseScenario(demoScenario)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return err
	}

	opts := cfg.LotOptions()
	opts.Observer = rec
	l, err := newLot(opts)
	if err != nil {
		return err
	}
	if err := reg.Register(metrics.NewCollector(l)); err != nil {
		return err
	}

	report, runErr := demo.Run(ctx, l, demo.Options{
		Scenario:    scenario,
		Vehicles:    demoVehicles,
		Concurrency: demoConcurrency,
		Seed:        demoSeed,
	})

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if demoMetrics && !jsonOut {
		if err := printMetrics(reg); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("demo failed: %w", runErr)
	}
	printInfo("\n✓ Invariants hold\n")
	return nil
}

func printReport(r demo.Report) {
	p := message.NewPrinter(language.English)

	printInfo("\nScenario: %s\n", r.Scenario)
	printInfo("  Requests: %s\n", p.Sprintf("%d", r.Requests))
	printInfo("  Elapsed: %s\n", r.Elapsed.Round(time.Microsecond))
	if r.Elapsed > 0 {
		rate := float64(r.Requests) / r.Elapsed.Seconds()
		printInfo("  Throughput: %s req/s\n", p.Sprintf("%.0f", rate))
	}

	printInfo("\nOutcomes:\n")
	for _, k := range r.OutcomeKeys() {
		printInfo("  %-28s %s\n", k, p.Sprintf("%d", r.Outcomes[k]))
	}

	printInfo("\nAvailability:\n")
	for _, fa := range r.Available {
		printInfo("  floor %d: %d/%d free\n", fa.Floor, fa.Available, fa.Capacity)
	}
	printInfo("  parked: %d\n", r.Parked)
}

func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	printInfo("\nMetrics:\n")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			if labels != "" {
				labels = "{" + labels + "}"
			}

			value := m.GetGauge().GetValue()
			if m.GetCounter() != nil {
				value = m.GetCounter().GetValue()
			}
			printInfo("  %s%s %g\n", mf.GetName(), labels, value)
		}
	}
	return nil
}
