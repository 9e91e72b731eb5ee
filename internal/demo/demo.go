// Package demo fires batches of concurrent requests at a lot and reports
// outcome counts, timing and the final state.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/lotkit/internal/logger"
	"github.com/joshuapare/lotkit/lot"
	"github.com/joshuapare/lotkit/lot/metrics"
	"github.com/joshuapare/lotkit/lot/verify"
	"github.com/joshuapare/lotkit/pkg/types"
)

// Scenario selects the request pattern.
type Scenario string

const (
	// Mixed parks Vehicles distinct vehicles of random kinds.
	Mixed Scenario = "mixed"
	// Duplicate parks Vehicles requests that all share one id. At most one
	// succeeds; requests whose kind cannot fit fail with full instead.
	Duplicate Scenario = "duplicate"
	// Churn parks and then removes Vehicles distinct vehicles.
	Churn Scenario = "churn"
)

// Scenarios lists every scenario in display order.
var Scenarios = []Scenario{Mixed, Duplicate, Churn}

// ParseScenario resolves a scenario name.
func ParseScenario(s string) (Scenario, error) {
	for _, sc := range Scenarios {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", types.Errorf(types.ErrKindInput, "unknown scenario %q", s)
}

// Options configures a run.
type Options struct {
	Scenario    Scenario
	Vehicles    int   // number of requests (or park/remove pairs for Churn)
	Concurrency int   // maximum in-flight requests; <= 0 means unlimited
	Seed        int64 // seeds vehicle kinds
}

// Report summarizes a run.
type Report struct {
	Scenario  Scenario                  `json:"scenario"`
	Requests  int                       `json:"requests"`
	Outcomes  map[string]int            `json:"outcomes"`
	Elapsed   time.Duration             `json:"elapsed"`
	Parked    int                       `json:"parked"`
	Available []types.FloorAvailability `json:"available"`
}

// OutcomeKeys returns the outcome keys in sorted order.
func (r Report) OutcomeKeys() []string {
	keys := make([]string, 0, len(r.Outcomes))
	for k := range r.Outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type tally struct {
	mu       sync.Mutex
	outcomes map[string]int
	requests int
}

func (t *tally) add(op string, err error) {
	t.mu.Lock()
	t.outcomes[op+" "+metrics.Result(err)]++
	t.requests++
	t.mu.Unlock()
}

// Run executes the scenario against l, then checks the lot invariants. A
// broken invariant is returned as an error alongside the report.
func Run(ctx context.Context, l *lot.Lot, opts Options) (Report, error) {
	if opts.Vehicles < 0 {
		return Report{}, types.Errorf(types.ErrKindInput, "vehicles must not be negative, got %d", opts.Vehicles)
	}
	vehicles, err := generate(opts)
	if err != nil {
		return Report{}, err
	}

	t := &tally{outcomes: make(map[string]int)}
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	logger.Info("demo started", "scenario", string(opts.Scenario), "vehicles", len(vehicles), "concurrency", opts.Concurrency)
	start := time.Now()
	for _, v := range vehicles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := l.Park(v)
			t.add("park", err)
			if opts.Scenario == Churn && err == nil {
				t.add("remove", l.Remove(v.ID))
			}
			return nil
		})
	}
	waitErr := g.Wait()
	elapsed := time.Since(start)

	report := Report{
		Scenario:  opts.Scenario,
		Requests:  t.requests,
		Outcomes:  t.outcomes,
		Elapsed:   elapsed,
		Parked:    l.Parked(),
		Available: l.Available(),
	}
	logger.Info("demo finished", "scenario", string(opts.Scenario), "requests", report.Requests, "elapsed", elapsed)

	if waitErr != nil {
		return report, waitErr
	}
	if err := checkOutcomes(opts.Scenario, report.Outcomes); err != nil {
		logger.Error("demo outcome check failed", "err", err)
		return report, err
	}
	if err := verify.AllInvariants(l.Snapshot()); err != nil {
		logger.Error("demo left lot inconsistent", "err", err)
		return report, err
	}
	return report, nil
}

// checkOutcomes rejects outcome counts no correct lot can produce. Every
// Duplicate request shares one id, so at most one park may succeed.
func checkOutcomes(sc Scenario, outcomes map[string]int) error {
	if sc != Duplicate {
		return nil
	}
	if wins := outcomes["park "+metrics.Result(nil)]; wins > 1 {
		return types.Errorf(types.ErrKindInconsistent, "duplicate id parked %d times", wins)
	}
	return nil
}

// generate builds the request batch up front so the random source is never
// shared between goroutines.
func generate(opts Options) ([]types.Vehicle, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	vehicles := make([]types.Vehicle, opts.Vehicles)

	for i := range vehicles {
		kind := types.Kinds[rng.Intn(len(types.Kinds))]
		switch opts.Scenario {
		case Mixed, Churn:
			vehicles[i] = types.Vehicle{ID: fmt.Sprintf("%s-%04d", kind, i), Kind: kind}
		case Duplicate:
			vehicles[i] = types.Vehicle{ID: "DUP", Kind: kind}
		default:
			return nil, types.Errorf(types.ErrKindInput, "unknown scenario %q", opts.Scenario)
		}
	}
	return vehicles, nil
}
