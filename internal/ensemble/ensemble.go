// Package ensemble runs many related growth simulations as a batch: one
// member per parameter combination (times optional stochastic
// replicates), executed by a bounded worker pool. Member seeding is
// deterministic regardless of worker count or scheduling; replicate
// variation comes from a seeded perturbation of the initial state.
package ensemble

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/sim"
)

// Grid defines the parameter combinations an ensemble sweeps.
type Grid struct {
	Names  []string
	Values [][]float64
}

// Size returns the number of combinations in the grid. An empty grid has
// size one: a single member with default parameters.
func (g Grid) Size() int {
	size := 1
	for _, vals := range g.Values {
		size *= len(vals)
	}
	return size
}

// Expand enumerates every parameter combination in a stable order: the
// last parameter varies fastest.
func (g Grid) Expand() []map[string]float64 {
	combos := []map[string]float64{{}}
	for i, name := range g.Names {
		next := make([]map[string]float64, 0, len(combos)*len(g.Values[i]))
		for _, combo := range combos {
			for _, v := range g.Values[i] {
				c := make(map[string]float64, len(combo)+1)
				for k, val := range combo {
					c[k] = val
				}
				c[name] = v
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos
}

// Member identifies one simulation within an ensemble.
type Member struct {
	Index     int
	Replicate int
	Params    map[string]float64
	Seed      int64
}

type MemberResult struct {
	Member Member
	Result *sim.Result
}

// Ensemble couples model and integrator factories with a parameter grid.
// Factories are invoked once per member so that members never share
// mutable state across goroutines.
type Ensemble struct {
	NewDynamics   func() (sim.Dynamics, error)
	NewIntegrator func() (sim.Integrator, error)
	Grid          Grid
	Replicates    int
	SeedStart     int64
	Workers       int

	// InitSD, when positive, applies a lognormal perturbation with this
	// relative SD to each member's initial state, drawn from the member
	// seed. This is what makes replicates stochastic rather than copies.
	InitSD float64

	// Progress, when set, is called after each member completes.
	Progress func(done, total int)
}

// Members expands the grid into the full member list.
func (e *Ensemble) Members() []Member {
	replicates := e.Replicates
	if replicates < 1 {
		replicates = 1
	}

	combos := e.Grid.Expand()
	members := make([]Member, 0, len(combos)*replicates)
	for _, params := range combos {
		for r := 0; r < replicates; r++ {
			idx := len(members)
			members = append(members, Member{
				Index:     idx,
				Replicate: r,
				Params:    params,
				Seed:      e.SeedStart + int64(idx),
			})
		}
	}
	return members
}

// Run executes every member and returns results slotted by member index.
// The first member error is returned after all workers drain; a canceled
// context stops the pool early.
func (e *Ensemble) Run(ctx context.Context, x0 sim.State, cfg sim.Config) ([]MemberResult, error) {
	members := e.Members()
	total := len(members)

	results := make([]MemberResult, total)
	errs := make([]error, total)

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan int)
	var done int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx], errs[idx] = e.runMember(ctx, members[idx], x0, cfg)
				if e.Progress != nil {
					e.Progress(int(atomic.AddInt64(&done, 1)), total)
				}
			}
		}()
	}

feed:
	for idx := range members {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (e *Ensemble) runMember(ctx context.Context, m Member, x0 sim.State, cfg sim.Config) (MemberResult, error) {
	dyn, err := e.NewDynamics()
	if err != nil {
		return MemberResult{Member: m}, err
	}

	if len(m.Params) > 0 {
		configurable, ok := dyn.(sim.Configurable)
		if !ok {
			return MemberResult{Member: m}, fmt.Errorf("model does not accept parameters")
		}
		for name, value := range m.Params {
			if err := configurable.SetParam(name, value); err != nil {
				return MemberResult{Member: m}, fmt.Errorf("member %d: %w", m.Index, err)
			}
		}
	}

	integ, err := e.NewIntegrator()
	if err != nil {
		return MemberResult{Member: m}, err
	}

	memberCfg := cfg
	memberCfg.Seed = m.Seed

	x := x0
	if e.InitSD > 0 {
		rng := rand.New(rand.NewSource(m.Seed))
		x = x0.Clone()
		for i := range x {
			x[i] *= math.Exp(e.InitSD * rng.NormFloat64())
		}
	}

	result, err := sim.New(dyn, integ).Run(ctx, x, memberCfg)
	return MemberResult{Member: m, Result: result}, err
}
