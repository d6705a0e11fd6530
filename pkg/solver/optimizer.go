package solver

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
)

// InfeasiblePenalty is the fitness assigned to a particle whose repair
// could not restore feasibility. It dominates any real cost, so such a
// particle can never become the global best, while the run continues.
const InfeasiblePenalty = 1e18

// Recorder receives optimizer progress events. Implementations must be
// cheap, and safe for concurrent use when the optimizer runs in parallel
// mode.
type Recorder interface {
	// IterationDone is called once per completed iteration with the
	// global best fitness at that point.
	IterationDone(iteration int, bestFitness float64)
	// RepairInfeasible is called whenever a particle's repair reports
	// an unrepairable assignment.
	RepairInfeasible()
}

// Config holds the optimizer's tunable parameters.
type Config struct {
	// SwarmSize is the number of particles.
	SwarmSize int
	// Iterations is the iteration budget, the sole termination
	// condition. A budget of 0 returns the initial global best.
	Iterations int

	// Cognitive weighs the pull toward a particle's personal best,
	// Social the pull toward the global best; Inertia is the
	// probability of reconsidering a VM's host at all.
	Cognitive float64
	Social    float64
	Inertia   float64

	Weights Weights

	// Seed makes runs reproducible. In parallel mode it also seeds the
	// per-particle generators.
	Seed int64

	// Parallel evaluates and repairs particles concurrently, deferring
	// all best updates to the end-of-iteration barrier. Sequential mode
	// (the default) lets later particles in an iteration react to a
	// global-best improvement made earlier in the same iteration.
	Parallel bool

	// Recorder, when set, receives progress events.
	Recorder Recorder
}

// Optimizer runs the discrete particle-swarm walk over assignments of a
// fixed VM population onto a fixed host population. The VM and host
// slices are read-only inputs; all mutable swarm state is owned by Run.
type Optimizer struct {
	cfg   Config
	vms   []core.VMSpec
	hosts []core.HostSpec
}

// Result is the best assignment found during a run, with its fitness.
type Result struct {
	Assignment Assignment
	Fitness    float64
}

// New validates cfg against the problem instance and returns an
// optimizer. Configuration errors are reported before any optimization
// work begins.
func New(cfg Config, vms []core.VMSpec, hosts []core.HostSpec) (*Optimizer, error) {
	if cfg.SwarmSize <= 0 {
		return nil, fmt.Errorf("swarm size must be positive, got %d", cfg.SwarmSize)
	}
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("iteration budget must be non-negative, got %d", cfg.Iterations)
	}
	if cfg.Social+cfg.Cognitive <= 0 {
		return nil, fmt.Errorf("social and cognitive coefficients must sum to a positive value, got %.2f + %.2f",
			cfg.Social, cfg.Cognitive)
	}
	if len(vms) == 0 {
		return nil, fmt.Errorf("no VMs to place")
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("host set is empty")
	}
	for i, h := range hosts {
		if h.CPU <= 0 || h.RAM <= 0 || h.Bandwidth <= 0 {
			return nil, fmt.Errorf("host %d has a non-positive capacity dimension", i)
		}
	}
	return &Optimizer{cfg: cfg, vms: vms, hosts: hosts}, nil
}

// Run executes the configured iteration budget and returns the global
// best snapshot. The run is deterministic given the seed; the logger is
// taken from ctx.
func (o *Optimizer) Run(ctx context.Context) (Result, error) {
	log := logr.FromContextOrDiscard(ctx)
	rng := rand.New(rand.NewSource(o.cfg.Seed))

	swarm := make([]*Particle, o.cfg.SwarmSize)
	for i := range swarm {
		p := newParticle(len(o.vms))
		for j := range p.Current {
			p.Current[j] = rng.Intn(len(o.hosts))
		}
		o.score(p)
		copy(p.Best, p.Current)
		p.BestFitness = p.Fitness
		swarm[i] = p
	}

	best := snapshot(swarm[0])
	for _, p := range swarm[1:] {
		if p.Fitness < best.Fitness {
			best = snapshot(p)
		}
	}
	log.V(1).Info("swarm initialized",
		"particles", o.cfg.SwarmSize, "bestFitness", best.Fitness)

	var rngs []*rand.Rand
	if o.cfg.Parallel {
		// One generator per particle; sharing rng across goroutines
		// would race.
		rngs = make([]*rand.Rand, o.cfg.SwarmSize)
		for i := range rngs {
			rngs[i] = rand.New(rand.NewSource(rng.Int63()))
		}
	}

	for iter := 0; iter < o.cfg.Iterations; iter++ {
		if o.cfg.Parallel {
			o.stepParallel(swarm, &best, rngs)
		} else {
			o.stepSequential(swarm, &best, rng)
		}
		if o.cfg.Recorder != nil {
			o.cfg.Recorder.IterationDone(iter, best.Fitness)
		}
		log.V(1).Info("iteration complete", "iteration", iter, "bestFitness", best.Fitness)
	}
	return best, nil
}

// stepSequential updates every particle in order. The global best is
// read and written synchronously, so a later particle reacts to an
// improvement made earlier in the same iteration.
func (o *Optimizer) stepSequential(swarm []*Particle, best *Result, rng *rand.Rand) {
	for _, p := range swarm {
		o.perturb(p, best.Assignment, rng)
		o.score(p)
		o.updateBests(p, best)
	}
}

// stepParallel perturbs, repairs, and scores all particles concurrently
// against a fixed view of the global best, then applies every best
// update after the barrier so evaluations never race on shared state.
func (o *Optimizer) stepParallel(swarm []*Particle, best *Result, rngs []*rand.Rand) {
	globalBest := best.Assignment
	g := new(errgroup.Group)
	for i, p := range swarm {
		g.Go(func() error {
			o.perturb(p, globalBest, rngs[i])
			o.score(p)
			return nil
		})
	}
	_ = g.Wait()
	for _, p := range swarm {
		o.updateBests(p, best)
	}
}

// perturb resamples each of p's per-VM choices with probability Inertia:
// toward the global best with probability Social/(Social+Cognitive) when
// the choices differ, else toward the particle's own best with
// probability Cognitive/(Social+Cognitive) when those differ, else to a
// uniformly random host. A choice already matching a best is never pulled
// toward it, only resampled.
func (o *Optimizer) perturb(p *Particle, globalBest Assignment, rng *rand.Rand) {
	total := o.cfg.Social + o.cfg.Cognitive
	for j := range p.Current {
		if rng.Float64() >= o.cfg.Inertia {
			continue
		}
		switch {
		case p.Current[j] != globalBest[j] && rng.Float64() < o.cfg.Social/total:
			p.Current[j] = globalBest[j]
		case p.Current[j] != p.Best[j] && rng.Float64() < o.cfg.Cognitive/total:
			p.Current[j] = p.Best[j]
		default:
			p.Current[j] = rng.Intn(len(o.hosts))
		}
	}
}

// score repairs p's current assignment in place and evaluates its
// fitness. An assignment the repairer cannot make feasible keeps its
// shape but is priced out of contention.
func (o *Optimizer) score(p *Particle) {
	if out := Repair(p.Current, o.vms, o.hosts); !out.Feasible {
		if o.cfg.Recorder != nil {
			o.cfg.Recorder.RepairInfeasible()
		}
		p.Fitness = InfeasiblePenalty
		return
	}
	p.Fitness = Evaluate(p.Current, o.vms, o.hosts, o.cfg.Weights)
}

// updateBests applies strict-improvement updates to the particle's
// personal best and the global best; ties keep the incumbent.
func (o *Optimizer) updateBests(p *Particle, best *Result) {
	if p.Fitness < p.BestFitness {
		p.BestFitness = p.Fitness
		copy(p.Best, p.Current)
	}
	if p.Fitness < best.Fitness {
		best.Fitness = p.Fitness
		best.Assignment = p.Current.Clone()
	}
}

// snapshot copies a particle's current state into an independent Result.
func snapshot(p *Particle) Result {
	return Result{Assignment: p.Current.Clone(), Fitness: p.Fitness}
}
