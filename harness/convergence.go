package harness

import (
	"fmt"
	"math"
	"time"

	"github.com/jkozdon/canary/DGSEM"
	"github.com/jkozdon/canary/equations"
	"github.com/jkozdon/canary/model_problems/IsentropicVortex"
	"github.com/jkozdon/canary/model_problems/SphereAdvection"
)

// Config drives a convergence sweep: one manufactured-solution case run
// across precisions, dimensions and refinement levels. Zero values fall
// back to the defaults of the vortex smoke case.
type Config struct {
	Title          string
	Order          int     // polynomial order N
	CFL            float64
	FinalTime      float64
	FluxType       string
	TimeIntegrator string
	Levels         int   // refinement levels, elements double per level
	BaseElements   int   // elements per direction at level 0
	Dimensions     []int // spatial dimensions to sweep (vortex case)
	Precisions     []string
	Gamma          float64 // ratio of specific heats (vortex case)
	Beta           float64 // vortex strength
	RandomInit     bool    // random-field smoke mode, no error measurement
	RandomSeed     int64
	Verbose        bool
}

func (cfg *Config) applyDefaults() {
	if cfg.Order == 0 {
		cfg.Order = 3
	}
	if cfg.CFL == 0 {
		cfg.CFL = 0.5
	}
	if cfg.FinalTime == 0 {
		cfg.FinalTime = 0.1
	}
	if cfg.FluxType == "" {
		cfg.FluxType = "rusanov"
	}
	if cfg.TimeIntegrator == "" {
		cfg.TimeIntegrator = "lsrk45"
	}
	if cfg.Levels == 0 {
		cfg.Levels = 3
	}
	if cfg.BaseElements == 0 {
		cfg.BaseElements = 4
	}
	if len(cfg.Dimensions) == 0 {
		cfg.Dimensions = []int{2}
	}
	if len(cfg.Precisions) == 0 {
		cfg.Precisions = []string{"float64"}
	}
	if cfg.Gamma == 0 {
		cfg.Gamma = 1.4
	}
	if cfg.Beta == 0 {
		cfg.Beta = 5
	}
}

// LevelRecord captures one run of the solver at one refinement level.
type LevelRecord struct {
	Level     int
	Elements  int // per direction
	Dofs      int
	Steps     int
	Error     float64 // relative L2 error vs the exact field
	MassDelta float64 // relative drift of the first conserved integral
	Elapsed   time.Duration
}

// Sweep groups the levels of one precision/dimension combination.
type Sweep struct {
	Case      string
	Precision string
	Dim       int
	Records   []LevelRecord
}

func (sw *Sweep) Key() string {
	return fmt.Sprintf("%s-%s-%dd", sw.Case, sw.Precision, sw.Dim)
}

// Rates are the observed convergence orders between consecutive levels.
func (sw *Sweep) Rates() (rates []float64) {
	for i := 1; i < len(sw.Records); i++ {
		rates = append(rates, math.Log2(sw.Records[i-1].Error/sw.Records[i].Error))
	}
	return
}

// Result is the full outcome of a convergence sweep.
type Result struct {
	Title  string
	Sweeps []Sweep
}

// Verify compares the measured errors against recorded expectations, keyed
// by Sweep.Key(). A sweep with no recorded expectation is skipped. The
// returned error lists every mismatch with the observed value, so a new
// expectation can be recorded directly from the report.
func (r *Result) Verify(expected map[string][]float64, tol float64) (err error) {
	if tol == 0 {
		tol = 1.e-6
	}
	var report string
	for i := range r.Sweeps {
		sw := &r.Sweeps[i]
		want, ok := expected[sw.Key()]
		if !ok {
			continue
		}
		if len(want) != len(sw.Records) {
			report += fmt.Sprintf("%s: have %d levels, expected %d\n",
				sw.Key(), len(sw.Records), len(want))
			continue
		}
		for lv, rec := range sw.Records {
			if math.Abs(rec.Error-want[lv]) > tol*math.Abs(want[lv]) {
				report += fmt.Sprintf("%s level %d: error %.12e, expected %.12e\n",
					sw.Key(), lv, rec.Error, want[lv])
			}
		}
	}
	if report != "" {
		err = fmt.Errorf("convergence verification failed:\n%s", report)
	}
	return
}

func eulerCallbacks(eq *equations.Euler) (pf DGSEM.PhysicalFluxFunc,
	nf DGSEM.NumericalFluxFunc, ws DGSEM.WaveSpeedFunc) {
	pf = func(t float64, Q [5]float64, Aux [3]float64) [3][5]float64 {
		return eq.Flux(t, Q, Aux, eq.PreFlux(t, Q, Aux))
	}
	nf = func(normal [3]float64, t float64, QM [5]float64, AuxM [3]float64,
		QP [5]float64, AuxP [3]float64) [5]float64 {
		return equations.RusanovFlux(eq, normal, t, QM, AuxM, QP, AuxP)
	}
	ws = func(normal [3]float64, t float64, Q [5]float64, Aux [3]float64) float64 {
		return eq.MaxWaveSpeed(normal, t, Q, Aux, eq.PreFlux(t, Q, Aux))
	}
	return
}

func advectionCallbacks(eq *equations.Advection) (pf DGSEM.PhysicalFluxFunc,
	nf DGSEM.NumericalFluxFunc, ws DGSEM.WaveSpeedFunc) {
	pf = func(t float64, Q [5]float64, Aux [3]float64) [3][5]float64 {
		return eq.Flux(t, Q, Aux, eq.PreFlux(t, Q, Aux))
	}
	nf = func(normal [3]float64, t float64, QM [5]float64, AuxM [3]float64,
		QP [5]float64, AuxP [3]float64) [5]float64 {
		return equations.RusanovFlux(eq, normal, t, QM, AuxM, QP, AuxP)
	}
	ws = func(normal [3]float64, t float64, Q [5]float64, Aux [3]float64) float64 {
		return eq.MaxWaveSpeed(normal, t, Q, Aux, eq.PreFlux(t, Q, Aux))
	}
	return
}

func (cfg *Config) progressCallbacks() (cbs []DGSEM.Callback) {
	if !cfg.Verbose {
		return
	}
	cbs = append(cbs, DGSEM.Callback{
		EveryWall: 2 * time.Second,
		F: func(t float64, step int, s *DGSEM.State) {
			fmt.Printf("  step %6d, time %8.5f, mass %12.8f\n", step, t, s.Mass())
		},
	})
	return
}

// RunVortex sweeps the translating isentropic vortex on periodic boxes
// [-5,5]^dim across the configured precisions, dimensions and levels.
func RunVortex(cfg Config) (res *Result) {
	cfg.applyDefaults()
	equations.NewFluxType(cfg.FluxType) // fail fast on a bad name
	var (
		eq = &equations.Euler{Gamma: cfg.Gamma}
	)
	pf, nf, ws := eulerCallbacks(eq)
	res = &Result{Title: cfg.Title}
	for _, precName := range cfg.Precisions {
		prec := DGSEM.NewPrecision(precName)
		for _, dim := range cfg.Dimensions {
			sw := Sweep{Case: "vortex", Precision: prec.String(), Dim: dim}
			for level := 0; level < cfg.Levels; level++ {
				iv := IsentropicVortex.NewIVortex(cfg.Beta, 0, 0, cfg.Gamma)
				if cfg.RandomInit {
					iv.Randomize(cfg.RandomSeed)
				}
				var (
					Ne  = cfg.BaseElements << level
					msh = DGSEM.NewCartesianMesh(dim, Ne, cfg.Order, -5, 5, true)
					s   = DGSEM.NewState(msh, eq.NumStates(), prec,
						iv.InitialCondition, iv.BackgroundField)
					slv = DGSEM.NewSolver(msh, eq.NumStates(), cfg.CFL,
						cfg.FinalTime, pf, nf, equations.ZeroBoundaryFlux, ws)
				)
				slv.Callbacks = cfg.progressCallbacks()
				slv.Verbose = cfg.Verbose
				m0 := s.Mass()
				start := time.Now()
				steps := slv.Solve(s, DGSEM.NewTimeIntegrator(cfg.TimeIntegrator, slv.Ndof()))
				rec := LevelRecord{
					Level:     level,
					Elements:  Ne,
					Dofs:      slv.Ndof(),
					Steps:     steps,
					MassDelta: math.Abs(s.Mass()-m0) / math.Abs(m0),
					Elapsed:   time.Since(start),
				}
				if !cfg.RandomInit {
					_, rec.Error = s.ErrorVsExact(cfg.FinalTime, iv.Exact)
				}
				sw.Records = append(sw.Records, rec)
				if cfg.Verbose {
					fmt.Printf("vortex %s %dD level %d: Ne=%3d err=%.6e dmass=%.2e (%s)\n",
						prec, dim, level, Ne, rec.Error, rec.MassDelta, rec.Elapsed)
				}
			}
			res.Sweeps = append(res.Sweeps, sw)
		}
	}
	return
}

// RunSphere sweeps scalar advection of a Gaussian bump around a cubed
// sphere shell under solid-body rotation. The field is radially uniform,
// so refinement only subdivides the panels.
func RunSphere(cfg Config) (res *Result) {
	cfg.applyDefaults()
	equations.NewFluxType(cfg.FluxType)
	var (
		eq = equations.NewAdvection()
	)
	pf, nf, ws := advectionCallbacks(eq)
	res = &Result{Title: cfg.Title}
	for _, precName := range cfg.Precisions {
		prec := DGSEM.NewPrecision(precName)
		sw := Sweep{Case: "sphere", Precision: prec.String(), Dim: 3}
		for level := 0; level < cfg.Levels; level++ {
			sc := SphereAdvection.NewSphereCase()
			if cfg.RandomInit {
				sc.Randomize(cfg.RandomSeed)
			}
			var (
				NeH = cfg.BaseElements << level
				msh = DGSEM.NewCubedSphereMesh(NeH, 1, cfg.Order,
					sc.RInner, sc.ROuter)
				s = DGSEM.NewState(msh, eq.NumStates(), prec,
					sc.InitialCondition, sc.Velocity)
				slv = DGSEM.NewSolver(msh, eq.NumStates(), cfg.CFL,
					cfg.FinalTime, pf, nf, equations.ZeroBoundaryFlux, ws)
			)
			slv.Callbacks = cfg.progressCallbacks()
			slv.Verbose = cfg.Verbose
			m0 := s.Mass()
			start := time.Now()
			steps := slv.Solve(s, DGSEM.NewTimeIntegrator(cfg.TimeIntegrator, slv.Ndof()))
			rec := LevelRecord{
				Level:     level,
				Elements:  NeH,
				Dofs:      slv.Ndof(),
				Steps:     steps,
				MassDelta: math.Abs(s.Mass()-m0) / math.Abs(m0),
				Elapsed:   time.Since(start),
			}
			if !cfg.RandomInit {
				_, rec.Error = s.ErrorVsExact(cfg.FinalTime, sc.Exact)
			}
			sw.Records = append(sw.Records, rec)
			if cfg.Verbose {
				fmt.Printf("sphere %s level %d: NeH=%3d err=%.6e dmass=%.2e (%s)\n",
					prec, level, NeH, rec.Error, rec.MassDelta, rec.Elapsed)
			}
		}
		res.Sweeps = append(res.Sweeps, sw)
	}
	return
}
