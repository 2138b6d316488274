package DGSEM

import (
	"fmt"
	"strings"
)

// TimeIntegrator advances a state by one step of size dt, applying the
// state's storage precision policy after every stage update.
type TimeIntegrator interface {
	Label() string
	Step(slv *Solver, t, dt float64, s *State)
}

var timeIntegratorCtors = map[string]func(ndof int) TimeIntegrator{
	"lsrk45":  func(ndof int) TimeIntegrator { return newLSRK45(ndof) },
	"ssprk33": func(ndof int) TimeIntegrator { return newSSPRK33(ndof) },
}

func NewTimeIntegrator(label string, ndof int) TimeIntegrator {
	ctor, ok := timeIntegratorCtors[strings.ToLower(label)]
	if !ok {
		panic(fmt.Errorf("unable to use time integrator named %s", label))
	}
	return ctor(ndof)
}

// LSRK45 is the five-stage fourth-order low-storage Runge-Kutta scheme of
// Carpenter and Kennedy.
type LSRK45 struct {
	du, rhs []float64
}

var (
	lsrk45a = [5]float64{
		0.,
		-567301805773.0 / 1357537059087.0,
		-2404267990393.0 / 2016746695238.0,
		-3550918686646.0 / 2091501179385.0,
		-1275806237668.0 / 842570457699.0,
	}
	lsrk45b = [5]float64{
		1432997174477.0 / 9575080441755.0,
		5161836677717.0 / 13612068292357.0,
		1720146321549.0 / 2090206949498.0,
		3134564353537.0 / 4481467310338.0,
		2277821191437.0 / 14882151754819.0,
	}
	lsrk45c = [5]float64{
		0.,
		1432997174477.0 / 9575080441755.0,
		2526269341429.0 / 6820363962896.0,
		2006345519317.0 / 3224310063776.0,
		2802321613138.0 / 2924317926251.0,
	}
)

func newLSRK45(ndof int) *LSRK45 {
	return &LSRK45{
		du:  make([]float64, ndof),
		rhs: make([]float64, ndof),
	}
}

func (rk *LSRK45) Label() string { return "lsrk45" }

func (rk *LSRK45) Step(slv *Solver, t, dt float64, s *State) {
	for stage := 0; stage < 5; stage++ {
		slv.RHS(t+lsrk45c[stage]*dt, s, rk.rhs)
		for i := range rk.du {
			rk.du[i] = lsrk45a[stage]*rk.du[i] + dt*rk.rhs[i]
			s.Q[i] += lsrk45b[stage] * rk.du[i]
		}
		s.RoundStorage()
	}
}

// SSPRK33 is the three-stage third-order strong stability preserving
// Runge-Kutta scheme of Shu and Osher.
type SSPRK33 struct {
	q0, rhs []float64
}

func newSSPRK33(ndof int) *SSPRK33 {
	return &SSPRK33{
		q0:  make([]float64, ndof),
		rhs: make([]float64, ndof),
	}
}

func (rk *SSPRK33) Label() string { return "ssprk33" }

func (rk *SSPRK33) Step(slv *Solver, t, dt float64, s *State) {
	copy(rk.q0, s.Q)
	slv.RHS(t, s, rk.rhs)
	for i := range s.Q {
		s.Q[i] = rk.q0[i] + dt*rk.rhs[i]
	}
	s.RoundStorage()
	slv.RHS(t+dt, s, rk.rhs)
	for i := range s.Q {
		s.Q[i] = 0.75*rk.q0[i] + 0.25*(s.Q[i]+dt*rk.rhs[i])
	}
	s.RoundStorage()
	slv.RHS(t+0.5*dt, s, rk.rhs)
	for i := range s.Q {
		s.Q[i] = rk.q0[i]/3. + 2./3.*(s.Q[i]+dt*rk.rhs[i])
	}
	s.RoundStorage()
}
