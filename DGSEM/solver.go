package DGSEM

import (
	"fmt"
	"time"
)

type (
	// PhysicalFluxFunc returns the directional flux vectors for a state.
	PhysicalFluxFunc func(t float64, Q [5]float64, Aux [3]float64) [3][5]float64
	// NumericalFluxFunc resolves the flux at an interior interface from the
	// two adjacent states; normal points from the minus to the plus side.
	NumericalFluxFunc func(normal [3]float64, t float64, QM [5]float64, AuxM [3]float64,
		QP [5]float64, AuxP [3]float64) [5]float64
	// BoundaryFluxFunc resolves the flux at an unpaired face.
	BoundaryFluxFunc func(normal [3]float64, t float64, Q [5]float64, Aux [3]float64) [5]float64
	// WaveSpeedFunc bounds the characteristic speed along a direction.
	WaveSpeedFunc func(normal [3]float64, t float64, Q [5]float64, Aux [3]float64) float64
)

// Callback is invoked from the solve loop on a step or wall-clock cadence.
// Callbacks observe the state; they must not mutate it.
type Callback struct {
	EverySteps int
	EveryWall  time.Duration
	F          func(t float64, step int, s *State)
}

// Solver advances a hyperbolic system on a mesh with the collocation
// spectral element method: contravariant volume fluxes differentiated in
// reference space plus a lifted surface correction at the face nodes. The
// same interface flux value is applied with opposite signs to both sides
// of every interior face, so the total mass integral is conserved to
// rounding error.
type Solver struct {
	Msh           *Mesh
	Ns            int
	CFL           float64
	FinalTime     float64
	PhysicalFlux  PhysicalFluxFunc
	NumericalFlux NumericalFluxFunc
	BoundaryFlux  BoundaryFluxFunc
	WaveSpeed     WaveSpeedFunc
	Callbacks     []Callback
	Verbose       bool
	ft            []float64 // contravariant flux scratch, K*Np*3*Ns
}

func NewSolver(msh *Mesh, ns int, cfl, finalTime float64,
	pf PhysicalFluxFunc, nf NumericalFluxFunc, bf BoundaryFluxFunc,
	ws WaveSpeedFunc) (slv *Solver) {
	if ns < 1 || ns > MaxStateDim {
		panic(fmt.Errorf("state dimension %d out of range", ns))
	}
	slv = &Solver{
		Msh:           msh,
		Ns:            ns,
		CFL:           cfl,
		FinalTime:     finalTime,
		PhysicalFlux:  pf,
		NumericalFlux: nf,
		BoundaryFlux:  bf,
		WaveSpeed:     ws,
		ft:            make([]float64, msh.K*msh.Np*3*ns),
	}
	return
}

// Ndof is the length of the flat state vector the solver advances.
func (slv *Solver) Ndof() int {
	return slv.Msh.K * slv.Msh.Np * slv.Ns
}

// RHS evaluates the semi-discrete right hand side dQ/dt into rhs.
func (slv *Solver) RHS(t float64, s *State, rhs []float64) {
	var (
		msh = slv.Msh
		ns  = slv.Ns
	)
	// contravariant fluxes Ft^m = sum_d Ja^m_d * F_d at every node
	for idx := 0; idx < msh.K*msh.Np; idx++ {
		F := slv.PhysicalFlux(t, s.GetQ(idx), s.Aux[idx])
		for m := 0; m < msh.Dim; m++ {
			base := (idx*3 + m) * ns
			for n := 0; n < ns; n++ {
				var sum float64
				for d := 0; d < 3; d++ {
					sum += msh.Metric[idx][m][d] * F[d][n]
				}
				slv.ft[base+n] = sum
			}
		}
	}
	// volume term: -(1/J) sum_m D_m Ft^m
	var (
		Np1 = msh.N + 1
	)
	for k := 0; k < msh.K; k++ {
		off := k * msh.Np
		for i := 0; i < msh.Np; i++ {
			idx := off + i
			ooJ := 1. / msh.Jac[idx]
			for n := 0; n < ns; n++ {
				rhs[idx*ns+n] = 0
			}
			for m := 0; m < msh.Dim; m++ {
				str := msh.strides[m]
				im := (i / str) % Np1
				ibase := i - im*str
				for a := 0; a < Np1; a++ {
					d := msh.Ops.D[im][a]
					fb := ((off+ibase+a*str)*3 + m) * ns
					for n := 0; n < ns; n++ {
						rhs[idx*ns+n] -= ooJ * d * slv.ft[fb+n]
					}
				}
			}
		}
	}
	// Surface correction at the face nodes. The resolved flux is computed
	// once per point and weighted by the minus side's surface Jacobian on
	// BOTH sides, while each element's own contravariant flux cancels its
	// own volume boundary term. The shared weighted interface value is what
	// makes the total mass drift pure roundoff, even when the two sides'
	// discrete metrics disagree on a curved face.
	wb := msh.Ops.W[0]
	for fi := range msh.Faces {
		face := &msh.Faces[fi]
		sigM, sigP := sideSign(face.SideM), sideSign(face.SideP)
		for fp, iM := range face.NodesM {
			var (
				idxM   = face.ElemM*msh.Np + iM
				normal = face.Normal[fp]
				QM     = s.GetQ(idxM)
				sJfs   [5]float64 // SJ-weighted interface flux along normal
			)
			if face.ElemP >= 0 {
				idxP := face.ElemP*msh.Np + face.NodesP[fp]
				fs := slv.NumericalFlux(normal, t, QM, s.Aux[idxM],
					s.GetQ(idxP), s.Aux[idxP])
				ooJP := 1. / (wb * msh.Jac[idxP])
				fbP := (idxP*3 + face.DirP) * ns
				for n := 0; n < ns; n++ {
					sJfs[n] = face.SJ[fp] * fs[n]
					rhs[idxP*ns+n] -= ooJP * (-sJfs[n] - sigP*slv.ft[fbP+n])
				}
			} else {
				fs := slv.BoundaryFlux(normal, t, QM, s.Aux[idxM])
				for n := 0; n < ns; n++ {
					sJfs[n] = face.SJ[fp] * fs[n]
				}
			}
			ooJM := 1. / (wb * msh.Jac[idxM])
			fbM := (idxM*3 + face.DirM) * ns
			for n := 0; n < ns; n++ {
				rhs[idxM*ns+n] -= ooJM * (sJfs[n] - sigM*slv.ft[fbM+n])
			}
		}
	}
}

func sideSign(side int) float64 {
	if side == 1 {
		return 1.
	}
	return -1.
}

// MaxSpeed scans the state for the largest directional wave speed.
func (slv *Solver) MaxSpeed(t float64, s *State) (smax float64) {
	var (
		msh  = slv.Msh
		axes = [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	)
	for idx := 0; idx < msh.K*msh.Np; idx++ {
		Q := s.GetQ(idx)
		for m := 0; m < msh.Dim; m++ {
			c := slv.WaveSpeed(axes[m], t, Q, s.Aux[idx])
			if c > smax {
				smax = c
			}
		}
	}
	return
}

// TimeStep is the CFL-limited step size dt = CFL * hmin / (smax*(2N+1)).
func (slv *Solver) TimeStep(t float64, s *State) (dt float64) {
	smax := slv.MaxSpeed(t, s)
	if smax <= 0 {
		panic(fmt.Errorf("non-positive maximum wave speed %g", smax))
	}
	dt = slv.CFL * slv.Msh.Hmin / (smax * float64(2*slv.Msh.N+1))
	return
}

// Solve advances the state to FinalTime, firing callbacks on their step or
// wall-clock cadence, and returns the number of steps taken.
func (slv *Solver) Solve(s *State, ti TimeIntegrator) (steps int) {
	var (
		Time     float64
		finished bool
		start    = time.Now()
		lastWall = make([]time.Time, len(slv.Callbacks))
	)
	for i := range lastWall {
		lastWall[i] = start
	}
	if slv.Verbose {
		fmt.Printf("solve: %dD, K=%d, N=%d, %s, CFL=%8.4f, T=%8.4f\n",
			slv.Msh.Dim, slv.Msh.K, slv.Msh.N, ti.Label(), slv.CFL, slv.FinalTime)
	}
	for !finished {
		dt := slv.TimeStep(Time, s)
		if Time+dt >= slv.FinalTime {
			dt = slv.FinalTime - Time
			finished = true
		}
		ti.Step(slv, Time, dt, s)
		Time += dt
		steps++
		for i := range slv.Callbacks {
			cb := &slv.Callbacks[i]
			fire := cb.EverySteps > 0 && steps%cb.EverySteps == 0
			if cb.EveryWall > 0 && time.Since(lastWall[i]) >= cb.EveryWall {
				fire = true
			}
			if fire || finished {
				lastWall[i] = time.Now()
				cb.F(Time, steps, s)
			}
		}
	}
	if slv.Verbose {
		elapsed := time.Since(start)
		fmt.Printf("solve: %d steps in %s, %s/step\n",
			steps, elapsed, elapsed/time.Duration(steps))
	}
	return
}
