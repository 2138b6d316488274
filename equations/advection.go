package equations

import "math"

// Advection transports a single scalar with the velocity read directly from
// the auxiliary state. Pressure is defined to be zero so the shared preflux
// signature still holds.
type Advection struct{}

func NewAdvection() *Advection {
	return &Advection{}
}

func (eq *Advection) NumStates() int { return 1 }

func (eq *Advection) PreFlux(t float64, Q [MaxStates]float64, Aux [AuxStates]float64) (pr Primitives) {
	pr = Primitives{
		U: Aux[0],
		V: Aux[1],
		W: Aux[2],
	}
	return
}

func (eq *Advection) Flux(t float64, Q [MaxStates]float64, Aux [AuxStates]float64, pr Primitives) (F [3][MaxStates]float64) {
	F[0][0] = pr.U * Q[0]
	F[1][0] = pr.V * Q[0]
	F[2][0] = pr.W * Q[0]
	return
}

func (eq *Advection) MaxWaveSpeed(normal [3]float64, t float64, Q [MaxStates]float64, Aux [AuxStates]float64, pr Primitives) (s float64) {
	s = math.Abs(pr.U*normal[0] + pr.V*normal[1] + pr.W*normal[2])
	return
}

func (eq *Advection) BackgroundOffset(Aux [AuxStates]float64) (delta [MaxStates]float64) {
	return
}
