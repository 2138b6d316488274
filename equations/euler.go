package equations

import "math"

// Euler is the compressible Euler system with a perfect gas closure and a
// prescribed background momentum offset. The physical momentum is the raw
// momentum minus the offset; the offset-adjusted velocity advects the raw
// conserved quantities.
type Euler struct {
	Gamma float64
}

func NewEuler() *Euler {
	return &Euler{Gamma: 1.4}
}

func (eq *Euler) NumStates() int { return 5 }

func (eq *Euler) PreFlux(t float64, Q [MaxStates]float64, Aux [AuxStates]float64) (pr Primitives) {
	var (
		GM1   = eq.Gamma - 1.
		oorho = 1. / Q[0]
		// Physical momentum: raw momentum minus the background offset
		dU = Q[1] - Aux[0]
		dV = Q[2] - Aux[1]
		dW = Q[3] - Aux[2]
	)
	ke := 0.5 * (dU*dU + dV*dV + dW*dW) * oorho
	pr = Primitives{
		P:     GM1 * (Q[4] - ke),
		U:     dU * oorho,
		V:     dV * oorho,
		W:     dW * oorho,
		Oorho: oorho,
	}
	return
}

func (eq *Euler) Flux(t float64, Q [MaxStates]float64, Aux [AuxStates]float64, pr Primitives) (F [3][MaxStates]float64) {
	var (
		u = [3]float64{pr.U, pr.V, pr.W}
		p = pr.P
	)
	for d := 0; d < 3; d++ {
		F[d][0] = Q[0] * u[d]
		F[d][1] = u[d] * Q[1]
		F[d][2] = u[d] * Q[2]
		F[d][3] = u[d] * Q[3]
		F[d][d+1] += p
		F[d][4] = u[d] * (Q[4] + p)
	}
	return
}

func (eq *Euler) MaxWaveSpeed(normal [3]float64, t float64, Q [MaxStates]float64, Aux [AuxStates]float64, pr Primitives) (s float64) {
	// |v.n| + c, with c^2 = Gamma*p/rho. A negative pressure or density
	// produces NaN here, propagated rather than corrected.
	un := pr.U*normal[0] + pr.V*normal[1] + pr.W*normal[2]
	s = math.Abs(un) + math.Sqrt(eq.Gamma*pr.P*pr.Oorho)
	return
}

func (eq *Euler) BackgroundOffset(Aux [AuxStates]float64) (delta [MaxStates]float64) {
	delta[1], delta[2], delta[3] = Aux[0], Aux[1], Aux[2]
	return
}
