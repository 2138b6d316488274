package IsentropicVortex

import (
	"math"
	"math/rand"

	"github.com/jkozdon/canary/utils"
)

// IVortex is an isentropic vortex translating at the freestream velocity
// through a doubly periodic domain. It is used both as initial condition and
// as the exact reference field for error measurement. The background
// momentum offset field is an unrelated smooth cosine/sine pattern added to
// the momentum purely to exercise the offset-subtraction machinery.
type IVortex struct {
	Beta, X0, Y0, Gamma float64
	Ufs, Vfs            float64
	Period              float64 // domain period; <= 0 disables folding
	DeltaScale          float64 // amplitude of the background offset field
	Deterministic       bool
	rng                 *rand.Rand
}

func NewIVortex(Beta, X0, Y0, Gamma float64, UfsO ...float64) (iv *IVortex) {
	var (
		Ufs = 1.0
		Vfs = 0.0
	)
	if len(UfsO) > 0 {
		Ufs = UfsO[0]
	}
	if len(UfsO) > 1 {
		Vfs = UfsO[1]
	}
	iv = &IVortex{
		Beta:          Beta,
		X0:            X0,
		Y0:            Y0,
		Gamma:         Gamma,
		Ufs:           Ufs,
		Vfs:           Vfs,
		Period:        10,
		DeltaScale:    0.05,
		Deterministic: true,
	}
	return
}

// Randomize switches the generator into the non-deterministic smoke-test
// mode. The switch is run-wide: it applies to every subsequent call.
func (iv *IVortex) Randomize(seed int64) {
	iv.Deterministic = false
	iv.rng = rand.New(rand.NewSource(seed))
}

// fold wraps a coordinate offset into the centered half-period box so the
// closed-form profile sees the nearest periodic image of the vortex.
func (iv *IVortex) fold(s float64) float64 {
	if iv.Period <= 0 {
		return s
	}
	half := 0.5 * iv.Period
	s = math.Mod(s+half, iv.Period)
	if s < 0 {
		s += iv.Period
	}
	return s - half
}

// GetState evaluates the primitive vortex profile at time t.
func (iv *IVortex) GetState(t, x, y float64) (u, v, rho, p float64) {
	var (
		oo2pi = 0.5 * (1. / math.Pi)
		Gamma = iv.Gamma
		GM1   = Gamma - 1
		OOGM1 = 1. / GM1
		pi2   = math.Pi * math.Pi
		beta  = iv.Beta
		beta2 = beta * beta
		fac   = 16 * Gamma * pi2
	)
	u, v = iv.Ufs, iv.Vfs // freestream values, perturbed below
	xr := iv.fold(x - u*t - iv.X0)
	yr := iv.fold(y - v*t - iv.Y0)
	r2 := utils.POW(xr, 2) + utils.POW(yr, 2)
	ex1r := math.Exp(1 - r2)
	tv1 := 1.0 - (GM1 * beta2 * math.Exp(2.0*(1.0-r2)) / fac)
	u -= beta * ex1r * yr * oo2pi
	v += beta * ex1r * xr * oo2pi
	rho = math.Pow(tv1, OOGM1)
	p = math.Pow(rho, Gamma)
	return
}

// BackgroundField is the auxiliary momentum offset at a point: a fixed
// smooth pattern of position, not a physically meaningful mean flow.
func (iv *IVortex) BackgroundField(x [3]float64) (aux [3]float64) {
	k := 2 * math.Pi / iv.Period
	aux[0] = iv.DeltaScale * math.Sin(k*x[0]) * math.Cos(k*x[1])
	aux[1] = iv.DeltaScale * math.Cos(k*x[0]) * math.Sin(k*x[1])
	return
}

// GetStateC returns the conserved state carried by the solver: the raw
// momentum includes the background offset, which the decomposition step
// subtracts back out.
func (iv *IVortex) GetStateC(t float64, x [3]float64) (Q [5]float64) {
	var (
		ooGM1 = 1. / (iv.Gamma - 1.)
	)
	u, v, rho, p := iv.GetState(t, x[0], x[1])
	aux := iv.BackgroundField(x)
	q := 0.5 * rho * (u*u + v*v)
	Q[0] = rho
	Q[1] = rho*u + aux[0]
	Q[2] = rho*v + aux[1]
	Q[3] = aux[2]
	Q[4] = p*ooGM1 + q
	return
}

// InitialCondition seeds the simulation. In non-deterministic mode the
// state is filled with random values to smoke-test the plumbing only.
func (iv *IVortex) InitialCondition(x [3]float64) (Q [5]float64) {
	if !iv.Deterministic {
		for n := range Q {
			Q[n] = iv.rng.Float64()
		}
		Q[0] += 1.  // keep the density away from zero
		Q[4] += 10. // and the pressure positive
		return
	}
	Q = iv.GetStateC(0, x)
	return
}

// Exact is the manufactured reference field at time t.
func (iv *IVortex) Exact(t float64, x [3]float64) (Q [5]float64) {
	Q = iv.GetStateC(t, x)
	return
}
