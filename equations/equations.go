package equations

// The conserved state is a fixed-length vector: the Euler system uses all
// five components [rho, rhoU, rhoV, rhoW, E], scalar advection uses only the
// first. The auxiliary state is a three component background field that is
// not evolved in time: a momentum offset for Euler, the transport velocity
// for advection.
const (
	MaxStates = 5
	AuxStates = 3
)

// Primitives is the bundle derived once per evaluation point and threaded
// into both the flux kernel and the wavespeed estimator, so the two can
// never disagree about how the raw state is interpreted.
type Primitives struct {
	P       float64 // static pressure
	U, V, W float64 // physical velocity components
	Oorho   float64 // inverse density
}

// Equation is the per-point physics kernel set shared by the interior flux
// computation and the interface (Riemann) flux. All methods are pure.
type Equation interface {
	NumStates() int
	// PreFlux derives the primitive bundle from a conserved/auxiliary state
	// pair. The time argument is unused by the equations implemented here
	// but kept for interface uniformity.
	PreFlux(t float64, Q [MaxStates]float64, Aux [AuxStates]float64) (pr Primitives)
	// Flux computes the flux tensor, one flux vector per spatial dimension.
	Flux(t float64, Q [MaxStates]float64, Aux [AuxStates]float64, pr Primitives) (F [3][MaxStates]float64)
	// MaxWaveSpeed bounds the signal speed along the given unit normal.
	MaxWaveSpeed(normal [3]float64, t float64, Q [MaxStates]float64, Aux [AuxStates]float64, pr Primitives) (s float64)
	// BackgroundOffset reports the per-component contribution of the
	// auxiliary state to the conserved vector. It is subtracted from both
	// sides before forming the dissipation jump so the stabilization acts
	// on physical quantities only.
	BackgroundOffset(Aux [AuxStates]float64) (delta [MaxStates]float64)
}
