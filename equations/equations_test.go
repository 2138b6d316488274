package equations

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEulerPreFlux(t *testing.T) {
	var (
		eq  = NewEuler()
		GM1 = eq.Gamma - 1.
	)
	{ // No background offset: plain perfect-gas decomposition
		Q := [5]float64{2, 2, -1, 4, 10}
		pr := eq.PreFlux(0, Q, [3]float64{})
		assert.True(t, near(0.5, pr.Oorho))
		assert.True(t, near(1., pr.U))
		assert.True(t, near(-0.5, pr.V))
		assert.True(t, near(2., pr.W))
		ke := 0.5 * (2.*2. + 1. + 4.*4.) / 2.
		assert.True(t, near(GM1*(10.-ke), pr.P))
	}
	{ // Background offset removed from the momentum before everything else
		Q := [5]float64{1, 1.25, 0.5, 0, 3}
		Aux := [3]float64{0.25, 0.5, 0}
		pr := eq.PreFlux(0, Q, Aux)
		assert.True(t, near(1., pr.U))
		assert.True(t, near(0., pr.V))
		assert.True(t, near(0., pr.W))
		assert.True(t, near(GM1*(3.-0.5), pr.P))
	}
}

func TestEulerFlux(t *testing.T) {
	var (
		eq = NewEuler()
	)
	Q := [5]float64{1, 1, 0, 0, 3}
	pr := eq.PreFlux(0, Q, [3]float64{})
	F := eq.Flux(0, Q, [3]float64{}, pr)
	p := pr.P
	// X direction of the standard Euler flux with u=1, v=w=0
	assert.True(t, nearVec([]float64{1, 1 + p, 0, 0, 3 + p}, F[0][:], 1.e-12))
	// Transverse directions carry only the pressure term
	assert.True(t, nearVec([]float64{0, 0, p, 0, 0}, F[1][:], 1.e-12))
	assert.True(t, nearVec([]float64{0, 0, 0, p, 0}, F[2][:], 1.e-12))
}

func TestEulerFluxTransportsRawMomentum(t *testing.T) {
	var (
		eq = NewEuler()
	)
	// The advecting velocity is offset-adjusted but the transported
	// conserved quantities are the raw ones.
	Q := [5]float64{1, 2, 0.5, 0, 5}
	Aux := [3]float64{1, 0.5, 0}
	pr := eq.PreFlux(0, Q, Aux)
	assert.True(t, near(1., pr.U))
	assert.True(t, near(0., pr.V))
	F := eq.Flux(0, Q, Aux, pr)
	assert.True(t, near(1., F[0][0]))        // rho*u
	assert.True(t, near(2.+pr.P, F[0][1]))   // u*rhoU + p
	assert.True(t, near(0.5, F[0][2]))       // u*rhoV
	assert.True(t, near(5.+pr.P, F[0][4]))   // u*(E+p)
	assert.True(t, nearVec([]float64{0, 0, pr.P, 0, 0}, F[1][:], 1.e-12))
}

func TestWaveSpeedNonNegative(t *testing.T) {
	var (
		euler = NewEuler()
		adv   = NewAdvection()
	)
	normals := [][3]float64{
		{1, 0, 0}, {0, -1, 0}, {0, 0, 1},
		{1. / math.Sqrt2, -1. / math.Sqrt2, 0},
	}
	states := [][5]float64{
		{1, 1, 0, 0, 3},
		{0.5, -2, 1, 0.25, 12},
		{2, 0, 0, 0, 1},
	}
	auxs := [][3]float64{{0, 0, 0}, {0.1, -0.2, 0.05}, {-1, 2, 3}}
	for _, n := range normals {
		for _, Q := range states {
			for _, Aux := range auxs {
				pr := euler.PreFlux(0, Q, Aux)
				if pr.P >= 0 { // physically valid states only
					assert.True(t, euler.MaxWaveSpeed(n, 0, Q, Aux, pr) >= 0)
				}
				prA := adv.PreFlux(0, Q, Aux)
				assert.True(t, adv.MaxWaveSpeed(n, 0, Q, Aux, prA) >= 0)
			}
		}
	}
}

func TestAdvectionKernels(t *testing.T) {
	var (
		eq  = NewAdvection()
		Q   = [5]float64{2.5}
		Aux = [3]float64{1, -2, 0.5}
	)
	pr := eq.PreFlux(0, Q, Aux)
	assert.True(t, near(0., pr.P))
	assert.True(t, near(1., pr.U))
	assert.True(t, near(-2., pr.V))
	assert.True(t, near(0.5, pr.W))
	F := eq.Flux(0, Q, Aux, pr)
	assert.True(t, near(2.5, F[0][0]))
	assert.True(t, near(-5., F[1][0]))
	assert.True(t, near(1.25, F[2][0]))
	s := eq.MaxWaveSpeed([3]float64{0, 1, 0}, 0, Q, Aux, pr)
	assert.True(t, near(2., s))
}

func TestRusanovConsistency(t *testing.T) {
	// numerical_flux(n, S, A, S, A) == physical_flux(S, A).n
	var (
		euler = NewEuler()
		adv   = NewAdvection()
	)
	normals := [][3]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, -1},
		{0.6, 0.8, 0}, {0.48, -0.6, 0.64},
	}
	Q := [5]float64{1.2, 0.3, -0.4, 0.1, 2.8}
	Aux := [3]float64{0.05, -0.1, 0.2}
	for _, eq := range []Equation{euler, adv} {
		for _, n := range normals {
			nf := RusanovFlux(eq, n, 0, Q, Aux, Q, Aux)
			pf := NormalFlux(eq, n, 0, Q, Aux)
			assert.True(t, nearVec(pf[:], nf[:], 1.e-14))
		}
	}
}

func TestRusanovAntisymmetry(t *testing.T) {
	// numerical_flux(n, SM, AM, SP, AP) == -numerical_flux(-n, SP, AP, SM, AM)
	var (
		euler = NewEuler()
		adv   = NewAdvection()
		QM    = [5]float64{1, 0.5, -0.25, 0.1, 3}
		QP    = [5]float64{1.1, 0.4, -0.3, 0.15, 3.2}
		AuxM  = [3]float64{0.1, 0.2, -0.05}
		AuxP  = [3]float64{-0.1, 0.15, 0.05}
	)
	normals := [][3]float64{
		{1, 0, 0}, {0, 0, 1}, {0.6, 0.8, 0}, {-0.48, 0.6, -0.64},
	}
	for _, eq := range []Equation{euler, adv} {
		for _, n := range normals {
			fwd := RusanovFlux(eq, n, 0, QM, AuxM, QP, AuxP)
			rev := RusanovFlux(eq, [3]float64{-n[0], -n[1], -n[2]}, 0, QP, AuxP, QM, AuxM)
			for i := 0; i < eq.NumStates(); i++ {
				assert.True(t, near(fwd[i], -rev[i], 1.e-14))
			}
		}
	}
}

func TestRusanovJumpIgnoresBackground(t *testing.T) {
	// Two states that differ only by their background offsets carry no
	// dissipation penalty: the jump is formed on offset-adjusted values.
	var (
		eq   = NewEuler()
		n    = [3]float64{1, 0, 0}
		AuxM = [3]float64{0.2, -0.1, 0}
		AuxP = [3]float64{-0.3, 0.4, 0.1}
		QM   = [5]float64{1, 1 + AuxM[0], AuxM[1], AuxM[2], 3}
		QP   = [5]float64{1, 1 + AuxP[0], AuxP[1], AuxP[2], 3}
	)
	nf := RusanovFlux(eq, n, 0, QM, AuxM, QP, AuxP)
	// Both sides decompose to the same physical state, so the jump term
	// vanishes and the interface flux is the plain flux average.
	pfM := NormalFlux(eq, n, 0, QM, AuxM)
	pfP := NormalFlux(eq, n, 0, QP, AuxP)
	for i := 0; i < eq.NumStates(); i++ {
		assert.True(t, near(0.5*(pfM[i]+pfP[i]), nf[i], 1.e-14))
	}
}

func TestZeroBoundaryFlux(t *testing.T) {
	nf := ZeroBoundaryFlux([3]float64{0, 1, 0}, 0.5, [5]float64{1, 2, 3, 4, 5}, [3]float64{1, 1, 1})
	assert.True(t, nearVec([]float64{0, 0, 0, 0, 0}, nf[:], 0))
}

func TestNewFluxType(t *testing.T) {
	assert.Equal(t, FLUX_Rusanov, NewFluxType("Rusanov"))
	assert.Equal(t, FLUX_Rusanov, NewFluxType("lax"))
	assert.Panics(t, func() { NewFluxType("roe") })
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			fmt.Printf("Diff = %v, Left[%d] = %v, Right[%d] = %v\n", math.Abs(val-b[i]), i, val, i, b[i])
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
