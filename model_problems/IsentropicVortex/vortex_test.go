package IsentropicVortex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVortexFreestreamFarField(t *testing.T) {
	var (
		iv = NewIVortex(5, 0, 0, 1.4)
	)
	iv.Period = 0 // unbounded domain for this check
	// Far from the core the perturbation decays as exp(1-r^2)
	u, v, rho, p := iv.GetState(0, 40, 40)
	assert.InDelta(t, iv.Ufs, u, 1.e-10)
	assert.InDelta(t, iv.Vfs, v, 1.e-10)
	assert.InDelta(t, 1., rho, 1.e-10)
	assert.InDelta(t, 1., p, 1.e-10)
}

func TestVortexCenterState(t *testing.T) {
	var (
		iv    = NewIVortex(5, 0, 0, 1.4)
		Gamma = 1.4
		GM1   = Gamma - 1.
	)
	// At the (translated) core the velocity perturbation vanishes and the
	// density takes its closed-form minimum.
	u, v, rho, p := iv.GetState(0, 0, 0)
	assert.InDelta(t, iv.Ufs, u, 1.e-12)
	assert.InDelta(t, iv.Vfs, v, 1.e-12)
	tv1 := 1. - GM1*25.*math.Exp(2.)/(16.*Gamma*math.Pi*math.Pi)
	assert.InDelta(t, math.Pow(tv1, 1./GM1), rho, 1.e-12)
	assert.InDelta(t, math.Pow(rho, Gamma), p, 1.e-12)
}

func TestVortexTranslation(t *testing.T) {
	var (
		iv = NewIVortex(5, 0, 0, 1.4)
	)
	// The profile translates with the freestream: the state at (x+u*t, y)
	// at time t matches the state at (x, y) at time 0.
	for _, pt := range [][2]float64{{0.3, -0.7}, {1.5, 2.0}, {-2, 0.25}} {
		u0, v0, rho0, p0 := iv.GetState(0, pt[0], pt[1])
		tm := 0.8
		u1, v1, rho1, p1 := iv.GetState(tm, pt[0]+iv.Ufs*tm, pt[1]+iv.Vfs*tm)
		assert.InDelta(t, u0, u1, 1.e-12)
		assert.InDelta(t, v0, v1, 1.e-12)
		assert.InDelta(t, rho0, rho1, 1.e-12)
		assert.InDelta(t, p0, p1, 1.e-12)
	}
}

func TestVortexPeriodicFold(t *testing.T) {
	var (
		iv = NewIVortex(5, 0, 0, 1.4)
	)
	// Shifting a point by the domain period leaves the profile unchanged
	for _, pt := range [][2]float64{{0.1, 0.2}, {-1, 3}, {2.5, -2.5}} {
		_, _, rho0, p0 := iv.GetState(0, pt[0], pt[1])
		_, _, rho1, p1 := iv.GetState(0, pt[0]+iv.Period, pt[1]-iv.Period)
		assert.InDelta(t, rho0, rho1, 1.e-12)
		assert.InDelta(t, p0, p1, 1.e-12)
	}
}

func TestVortexConservedState(t *testing.T) {
	var (
		iv    = NewIVortex(5, 0, 0, 1.4)
		GM1   = iv.Gamma - 1.
		x     = [3]float64{0.5, -0.25, 0}
	)
	u, v, rho, p := iv.GetState(0, x[0], x[1])
	aux := iv.BackgroundField(x)
	Q := iv.GetStateC(0, x)
	assert.InDelta(t, rho, Q[0], 1.e-12)
	// Raw momentum carries the background offset on top of rho*u
	assert.InDelta(t, rho*u+aux[0], Q[1], 1.e-12)
	assert.InDelta(t, rho*v+aux[1], Q[2], 1.e-12)
	assert.InDelta(t, 0., Q[3], 1.e-12)
	assert.InDelta(t, p/GM1+0.5*rho*(u*u+v*v), Q[4], 1.e-12)
}

func TestVortexBackgroundFieldPeriodic(t *testing.T) {
	var (
		iv = NewIVortex(5, 0, 0, 1.4)
	)
	a0 := iv.BackgroundField([3]float64{0.3, 0.7, 0})
	a1 := iv.BackgroundField([3]float64{0.3 + iv.Period, 0.7 - iv.Period, 0})
	assert.InDelta(t, a0[0], a1[0], 1.e-10)
	assert.InDelta(t, a0[1], a1[1], 1.e-10)
	for _, a := range [][3]float64{a0, a1} {
		assert.True(t, math.Abs(a[0]) <= iv.DeltaScale)
		assert.True(t, math.Abs(a[1]) <= iv.DeltaScale)
		assert.Equal(t, 0., a[2])
	}
}

func TestVortexRandomMode(t *testing.T) {
	var (
		iv = NewIVortex(5, 0, 0, 1.4)
		x  = [3]float64{1, 1, 0}
	)
	iv.Randomize(42)
	Q0 := iv.InitialCondition(x)
	Q1 := iv.InitialCondition(x)
	assert.NotEqual(t, Q0, Q1)
	assert.True(t, Q0[0] > 0)
	assert.True(t, Q1[0] > 0)
}
