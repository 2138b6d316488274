package equations

import (
	"fmt"
	"math"
	"strings"
)

type FluxType uint

const (
	FLUX_Rusanov FluxType = iota
)

var (
	FluxNames = map[string]FluxType{
		"rusanov": FLUX_Rusanov,
		"lax":     FLUX_Rusanov, // local Lax-Friedrichs, same scheme
	}
	FluxPrintNames = []string{"Rusanov"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
		panic(err)
	}
	return
}

// RusanovFlux computes the interface flux between the minus and plus states:
// the average of the one-sided normal fluxes minus a dissipation term scaled
// by the maximum local wavespeed. The background offsets are subtracted
// symmetrically from both sides before forming the jump. The result is
// consistent (degenerates to F.n when both sides coincide) and antisymmetric
// under side-swap plus normal negation.
func RusanovFlux(eq Equation, normal [3]float64, t float64,
	QM [MaxStates]float64, AuxM [AuxStates]float64,
	QP [MaxStates]float64, AuxP [AuxStates]float64) (nflux [MaxStates]float64) {
	var (
		prM = eq.PreFlux(t, QM, AuxM)
		prP = eq.PreFlux(t, QP, AuxP)
		FM  = eq.Flux(t, QM, AuxM, prM)
		FP  = eq.Flux(t, QP, AuxP, prP)
		dM  = eq.BackgroundOffset(AuxM)
		dP  = eq.BackgroundOffset(AuxP)
		ns  = eq.NumStates()
	)
	C := math.Max(
		eq.MaxWaveSpeed(normal, t, QM, AuxM, prM),
		eq.MaxWaveSpeed(normal, t, QP, AuxP, prP))
	for n := 0; n < ns; n++ {
		var fnorm float64
		for d := 0; d < 3; d++ {
			fnorm += 0.5 * normal[d] * (FM[d][n] + FP[d][n])
		}
		jump := (QM[n] - dM[n]) - (QP[n] - dP[n])
		nflux[n] = fnorm + 0.5*C*jump
	}
	return
}

// NormalFlux projects the one-sided flux tensor onto a normal.
func NormalFlux(eq Equation, normal [3]float64, t float64,
	Q [MaxStates]float64, Aux [AuxStates]float64) (nflux [MaxStates]float64) {
	var (
		pr = eq.PreFlux(t, Q, Aux)
		F  = eq.Flux(t, Q, Aux, pr)
		ns = eq.NumStates()
	)
	for n := 0; n < ns; n++ {
		for d := 0; d < 3; d++ {
			nflux[n] += normal[d] * F[d][n]
		}
	}
	return
}

// ZeroBoundaryFlux is the hard-zero boundary policy used where no physical
// outside state exists. This is a documented simplification, not a general
// boundary condition model.
func ZeroBoundaryFlux(normal [3]float64, t float64,
	Q [MaxStates]float64, Aux [AuxStates]float64) (nflux [MaxStates]float64) {
	return
}
