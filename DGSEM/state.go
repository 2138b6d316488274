package DGSEM

import (
	"fmt"
	"math"
	"strings"
)

// Precision selects the storage precision of the evolved state. All
// arithmetic runs in float64; Float32 rounds the stored state to float32
// after every update, modeling a reduced-precision state vector.
type Precision uint8

const (
	Float64 Precision = iota
	Float32
)

var (
	precisionNames = map[string]Precision{
		"float64": Float64,
		"float32": Float32,
	}
)

func NewPrecision(label string) Precision {
	p, ok := precisionNames[strings.ToLower(label)]
	if !ok {
		panic(fmt.Errorf("unable to use precision named %s", label))
	}
	return p
}

func (p Precision) String() string {
	switch p {
	case Float32:
		return "float32"
	default:
		return "float64"
	}
}

// State carries the evolved conserved variables and the static auxiliary
// (background offset) field on a mesh. Q is node-major: the Ns components
// of node i of element k live at (k*Np+i)*Ns.
type State struct {
	Msh  *Mesh
	Ns   int
	Prec Precision
	Q    []float64
	Aux  [][3]float64
}

// NewState samples the initial condition and auxiliary field at the mesh
// nodes. A nil aux leaves the auxiliary field zero.
func NewState(msh *Mesh, ns int, prec Precision,
	ic func(x [3]float64) [5]float64, aux func(x [3]float64) [3]float64) (s *State) {
	if ns < 1 || ns > MaxStateDim {
		panic(fmt.Errorf("state dimension %d out of range", ns))
	}
	s = &State{
		Msh:  msh,
		Ns:   ns,
		Prec: prec,
		Q:    make([]float64, msh.K*msh.Np*ns),
		Aux:  make([][3]float64, msh.K*msh.Np),
	}
	for idx, x := range msh.X {
		Q := ic(x)
		for n := 0; n < ns; n++ {
			s.Q[idx*ns+n] = Q[n]
		}
		if aux != nil {
			s.Aux[idx] = aux(x)
		}
	}
	s.RoundStorage()
	return
}

// MaxStateDim is the widest supported state vector (3D compressible flow).
const MaxStateDim = 5

// GetQ reads the padded state vector at global node idx.
func (s *State) GetQ(idx int) (Q [5]float64) {
	base := idx * s.Ns
	for n := 0; n < s.Ns; n++ {
		Q[n] = s.Q[base+n]
	}
	return
}

// RoundStorage applies the storage precision policy in place.
func (s *State) RoundStorage() {
	if s.Prec != Float32 {
		return
	}
	for i, q := range s.Q {
		s.Q[i] = float64(float32(q))
	}
}

// Mass is the quadrature integral of the first conserved component.
func (s *State) Mass() (m float64) {
	var (
		msh = s.Msh
	)
	for k := 0; k < msh.K; k++ {
		for i := 0; i < msh.Np; i++ {
			idx := k*msh.Np + i
			m += msh.WNode[i] * msh.Jac[idx] * s.Q[idx*s.Ns]
		}
	}
	return
}

// L2Norm is the quadrature-weighted L2 norm of the full state.
func (s *State) L2Norm() (nrm float64) {
	var (
		msh = s.Msh
	)
	for k := 0; k < msh.K; k++ {
		for i := 0; i < msh.Np; i++ {
			idx := k*msh.Np + i
			wj := msh.WNode[i] * msh.Jac[idx]
			for n := 0; n < s.Ns; n++ {
				q := s.Q[idx*s.Ns+n]
				nrm += wj * q * q
			}
		}
	}
	nrm = math.Sqrt(nrm)
	return
}

// ErrorVsExact measures the quadrature-weighted L2 distance to a reference
// field at time t, both absolute and relative to the reference norm.
func (s *State) ErrorVsExact(t float64, exact func(t float64, x [3]float64) [5]float64) (abs, rel float64) {
	var (
		msh      = s.Msh
		num, den float64
	)
	for k := 0; k < msh.K; k++ {
		for i := 0; i < msh.Np; i++ {
			idx := k*msh.Np + i
			wj := msh.WNode[i] * msh.Jac[idx]
			Qex := exact(t, msh.X[idx])
			for n := 0; n < s.Ns; n++ {
				diff := s.Q[idx*s.Ns+n] - Qex[n]
				num += wj * diff * diff
				den += wj * Qex[n] * Qex[n]
			}
		}
	}
	abs = math.Sqrt(num)
	rel = abs / math.Sqrt(den)
	return
}
