package SphereAdvection

import (
	"math"
	"math/rand"

	"github.com/jkozdon/canary/geometry"
)

// SphereCase transports a scalar around a spherical shell with a prescribed
// solid-body rotation field. The initial and exact condition is a Gaussian
// bump in scaled longitude/latitude coordinates; under solid rotation the
// bump simply circles the sphere, so the exact field at time t is the
// initial bump shifted in longitude by Omega*t.
type SphereCase struct {
	Omega              float64 // rotation rate about the z axis
	RInner, ROuter     float64
	Lon0, Lat0         float64 // bump center
	LonScale, LatScale float64 // bump widths in the scaled coordinates
	Amplitude          float64
	Deterministic      bool
	rng                *rand.Rand
}

func NewSphereCase() (sc *SphereCase) {
	sc = &SphereCase{
		Omega:         2 * math.Pi,
		RInner:        1,
		ROuter:        1.1,
		Lon0:          math.Pi / 2,
		Lat0:          0,
		LonScale:      0.25,
		LatScale:      0.25,
		Amplitude:     1,
		Deterministic: true,
	}
	return
}

func (sc *SphereCase) Randomize(seed int64) {
	sc.Deterministic = false
	sc.rng = rand.New(rand.NewSource(seed))
}

// Velocity is the auxiliary transport field: solid-body rotation about z,
// tangent to every sphere, with magnitude Omega*r*cos(lat).
func (sc *SphereCase) Velocity(x [3]float64) (aux [3]float64) {
	aux[0] = -sc.Omega * x[1]
	aux[1] = sc.Omega * x[0]
	return
}

func (sc *SphereCase) bump(lon, lat float64) (q float64) {
	dlon := geometry.WrapAngle(lon-sc.Lon0) / sc.LonScale
	dlat := (lat - sc.Lat0) / sc.LatScale
	q = sc.Amplitude * math.Exp(-(dlon*dlon + dlat*dlat))
	return
}

// Exact evaluates the transported scalar at time t; only the first state
// component is active.
func (sc *SphereCase) Exact(t float64, x [3]float64) (Q [5]float64) {
	_, lat, lon := geometry.CartToSpherical(x[0], x[1], x[2])
	Q[0] = sc.bump(lon-sc.Omega*t, lat)
	return
}

func (sc *SphereCase) InitialCondition(x [3]float64) (Q [5]float64) {
	if !sc.Deterministic {
		Q[0] = sc.rng.Float64()
		return
	}
	Q = sc.Exact(0, x)
	return
}
