package DGSEM

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartesianMetrics2D(t *testing.T) {
	var (
		Ne         = 3
		N          = 3
		xmin, xmax = -1., 2.
		msh        = NewCartesianMesh(2, Ne, N, xmin, xmax, true)
		h          = (xmax - xmin) / float64(Ne)
	)
	assert.Equal(t, Ne*Ne, msh.K)
	assert.Equal(t, (N+1)*(N+1), msh.Np)
	// Affine elements: J = (h/2)^2 and Ja^m = (h/2) e_m everywhere
	for i := range msh.Jac {
		assert.InDelta(t, h*h/4., msh.Jac[i], 1.e-12)
		for m := 0; m < 2; m++ {
			for d := 0; d < 3; d++ {
				want := 0.
				if d == m {
					want = h / 2.
				}
				assert.InDelta(t, want, msh.Metric[i][m][d], 1.e-12)
			}
		}
	}
}

func TestCartesianMetrics3D(t *testing.T) {
	var (
		Ne  = 2
		N   = 2
		msh = NewCartesianMesh(3, Ne, N, 0, 1, true)
		h   = 0.5
	)
	assert.Equal(t, Ne*Ne*Ne, msh.K)
	for i := range msh.Jac {
		assert.InDelta(t, h*h*h/8., msh.Jac[i], 1.e-12)
	}
}

func TestCartesianVolume(t *testing.T) {
	for _, dim := range []int{2, 3} {
		msh := NewCartesianMesh(dim, 3, 4, -5, 5, true)
		var vol float64
		for k := 0; k < msh.K; k++ {
			for i := 0; i < msh.Np; i++ {
				vol += msh.WNode[i] * msh.Jac[k*msh.Np+i]
			}
		}
		assert.InDelta(t, math.Pow(10, float64(dim)), vol, 1.e-9)
	}
}

func TestCartesianFaceConnectivity(t *testing.T) {
	var (
		Ne  = 3
		msh = NewCartesianMesh(2, Ne, 2, 0, 1, true)
	)
	// fully periodic: every side pairs up
	assert.Equal(t, 2*Ne*Ne, len(msh.Faces))
	for _, f := range msh.Faces {
		assert.True(t, f.ElemP >= 0)
		assert.Equal(t, len(f.NodesM), len(f.NodesP))
	}
	// without periodicity the outer sides stay unmatched
	open := NewCartesianMesh(2, Ne, 2, 0, 1, false)
	var nb int
	for _, f := range open.Faces {
		if f.ElemP < 0 {
			nb++
		}
	}
	assert.Equal(t, 4*Ne, nb)
}

func TestCartesianFaceNodesAligned(t *testing.T) {
	var (
		msh = NewCartesianMesh(2, 3, 3, -5, 5, true)
		L   = 10.
	)
	for _, f := range msh.Faces {
		for fp := range f.NodesM {
			xm := msh.X[f.ElemM*msh.Np+f.NodesM[fp]]
			xp := msh.X[f.ElemP*msh.Np+f.NodesP[fp]]
			for d := 0; d < 2; d++ {
				diff := math.Abs(xm[d] - xp[d])
				// aligned directly or across the periodic wrap
				diff = math.Min(diff, math.Abs(diff-L))
				assert.True(t, diff < 1.e-10)
			}
		}
	}
}

func TestCartesianPeriodicPairingAllSizes(t *testing.T) {
	// sides touching the periodic boundary must pair with their wrapped
	// image even when L/(N+1) is a multiple of the element width, where a
	// skewed centroid would land exactly on an unrelated face's centroid
	cases := []struct {
		dim, Ne, N int
		xmin, xmax float64
	}{
		{2, 2, 3, -5, 5},
		{2, 4, 3, -5, 5},
		{2, 8, 3, -5, 5},
		{2, 5, 4, -5, 5},
		{2, 3, 2, 0, 1},
		{3, 4, 3, -5, 5},
	}
	for _, tc := range cases {
		msh := NewCartesianMesh(tc.dim, tc.Ne, tc.N, tc.xmin, tc.xmax, true)
		nfaces := tc.dim * tc.Ne * tc.Ne
		if tc.dim == 3 {
			nfaces *= tc.Ne
		}
		assert.Equal(t, nfaces, len(msh.Faces))
		L := tc.xmax - tc.xmin
		for _, f := range msh.Faces {
			assert.True(t, f.ElemP >= 0)
			for fp := range f.NodesM {
				xm := msh.X[f.ElemM*msh.Np+f.NodesM[fp]]
				xp := msh.X[f.ElemP*msh.Np+f.NodesP[fp]]
				for d := 0; d < tc.dim; d++ {
					diff := math.Abs(xm[d] - xp[d])
					diff = math.Min(diff, math.Abs(diff-L))
					assert.True(t, diff < 1.e-10)
				}
			}
		}
	}
}

func TestCartesianFaceNormals(t *testing.T) {
	var (
		Ne  = 2
		msh = NewCartesianMesh(2, Ne, 2, 0, 1, true)
		h   = 1. / float64(Ne)
	)
	for _, f := range msh.Faces {
		for fp := range f.NodesM {
			n := f.Normal[fp]
			mag := math.Sqrt(dot(n, n))
			assert.InDelta(t, 1., mag, 1.e-12)
			// axis-aligned normals and sJ = h/2 on affine quads
			nax := math.Abs(n[0]) + math.Abs(n[1]) + math.Abs(n[2])
			assert.InDelta(t, 1., nax, 1.e-12)
			assert.InDelta(t, h/2., f.SJ[fp], 1.e-12)
		}
	}
}

func TestCubedSphereShell(t *testing.T) {
	var (
		NeH, NeV       = 4, 1
		N              = 4
		rInner, rOuter = 1., 1.1
		msh            = NewCubedSphereMesh(NeH, NeV, N, rInner, rOuter)
	)
	assert.Equal(t, 6*NeH*NeH*NeV, msh.K)
	// every node sits inside the shell
	for _, x := range msh.X {
		r := math.Sqrt(dot(x, x))
		assert.True(t, r > rInner-1.e-10 && r < rOuter+1.e-10)
	}
	// discrete volume approaches the shell volume spectrally
	var vol float64
	for k := 0; k < msh.K; k++ {
		for i := 0; i < msh.Np; i++ {
			vol += msh.WNode[i] * msh.Jac[k*msh.Np+i]
		}
	}
	exact := 4. * math.Pi / 3. * (math.Pow(rOuter, 3) - math.Pow(rInner, 3))
	assert.InDelta(t, exact, vol, 5.e-3*exact)
}

func TestCubedSphereConnectivity(t *testing.T) {
	var (
		NeH, NeV = 3, 1
		msh      = NewCubedSphereMesh(NeH, NeV, 3, 1, 1.2)
	)
	// only the inner and outer shell surfaces stay open
	var nb int
	for _, f := range msh.Faces {
		if f.ElemP < 0 {
			nb++
			// boundary normals are radial
			for fp := range f.NodesM {
				x := msh.X[f.ElemM*msh.Np+f.NodesM[fp]]
				r := math.Sqrt(dot(x, x))
				radial := dot(f.Normal[fp], x) / r
				assert.True(t, math.Abs(math.Abs(radial)-1.) < 5.e-2)
			}
		}
	}
	assert.Equal(t, 12*NeH*NeH, nb)
}
