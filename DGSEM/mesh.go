package DGSEM

import (
	"fmt"
	"math"
)

// Mesh is a curvilinear tensor-product element mesh in two or three
// dimensions. Two dimensional meshes are embedded in 3D with a unit third
// metric direction, so the flux and metric machinery is shared.
//
// Node storage is element-major: node i of element k lives at k*Np+i, with
// the local index i = ir + is*(N+1) + it*(N+1)^2 over the reference
// directions.
type Mesh struct {
	Dim     int
	N       int // polynomial order
	K       int // number of elements
	Np      int // nodes per element, (N+1)^Dim
	Ops     *LineOperators
	X       [][3]float64     // physical node coordinates, K*Np
	Jac     []float64        // Jacobian determinant at each node
	Metric  [][3][3]float64  // Metric[m][d] = J * d(r_m)/d(x_d) at each node
	WNode   []float64        // tensor-product quadrature weight per local node
	Faces   []Face
	Hmin    float64
	strides [3]int
}

// Face couples one element side to its neighbor. Interior faces store the
// matched neighbor and a node permutation aligning the two sides point by
// point; boundary faces have ElemP == -1 and a nil NodesP. Each side keeps
// its own reference direction and side so surface terms can be formed from
// that element's own metric terms.
type Face struct {
	ElemM, ElemP   int
	DirM, SideM    int
	DirP, SideP    int
	NodesM, NodesP []int        // local node indices, index-aligned
	Normal         [][3]float64 // unit outward normal from ElemM per point
	SJ             []float64    // surface Jacobian per point, ElemM metrics
}

// NewCartesianMesh builds a uniform mesh of Ne^dim elements of order N on
// the cube [xmin,xmax]^dim, optionally periodic in every direction.
func NewCartesianMesh(dim, Ne, N int, xmin, xmax float64, periodic bool) (msh *Mesh) {
	if dim != 2 && dim != 3 {
		panic(fmt.Errorf("unsupported dimension %d", dim))
	}
	var (
		K = 1
		h = (xmax - xmin) / float64(Ne)
	)
	for d := 0; d < dim; d++ {
		K *= Ne
	}
	msh = newMesh(dim, N, K)
	var (
		Np1 = N + 1
		ei  = make([]int, 3) // element index per direction
	)
	for k := 0; k < K; k++ {
		rem := k
		for d := 0; d < dim; d++ {
			ei[d] = rem % Ne
			rem /= Ne
		}
		for i := 0; i < msh.Np; i++ {
			var x [3]float64
			for d := 0; d < dim; d++ {
				id := (i / msh.strides[d]) % Np1
				x[d] = xmin + h*(float64(ei[d])+0.5*(msh.Ops.R[id]+1.))
			}
			msh.X[k*msh.Np+i] = x
		}
	}
	msh.computeMetrics()
	per := [3]bool{}
	lo, hi := [3]float64{}, [3]float64{}
	for d := 0; d < dim; d++ {
		per[d] = periodic
		lo[d], hi[d] = xmin, xmax
	}
	msh.buildFaces(per, lo, hi)
	return
}

func newMesh(dim, N, K int) (msh *Mesh) {
	var (
		Np1 = N + 1
		Np  = Np1
	)
	for d := 1; d < dim; d++ {
		Np *= Np1
	}
	msh = &Mesh{
		Dim:    dim,
		N:      N,
		K:      K,
		Np:     Np,
		Ops:    NewLineOperators(N),
		X:      make([][3]float64, K*Np),
		Jac:    make([]float64, K*Np),
		Metric: make([][3][3]float64, K*Np),
	}
	msh.strides = [3]int{1, Np1, Np1 * Np1}
	msh.WNode = make([]float64, Np)
	for i := 0; i < Np; i++ {
		w := 1.
		for d := 0; d < dim; d++ {
			w *= msh.Ops.W[(i/msh.strides[d])%Np1]
		}
		msh.WNode[i] = w
	}
	return
}

// diffRef differentiates nodal values along reference direction m within
// element k, writing the result into out (length Np). vals indexes local
// nodes of element k.
func (msh *Mesh) diffRef(vals []float64, m int, out []float64) {
	var (
		Np1 = msh.N + 1
		str = msh.strides[m]
	)
	for i := 0; i < msh.Np; i++ {
		im := (i / str) % Np1
		base := i - im*str
		var sum float64
		for a := 0; a < Np1; a++ {
			sum += msh.Ops.D[im][a] * vals[base+a*str]
		}
		out[i] = sum
	}
}

// computeMetrics fills Jac and Metric from the nodal coordinates using the
// cross-product form: Ja^1 = x_s x x_t, Ja^2 = x_t x x_r, Ja^3 = x_r x x_s
// and J = x_r . (x_s x x_t). In 2D the third reference direction is the
// constant unit vector (0,0,1), which reduces these to the familiar 2D
// metric identities.
func (msh *Mesh) computeMetrics() {
	var (
		vals = make([]float64, msh.Np)
		out  = make([]float64, msh.Np)
		dx   = make([][3][3]float64, msh.Np) // dx[i][m][c] = d(x_c)/d(r_m)
	)
	msh.Hmin = math.MaxFloat64
	for k := 0; k < msh.K; k++ {
		off := k * msh.Np
		for i := range dx {
			dx[i] = [3][3]float64{}
			dx[i][2][2] = 1. // 2D embedding; overwritten in 3D
		}
		for m := 0; m < msh.Dim; m++ {
			for c := 0; c < 3; c++ {
				for i := 0; i < msh.Np; i++ {
					vals[i] = msh.X[off+i][c]
				}
				msh.diffRef(vals, m, out)
				for i := 0; i < msh.Np; i++ {
					dx[i][m][c] = out[i]
				}
			}
		}
		for i := 0; i < msh.Np; i++ {
			var (
				xr = dx[i][0]
				xs = dx[i][1]
				xt = dx[i][2]
			)
			msh.Metric[off+i][0] = cross(xs, xt)
			msh.Metric[off+i][1] = cross(xt, xr)
			msh.Metric[off+i][2] = cross(xr, xs)
			J := dot(xr, msh.Metric[off+i][0])
			if J <= 0 {
				panic(fmt.Errorf("non-positive Jacobian %g in element %d", J, k))
			}
			msh.Jac[off+i] = J
		}
		msh.updateHmin(k)
	}
}

// updateHmin tracks the smallest distance between adjacent nodes along any
// reference line of element k, the length scale used for the time step.
func (msh *Mesh) updateHmin(k int) {
	var (
		Np1 = msh.N + 1
		off = k * msh.Np
	)
	for m := 0; m < msh.Dim; m++ {
		str := msh.strides[m]
		for i := 0; i < msh.Np; i++ {
			im := (i / str) % Np1
			if im == Np1-1 {
				continue
			}
			d := dist(msh.X[off+i], msh.X[off+i+str])
			if d < msh.Hmin {
				msh.Hmin = d
			}
		}
	}
}

// elemFace enumerates the local node indices of the face of an element
// normal to reference direction m, on side 0 (r_m = -1) or side 1 (r_m = +1).
func (msh *Mesh) elemFace(m, side int) (ids []int) {
	var (
		Np1  = msh.N + 1
		str  = msh.strides[m]
		want = side * msh.N
	)
	for i := 0; i < msh.Np; i++ {
		if (i/str)%Np1 == want {
			ids = append(ids, i)
		}
	}
	return
}

type protoFace struct {
	elem, dir, side int
	nodes           []int
	centroid        [3]float64
	mate            int
}

// buildFaces pairs element sides geometrically: two sides are candidates
// for the same face when their folded centroids coincide, and the pairing
// is confirmed by aligning every point of one side to a point of the other
// by nearest-coordinate matching. Periodic directions fold coordinates into
// [lo, lo+L) before comparison, which maps the two periodic images of a
// boundary side onto each other. The centroid is formed from the raw
// coordinates and folded afterwards: folding the nodes first would skew a
// side that merely touches the periodic boundary, since only its boundary
// nodes wrap. Sides that never find a mate become boundary faces.
func (msh *Mesh) buildFaces(periodic [3]bool, lo, hi [3]float64) {
	fold := func(x [3]float64) (f [3]float64) {
		f = x
		for d := 0; d < msh.Dim; d++ {
			if !periodic[d] {
				continue
			}
			L := hi[d] - lo[d]
			f[d] = lo[d] + math.Mod(f[d]-lo[d], L)
			if f[d] < lo[d] {
				f[d] += L
			}
			// values within tolerance of the upper end fold to the lower
			if hi[d]-f[d] < 1.e-10*L {
				f[d] = lo[d]
			}
		}
		return
	}
	var protos []protoFace
	for k := 0; k < msh.K; k++ {
		for m := 0; m < msh.Dim; m++ {
			for side := 0; side < 2; side++ {
				ids := msh.elemFace(m, side)
				var c [3]float64
				for _, i := range ids {
					x := msh.X[k*msh.Np+i]
					for d := 0; d < 3; d++ {
						c[d] += x[d]
					}
				}
				for d := 0; d < 3; d++ {
					c[d] /= float64(len(ids))
				}
				// a centroid sits on the periodic boundary only when the
				// whole side does, so its fold is unambiguous
				c = fold(c)
				protos = append(protos, protoFace{
					elem: k, dir: m, side: side, nodes: ids, centroid: c, mate: -1,
				})
			}
		}
	}
	tol := 1.e-8 * msh.Hmin
	aligned := make([][]int, len(protos))
	for a := range protos {
		if protos[a].mate >= 0 {
			continue
		}
		for b := a + 1; b < len(protos); b++ {
			if protos[b].mate >= 0 {
				continue
			}
			if dist(protos[a].centroid, protos[b].centroid) >= tol {
				continue
			}
			nodesP, ok := msh.alignFaceNodes(&protos[a], &protos[b], fold, tol)
			if !ok {
				continue // coincident centroids but different sides
			}
			protos[a].mate = b
			protos[b].mate = a
			aligned[a] = nodesP
			break
		}
	}
	for a := range protos {
		pa := &protos[a]
		if pa.mate >= 0 && pa.mate < a {
			continue // already emitted from the other side
		}
		face := Face{
			ElemM:  pa.elem,
			ElemP:  -1,
			DirM:   pa.dir,
			SideM:  pa.side,
			NodesM: pa.nodes,
		}
		if pa.mate >= 0 {
			pb := &protos[pa.mate]
			face.ElemP = pb.elem
			face.DirP = pb.dir
			face.SideP = pb.side
			face.NodesP = aligned[a]
		}
		msh.faceGeometry(&face, pa.dir, pa.side)
		msh.Faces = append(msh.Faces, face)
	}
}

// alignFaceNodes permutes the mate's node list so entry fp sits at the same
// physical point as NodesM[fp]. ok reports whether every point found a
// partner within tol; two sides that fail to align are not the same face.
func (msh *Mesh) alignFaceNodes(pa, pb *protoFace, fold func([3]float64) [3]float64, tol float64) (nodesP []int, ok bool) {
	nodesP = make([]int, len(pa.nodes))
	for fp, iM := range pa.nodes {
		var (
			xm   = fold(msh.X[pa.elem*msh.Np+iM])
			best = -1
			bd   = math.MaxFloat64
		)
		for _, iP := range pb.nodes {
			d := dist(xm, fold(msh.X[pb.elem*msh.Np+iP]))
			if d < bd {
				bd, best = d, iP
			}
		}
		if bd > tol {
			return nil, false
		}
		nodesP[fp] = best
	}
	return nodesP, true
}

// faceGeometry computes the outward unit normal and surface Jacobian at
// each face point from the volume metric terms: sJ*n_d = sigma*Ja^m_d with
// sigma = -1 on the low side and +1 on the high side.
func (msh *Mesh) faceGeometry(face *Face, m, side int) {
	var (
		sigma = -1.
		nfp   = len(face.NodesM)
	)
	if side == 1 {
		sigma = 1.
	}
	face.Normal = make([][3]float64, nfp)
	face.SJ = make([]float64, nfp)
	for fp, i := range face.NodesM {
		idx := face.ElemM*msh.Np + i
		var un [3]float64
		for d := 0; d < 3; d++ {
			un[d] = sigma * msh.Metric[idx][m][d]
		}
		sJ := math.Sqrt(dot(un, un))
		face.SJ[fp] = sJ
		for d := 0; d < 3; d++ {
			face.Normal[fp][d] = un[d] / sJ
		}
	}
}

func cross(a, b [3]float64) (c [3]float64) {
	c[0] = a[1]*b[2] - a[2]*b[1]
	c[1] = a[2]*b[0] - a[0]*b[2]
	c[2] = a[0]*b[1] - a[1]*b[0]
	return
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func dist(a, b [3]float64) float64 {
	var sum float64
	for d := 0; d < 3; d++ {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
