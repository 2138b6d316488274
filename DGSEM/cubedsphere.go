package DGSEM

import (
	"fmt"
	"math"
)

// panelDir maps equiangular panel coordinates X = tan(a), Y = tan(b) to an
// unnormalized direction vector for each of the six panels. The orderings
// are chosen so every panel parameterization is positively oriented
// (outward radial Jacobian) and adjacent panel edges carry coincident node
// sets, which lets geometric face matching stitch the shell together.
func panelDir(panel int, X, Y float64) (d [3]float64) {
	switch panel {
	case 0: // +x
		d = [3]float64{1, X, Y}
	case 1: // +y
		d = [3]float64{-X, 1, Y}
	case 2: // -x
		d = [3]float64{-1, -X, Y}
	case 3: // -y
		d = [3]float64{X, -1, Y}
	case 4: // +z
		d = [3]float64{-Y, X, 1}
	case 5: // -z
		d = [3]float64{Y, X, -1}
	default:
		panic(fmt.Errorf("invalid cubed sphere panel %d", panel))
	}
	return
}

// NewCubedSphereMesh builds a spherical shell between radii rInner and
// rOuter from six gnomonic panels with equiangular spacing, NeH x NeH
// elements per panel face and NeV elements radially. The shell's inner and
// outer surfaces are left as boundary faces.
func NewCubedSphereMesh(NeH, NeV, N int, rInner, rOuter float64) (msh *Mesh) {
	if rOuter <= rInner || rInner <= 0 {
		panic(fmt.Errorf("invalid shell radii [%g, %g]", rInner, rOuter))
	}
	var (
		K   = 6 * NeH * NeH * NeV
		da  = (math.Pi / 2.) / float64(NeH)
		dr  = (rOuter - rInner) / float64(NeV)
		Np1 = N + 1
	)
	msh = newMesh(3, N, K)
	k := 0
	for panel := 0; panel < 6; panel++ {
		for ir := 0; ir < NeV; ir++ {
			for ib := 0; ib < NeH; ib++ {
				for ia := 0; ia < NeH; ia++ {
					for i := 0; i < msh.Np; i++ {
						var (
							ii = i % Np1
							jj = (i / Np1) % Np1
							kk = i / (Np1 * Np1)
							a  = -math.Pi/4. + da*(float64(ia)+0.5*(msh.Ops.R[ii]+1.))
							b  = -math.Pi/4. + da*(float64(ib)+0.5*(msh.Ops.R[jj]+1.))
							r  = rInner + dr*(float64(ir)+0.5*(msh.Ops.R[kk]+1.))
						)
						d := panelDir(panel, math.Tan(a), math.Tan(b))
						scale := r / math.Sqrt(dot(d, d))
						msh.X[k*msh.Np+i] = [3]float64{
							scale * d[0], scale * d[1], scale * d[2],
						}
					}
					k++
				}
			}
		}
	}
	msh.computeMetrics()
	msh.buildFaces([3]bool{}, [3]float64{}, [3]float64{})
	return
}
