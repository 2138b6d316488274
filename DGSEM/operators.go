package DGSEM

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LineOperators holds the one dimensional collocation operators for a
// Gauss-Lobatto-Legendre nodal basis of order N: nodes, quadrature weights
// and the derivative matrix. Tensor products of these drive the multi
// dimensional elements.
type LineOperators struct {
	N int
	R []float64   // N+1 GLL nodes on [-1,1]
	W []float64   // GLL quadrature weights
	D [][]float64 // (N+1)x(N+1) derivative matrix
}

func NewLineOperators(N int) (ops *LineOperators) {
	if N < 1 {
		panic(fmt.Errorf("polynomial order must be at least 1, have %d", N))
	}
	R := JacobiGL(0, 0, N)
	ops = &LineOperators{
		N: N,
		R: R,
		W: LobattoWeights(R, N),
		D: DerivativeMatrix(R, N),
	}
	return
}

// JacobiGL computes the N+1 Gauss-Lobatto points for Jacobi polynomials:
// the endpoints plus the zeros of P'_N^{alpha,beta}.
func JacobiGL(alpha, beta float64, N int) (x []float64) {
	x = make([]float64, N+1)
	x[0], x[N] = -1, 1
	if N == 1 {
		return
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	copy(x[1:N], xint)
	return
}

// JacobiGQ computes the N+1 Gauss quadrature points and weights for Jacobi
// polynomials via the eigendecomposition of the symmetric tridiagonal
// recurrence matrix.
func JacobiGQ(alpha, beta float64, N int) (x, w []float64) {
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{2.}
		return
	}
	var (
		h1 = make([]float64, N+1)
	)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}
	JJ := mat.NewSymDense(N+1, nil)
	fac := -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		JJ.SetSym(i, i, fac/(h1[i]*(h1[i]+2.)))
	}
	eps := 1.e-16
	if alpha+beta < 10*eps {
		JJ.SetSym(0, 0, 0.)
	}
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := 2. / (h1[i] + 2.) *
			math.Sqrt(ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/((h1[i]+1.)*(h1[i]+3.)))
		JJ.SetSym(i, i+1, val)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)
	VVr := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VVr)
	w = make([]float64, N+1)
	g0 := gamma0(alpha, beta)
	for i := 0; i < N+1; i++ {
		v := VVr.At(0, i)
		w[i] = v * v * g0
	}
	return
}

// LobattoWeights computes the GLL quadrature weights
// w_i = 2 / (N*(N+1)*P_N(x_i)^2).
func LobattoWeights(x []float64, N int) (w []float64) {
	w = make([]float64, N+1)
	fac := 2. / (float64(N) * float64(N+1))
	for i, xi := range x {
		p := legendreP(xi, N)
		w[i] = fac / (p * p)
	}
	return
}

// legendreP evaluates the unnormalized Legendre polynomial by recurrence.
func legendreP(x float64, N int) (p float64) {
	var (
		pm1 = 1.
		p0  = x
	)
	if N == 0 {
		return pm1
	}
	p = p0
	for n := 1; n < N; n++ {
		fn := float64(n)
		p = ((2.*fn+1.)*x*p0 - fn*pm1) / (fn + 1.)
		pm1, p0 = p0, p
	}
	return
}

// DerivativeMatrix builds the nodal derivative matrix D = Vr * V^-1 from
// the Vandermonde matrices of the normalized Legendre basis.
func DerivativeMatrix(r []float64, N int) (D [][]float64) {
	var (
		Np = len(r)
		V  = mat.NewDense(Np, N+1, nil)
		Vr = mat.NewDense(Np, N+1, nil)
	)
	for j := 0; j < N+1; j++ {
		col := jacobiP(r, 0, 0, j)
		colr := gradJacobiP(r, 0, 0, j)
		for i := 0; i < Np; i++ {
			V.Set(i, j, col[i])
			Vr.Set(i, j, colr[i])
		}
	}
	var Vinv mat.Dense
	if err := Vinv.Inverse(V); err != nil {
		panic(err)
	}
	var Dm mat.Dense
	Dm.Mul(Vr, &Vinv)
	D = make([][]float64, Np)
	for i := 0; i < Np; i++ {
		D[i] = make([]float64, Np)
		copy(D[i], Dm.RawRowView(i))
	}
	return
}

// jacobiP evaluates the normalized Jacobi polynomial of order N at the
// given points.
func jacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = len(r)
		rg = 1. / math.Sqrt(gamma0(alpha, beta))
	)
	p = make([]float64, Nc)
	if N == 0 {
		for i := range p {
			p[i] = rg
		}
		return
	}
	pm1 := make([]float64, Nc)
	pm0 := make([]float64, Nc)
	for i := range pm1 {
		pm1[i] = rg
	}
	ab := alpha + beta
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	for i := range pm0 {
		pm0[i] = rg1 * ((ab+2.0)*r[i]/2.0 + (alpha-beta)/2.0)
	}
	if N == 1 {
		copy(p, pm0)
		return
	}
	aold := 2.0 / (2.0 + ab) * math.Sqrt((alpha+1.)*(beta+1.)/(ab+3.0))
	next := make([]float64, Nc)
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		h1 := 2.0*ip1 + ab
		anew := 2.0 / (h1 + 2.0) *
			math.Sqrt((ip1+1.)*(ip1+ab+1.)*(ip1+alpha+1.)*(ip1+beta+1.)/((h1+1.0)*(h1+3.0)))
		bnew := -(alpha*alpha - beta*beta) / (h1 * (h1 + 2.0))
		for j := 0; j < Nc; j++ {
			next[j] = (-aold*pm1[j] + (r[j]-bnew)*pm0[j]) / anew
		}
		pm1, pm0, next = pm0, next, pm1
		aold = anew
	}
	copy(p, pm0)
	return
}

// gradJacobiP evaluates the derivative of the normalized Jacobi polynomial.
func gradJacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		p = make([]float64, len(r))
		return
	}
	p = jacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i, val := range p {
		p[i] = val * fac
	}
	return
}

func gamma0(alpha, beta float64) float64 {
	return math.Pow(2, alpha+beta+1) / (alpha + beta + 1) *
		math.Gamma(alpha+1) * math.Gamma(beta+1) / math.Gamma(alpha+beta+1)
}

func gamma1(alpha, beta float64) float64 {
	return (alpha + 1) * (beta + 1) / (alpha + beta + 3) * gamma0(alpha, beta)
}
