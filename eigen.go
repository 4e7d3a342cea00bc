package qusim

import (
	"math"
	"math/cmplx"
	"sort"
)

// hermitianEigen diagonalizes a Hermitian matrix with the cyclic Jacobi
// method. It returns the eigenvalues in ascending order and a matrix whose
// k-th column is the eigenvector for the k-th eigenvalue.
//
// The matrices handled here are small (2^n x 2^n for the qubit counts a
// dense simulator can hold), so the quadratic sweep cost is irrelevant
// next to the simulation itself.
func hermitianEigen(a []complex128, dim int) ([]float64, []complex128) {
	m := make([]complex128, len(a))
	copy(m, a)
	vecs := identity(dim)

	const maxSweeps = 100
	const tol = 1e-28

	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for p := 0; p < dim; p++ {
			for q := p + 1; q < dim; q++ {
				apq := m[p*dim+q]
				off += real(apq)*real(apq) + imag(apq)*imag(apq)
			}
		}
		if off < tol {
			break
		}

		for p := 0; p < dim; p++ {
			for q := p + 1; q < dim; q++ {
				rotatePair(m, vecs, dim, p, q)
			}
		}
	}

	vals := make([]float64, dim)
	for i := 0; i < dim; i++ {
		vals[i] = real(m[i*dim+i])
	}

	// Sort eigenpairs ascending by eigenvalue.
	order := make([]int, dim)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return vals[order[i]] < vals[order[j]] })

	sortedVals := make([]float64, dim)
	sortedVecs := make([]complex128, dim*dim)
	for k, idx := range order {
		sortedVals[k] = vals[idx]
		for i := 0; i < dim; i++ {
			sortedVecs[i*dim+k] = vecs[i*dim+idx]
		}
	}
	return sortedVals, sortedVecs
}

// rotatePair zeroes m[p][q] with a unitary plane rotation, updating the
// accumulated eigenvector matrix alongside.
func rotatePair(m, vecs []complex128, dim, p, q int) {
	apq := m[p*dim+q]
	mag := cmplx.Abs(apq)
	if mag < 1e-300 {
		return
	}

	// Phase factor turns the pivot real, then a real Jacobi rotation
	// eliminates it: tan(2*theta) = 2|apq| / (app - aqq).
	phase := apq / complex(mag, 0)
	app := real(m[p*dim+p])
	aqq := real(m[q*dim+q])

	tau := (app - aqq) / (2 * mag)
	var t float64
	if tau >= 0 {
		t = 1 / (tau + math.Sqrt(1+tau*tau))
	} else {
		t = -1 / (-tau + math.Sqrt(1+tau*tau))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c

	gpp := phase * complex(c, 0)  // G[p][p]
	gpq := phase * complex(-s, 0) // G[p][q]
	gqp := complex(s, 0)          // G[q][p]
	gqq := complex(c, 0)          // G[q][q]

	// m <- G^dag m G, applied as column then row updates.
	for i := 0; i < dim; i++ {
		mip := m[i*dim+p]
		miq := m[i*dim+q]
		m[i*dim+p] = mip*gpp + miq*gqp
		m[i*dim+q] = mip*gpq + miq*gqq
	}
	for j := 0; j < dim; j++ {
		mpj := m[p*dim+j]
		mqj := m[q*dim+j]
		m[p*dim+j] = cmplx.Conj(gpp)*mpj + cmplx.Conj(gqp)*mqj
		m[q*dim+j] = cmplx.Conj(gpq)*mpj + cmplx.Conj(gqq)*mqj
	}
	// Clean up roundoff on the pivot; the diagonal stays real.
	m[p*dim+q] = 0
	m[q*dim+p] = 0
	m[p*dim+p] = complex(real(m[p*dim+p]), 0)
	m[q*dim+q] = complex(real(m[q*dim+q]), 0)

	for i := 0; i < dim; i++ {
		vip := vecs[i*dim+p]
		viq := vecs[i*dim+q]
		vecs[i*dim+p] = vip*gpp + viq*gqp
		vecs[i*dim+q] = vip*gpq + viq*gqq
	}
}
