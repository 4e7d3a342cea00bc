package qusim

import (
	"math"
	"math/cmplx"
)

// Dense complex matrices are stored flat in row-major order with an
// explicit dimension, matching the flat amplitude slices used for states.

// identity returns the dim x dim identity matrix.
func identity(dim int) []complex128 {
	m := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		m[i*dim+i] = 1
	}
	return m
}

// matMul returns a*b for dim x dim matrices.
func matMul(a, b []complex128, dim int) []complex128 {
	out := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		for k := 0; k < dim; k++ {
			aik := a[i*dim+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < dim; j++ {
				out[i*dim+j] += aik * b[k*dim+j]
			}
		}
	}
	return out
}

// dagger returns the conjugate transpose of a dim x dim matrix.
func dagger(a []complex128, dim int) []complex128 {
	out := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			out[j*dim+i] = cmplx.Conj(a[i*dim+j])
		}
	}
	return out
}

// kron returns the Kronecker product of a (da x da) and b (db x db).
func kron(a []complex128, da int, b []complex128, db int) []complex128 {
	dim := da * db
	out := make([]complex128, dim*dim)
	for i := 0; i < da; i++ {
		for j := 0; j < da; j++ {
			aij := a[i*da+j]
			if aij == 0 {
				continue
			}
			for k := 0; k < db; k++ {
				for l := 0; l < db; l++ {
					out[(i*db+k)*dim+(j*db+l)] = aij * b[k*db+l]
				}
			}
		}
	}
	return out
}

// trace returns the trace of a dim x dim matrix.
func trace(a []complex128, dim int) complex128 {
	var t complex128
	for i := 0; i < dim; i++ {
		t += a[i*dim+i]
	}
	return t
}

// matricesClose reports whether two matrices agree elementwise within tol.
func matricesClose(a, b []complex128, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if cmplx.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// isUnitary reports whether u*u^dag is the identity within tol.
func isUnitary(u []complex128, dim int, tol float64) bool {
	return matricesClose(matMul(u, dagger(u, dim), dim), identity(dim), tol)
}

// matrixSqrt returns the principal square root of a Hermitian PSD matrix,
// clamping small negative eigenvalues to zero.
func matrixSqrt(a []complex128, dim int) []complex128 {
	vals, vecs := hermitianEigen(a, dim)
	out := make([]complex128, dim*dim)
	for k := 0; k < dim; k++ {
		lam := vals[k]
		if lam < 0 {
			lam = 0
		}
		s := complex(math.Sqrt(lam), 0)
		for i := 0; i < dim; i++ {
			vik := vecs[i*dim+k]
			if vik == 0 {
				continue
			}
			for j := 0; j < dim; j++ {
				out[i*dim+j] += s * vik * cmplx.Conj(vecs[j*dim+k])
			}
		}
	}
	return out
}
