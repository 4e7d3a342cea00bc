package qusim

import (
	"math"
	"math/cmplx"
)

// Fidelity returns the state fidelity F between two states on the same
// number of qubits.
//
// For two pure states F = |<psi|phi>|^2. When either state is pure the
// general formula collapses to F = Tr(rho1 rho2), which avoids the matrix
// square roots. Only for two genuinely mixed states is the full
// F = (Tr sqrt(sqrt(rho1) rho2 sqrt(rho1)))^2 evaluated.
func Fidelity(a, b *QuantumState) (float64, error) {
	if a.NumQubits != b.NumQubits {
		return 0, &DimensionMismatchError{Got: b.Dim(), Want: a.Dim()}
	}

	if !a.IsDensityMatrix && !b.IsDensityMatrix {
		var overlap complex128
		for i := range a.Data {
			overlap += cmplx.Conj(a.Data[i]) * b.Data[i]
		}
		f := real(overlap)*real(overlap) + imag(overlap)*imag(overlap)
		return clampFidelity(f), nil
	}

	dim := a.Dim()
	rhoA := a.ToDensityMatrix().Data
	rhoB := b.ToDensityMatrix().Data

	pureA := !a.IsDensityMatrix || math.Abs(a.Purity()-1) < 1e-10
	pureB := !b.IsDensityMatrix || math.Abs(b.Purity()-1) < 1e-10
	if pureA || pureB {
		f := real(trace(matMul(rhoA, rhoB, dim), dim))
		return clampFidelity(f), nil
	}

	sqrtA := matrixSqrt(rhoA, dim)
	inner := matMul(matMul(sqrtA, rhoB, dim), sqrtA, dim)
	root := matrixSqrt(inner, dim)
	f := real(trace(root, dim))
	return clampFidelity(f * f), nil
}

func clampFidelity(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		// Numerical overshoot only; genuine values never exceed 1.
		if f < 1+1e-9 {
			return 1
		}
	}
	return f
}
