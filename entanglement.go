package qusim

import (
	"math"
	"sort"
)

// ReducedDensityMatrix traces out every qubit not in keep and returns the
// reduced state. Reduced qubit j corresponds to keep[j], so the caller's
// ordering carries over.
func ReducedDensityMatrix(s *QuantumState, keep []int) (*QuantumState, error) {
	n := s.NumQubits
	seen := make(map[int]bool, len(keep))
	for _, q := range keep {
		if q < 0 || q >= n || seen[q] {
			return nil, &QubitIndexError{Qubit: q, NumQubits: n}
		}
		seen[q] = true
	}

	rho := s.ToDensityMatrix()
	dim := rho.Dim()

	var traced []int
	for q := 0; q < n; q++ {
		if !seen[q] {
			traced = append(traced, q)
		}
	}

	k := len(keep)
	redDim := 1 << k
	red := make([]complex128, redDim*redDim)

	// keptBits maps a reduced basis index onto the kept qubits' bit
	// positions in the full index; tracedBits does the same for the summed
	// qubits.
	keptBits := func(idx int) int {
		full := 0
		for j, q := range keep {
			if idx&(1<<(k-1-j)) != 0 {
				full |= 1 << (n - 1 - q)
			}
		}
		return full
	}
	m := len(traced)
	tracedBits := func(idx int) int {
		full := 0
		for j, q := range traced {
			if idx&(1<<(m-1-j)) != 0 {
				full |= 1 << (n - 1 - q)
			}
		}
		return full
	}

	for a := 0; a < redDim; a++ {
		rowBase := keptBits(a)
		for b := 0; b < redDim; b++ {
			colBase := keptBits(b)
			var sum complex128
			for t := 0; t < 1<<m; t++ {
				tb := tracedBits(t)
				sum += rho.Data[(rowBase|tb)*dim+(colBase|tb)]
			}
			red[a*redDim+b] = sum
		}
	}

	return &QuantumState{Data: red, NumQubits: k, IsDensityMatrix: true}, nil
}

// VonNeumannEntropy returns S(rho) = -Tr(rho log2 rho) in bits. Pure
// states have zero entropy.
func VonNeumannEntropy(s *QuantumState) float64 {
	if !s.IsDensityMatrix {
		return 0
	}
	vals, _ := hermitianEigen(s.Data, s.Dim())
	entropy := 0.0
	for _, v := range vals {
		if v > 1e-12 {
			entropy -= v * math.Log2(v)
		}
	}
	return entropy
}

// EntanglementEntropy returns the von Neumann entropy of the reduced state
// on the given qubits, the standard bipartite entanglement measure for
// pure states.
func EntanglementEntropy(s *QuantumState, qubits []int) (float64, error) {
	red, err := ReducedDensityMatrix(s, qubits)
	if err != nil {
		return 0, err
	}
	return VonNeumannEntropy(red), nil
}

// MutualInformation returns I(A:B) = S(A) + S(B) - S(AB) in bits for two
// disjoint qubit subsets.
func MutualInformation(s *QuantumState, a, b []int) (float64, error) {
	for _, qa := range a {
		for _, qb := range b {
			if qa == qb {
				return 0, &QubitIndexError{Qubit: qa, NumQubits: s.NumQubits}
			}
		}
	}
	sa, err := EntanglementEntropy(s, a)
	if err != nil {
		return 0, err
	}
	sb, err := EntanglementEntropy(s, b)
	if err != nil {
		return 0, err
	}
	ab := append(append([]int{}, a...), b...)
	sab, err := EntanglementEntropy(s, ab)
	if err != nil {
		return 0, err
	}
	return sa + sb - sab, nil
}

// Concurrence returns Wootters' concurrence of a two-qubit state: 0 for
// product states, 1 for maximally entangled ones.
func Concurrence(s *QuantumState) (float64, error) {
	if s.NumQubits != 2 {
		return 0, &DimensionMismatchError{Got: s.Dim(), Want: 4}
	}
	rho := s.ToDensityMatrix().Data

	// rhoTilde = (Y x Y) conj(rho) (Y x Y)
	yy := []complex128{
		0, 0, 0, -1,
		0, 0, 1, 0,
		0, 1, 0, 0,
		-1, 0, 0, 0,
	}
	rhoTilde := matMul(matMul(yy, conjugateMatrix(rho), 4), yy, 4)

	// The spin-flip eigenvalues come from the Hermitian form
	// sqrt(rho) rhoTilde sqrt(rho).
	sqrtRho := matrixSqrt(rho, 4)
	m := matMul(matMul(sqrtRho, rhoTilde, 4), sqrtRho, 4)
	vals, _ := hermitianEigen(m, 4)

	lambdas := make([]float64, len(vals))
	for i, v := range vals {
		if v < 0 {
			v = 0
		}
		lambdas[i] = math.Sqrt(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(lambdas)))

	c := lambdas[0] - lambdas[1] - lambdas[2] - lambdas[3]
	if c < 0 {
		return 0, nil
	}
	if c > 1 {
		c = 1
	}
	return c, nil
}
