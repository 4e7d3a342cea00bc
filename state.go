package qusim

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// QuantumState holds either a pure-state amplitude vector (Data has length
// 2^n) or a density matrix stored flat in row-major order (length 4^n).
//
// Qubit 0 is the most significant bit of a basis index: for n qubits, basis
// index i corresponds to the n-bit string of i read left to right as
// qubit 0..n-1.
type QuantumState struct {
	Data            []complex128
	NumQubits       int
	IsDensityMatrix bool
	ClassicalBits   map[string]int
}

// NewZeroState returns the pure state |00...0> on numQubits qubits.
func NewZeroState(numQubits int) *QuantumState {
	data := make([]complex128, 1<<numQubits)
	data[0] = 1
	return &QuantumState{Data: data, NumQubits: numQubits}
}

// NewZeroDensityMatrix returns |00...0><00...0| on numQubits qubits.
func NewZeroDensityMatrix(numQubits int) *QuantumState {
	dim := 1 << numQubits
	data := make([]complex128, dim*dim)
	data[0] = 1
	return &QuantumState{Data: data, NumQubits: numQubits, IsDensityMatrix: true}
}

// NewStateVector wraps an amplitude vector, validating its length.
func NewStateVector(amplitudes []complex128, numQubits int) (*QuantumState, error) {
	dim := 1 << numQubits
	if len(amplitudes) != dim {
		return nil, &DimensionMismatchError{Got: len(amplitudes), Want: dim}
	}
	return &QuantumState{Data: amplitudes, NumQubits: numQubits}, nil
}

// NewDensityMatrix wraps a flat row-major density matrix, validating its length.
func NewDensityMatrix(matrix []complex128, numQubits int) (*QuantumState, error) {
	dim := 1 << numQubits
	if len(matrix) != dim*dim {
		return nil, &DimensionMismatchError{Got: len(matrix), Want: dim * dim}
	}
	return &QuantumState{Data: matrix, NumQubits: numQubits, IsDensityMatrix: true}, nil
}

// Dim returns the Hilbert-space dimension 2^n.
func (s *QuantumState) Dim() int {
	return 1 << s.NumQubits
}

// qubitMask returns the basis-index bit for the given qubit.
func (s *QuantumState) qubitMask(qubit int) int {
	return 1 << (s.NumQubits - 1 - qubit)
}

// Copy deep-copies the state, including classical bits.
func (s *QuantumState) Copy() *QuantumState {
	data := make([]complex128, len(s.Data))
	copy(data, s.Data)
	var cbits map[string]int
	if s.ClassicalBits != nil {
		cbits = make(map[string]int, len(s.ClassicalBits))
		for k, v := range s.ClassicalBits {
			cbits[k] = v
		}
	}
	return &QuantumState{
		Data:            data,
		NumQubits:       s.NumQubits,
		IsDensityMatrix: s.IsDensityMatrix,
		ClassicalBits:   cbits,
	}
}

// Norm returns the L2 norm of a pure state, or sqrt of the trace for a
// density matrix.
func (s *QuantumState) Norm() float64 {
	if s.IsDensityMatrix {
		return math.Sqrt(real(trace(s.Data, s.Dim())))
	}
	sum := 0.0
	for _, a := range s.Data {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// Probabilities returns the measurement probability of each basis state:
// the diagonal of rho for a density matrix, |amplitude|^2 otherwise.
func (s *QuantumState) Probabilities() []float64 {
	dim := s.Dim()
	probs := make([]float64, dim)
	if s.IsDensityMatrix {
		for i := 0; i < dim; i++ {
			probs[i] = real(s.Data[i*dim+i])
		}
		return probs
	}
	for i, a := range s.Data {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// ToDensityMatrix returns rho = |psi><psi|. Density matrices are returned
// unchanged.
func (s *QuantumState) ToDensityMatrix() *QuantumState {
	if s.IsDensityMatrix {
		return s
	}
	dim := s.Dim()
	rho := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		if s.Data[i] == 0 {
			continue
		}
		for j := 0; j < dim; j++ {
			rho[i*dim+j] = s.Data[i] * cmplx.Conj(s.Data[j])
		}
	}
	return &QuantumState{Data: rho, NumQubits: s.NumQubits, IsDensityMatrix: true}
}

// ToStatevector extracts the amplitude vector from a numerically pure
// density matrix (Tr(rho^2) within 1e-6 of 1) by taking the eigenvector of
// the dominant eigenvalue. Genuinely mixed states yield a
// MixedStateExtractionError.
func (s *QuantumState) ToStatevector() (*QuantumState, error) {
	if !s.IsDensityMatrix {
		return s, nil
	}
	purity := s.Purity()
	if math.Abs(purity-1) > 1e-6 {
		return nil, &MixedStateExtractionError{Purity: purity}
	}

	dim := s.Dim()
	_, vecs := hermitianEigen(s.Data, dim)
	// Eigenvalues are sorted ascending; the last one is ~1 for pure states.
	k := dim - 1
	psi := make([]complex128, dim)
	for i := 0; i < dim; i++ {
		psi[i] = vecs[i*dim+k]
	}
	return &QuantumState{Data: psi, NumQubits: s.NumQubits}, nil
}

// Purity returns Tr(rho^2); 1 for pure states, less for mixed ones.
func (s *QuantumState) Purity() float64 {
	if !s.IsDensityMatrix {
		sum := 0.0
		for _, a := range s.Data {
			sum += real(a)*real(a) + imag(a)*imag(a)
		}
		return sum * sum
	}
	dim := s.Dim()
	p := 0.0
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			// Tr(rho^2) = sum_ij rho[i][j] * rho[j][i]
			p += real(s.Data[i*dim+j] * s.Data[j*dim+i])
		}
	}
	return p
}

// ExpectationValue returns <O> = Tr(rho O) or <psi|O|psi> for a Hermitian
// observable given as a flat dim x dim matrix.
func (s *QuantumState) ExpectationValue(observable []complex128) float64 {
	dim := s.Dim()
	if s.IsDensityMatrix {
		return real(trace(matMul(s.Data, observable, dim), dim))
	}
	var acc complex128
	for i := 0; i < dim; i++ {
		var row complex128
		for j := 0; j < dim; j++ {
			row += observable[i*dim+j] * s.Data[j]
		}
		acc += cmplx.Conj(s.Data[i]) * row
	}
	return real(acc)
}

// Measure samples a Z-basis measurement of the given qubit from rng and
// collapses the state in place, returning the outcome 0 or 1.
//
// Amplitudes (or matrix rows/columns) inconsistent with the outcome are
// zeroed and the remainder renormalized. If the post-projection weight is
// not positive the state is left unrenormalized; that only happens on
// pathological input.
func (s *QuantumState) Measure(qubit int, rng *rand.Rand) (int, error) {
	if qubit < 0 || qubit >= s.NumQubits {
		return 0, &QubitIndexError{Qubit: qubit, NumQubits: s.NumQubits}
	}
	if s.IsDensityMatrix {
		return s.measureDensityMatrix(qubit, rng), nil
	}
	return s.measureStatevector(qubit, rng), nil
}

func (s *QuantumState) measureStatevector(qubit int, rng *rand.Rand) int {
	mask := s.qubitMask(qubit)

	prob0 := 0.0
	for i, a := range s.Data {
		if i&mask == 0 {
			prob0 += real(a)*real(a) + imag(a)*imag(a)
		}
	}

	outcome := 0
	if rng.Float64() >= prob0 {
		outcome = 1
	}

	var keep int
	if outcome == 1 {
		keep = mask
	}
	norm2 := 0.0
	for i := range s.Data {
		if i&mask != keep {
			s.Data[i] = 0
		} else {
			a := s.Data[i]
			norm2 += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	if norm2 > 0 {
		inv := complex(1/math.Sqrt(norm2), 0)
		for i := range s.Data {
			s.Data[i] *= inv
		}
	}
	return outcome
}

func (s *QuantumState) measureDensityMatrix(qubit int, rng *rand.Rand) int {
	dim := s.Dim()
	mask := s.qubitMask(qubit)

	prob0 := 0.0
	for i := 0; i < dim; i++ {
		if i&mask == 0 {
			prob0 += real(s.Data[i*dim+i])
		}
	}

	outcome := 0
	if rng.Float64() >= prob0 {
		outcome = 1
	}

	var keep int
	if outcome == 1 {
		keep = mask
	}
	// rho -> P rho P / Tr(P rho): zero rows and columns outside the
	// outcome subspace, then renormalize the trace.
	tr := 0.0
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i&mask != keep || j&mask != keep {
				s.Data[i*dim+j] = 0
			}
		}
		tr += real(s.Data[i*dim+i])
	}
	if tr > 0 {
		inv := complex(1/tr, 0)
		for i := range s.Data {
			s.Data[i] *= inv
		}
	}
	return outcome
}
