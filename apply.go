package qusim

import "math/cmplx"

// The application engine treats both state representations as flattened
// qubit tensors: a statevector is a rank-n tensor over n bit axes, a
// density matrix a rank-2n tensor whose row axes occupy the high n bits of
// the flat index and whose column axes occupy the low n bits. One
// contraction routine covers every arity and both representations; the
// density-matrix case runs it twice, U on the row axes and conj(U) on the
// column axes, which together give rho -> U rho U^dag.

// ApplyGate applies g to the state's target qubits in place.
func ApplyGate(s *QuantumState, g Gate, qubits []int) error {
	if len(qubits) != g.Arity {
		return &GateArityError{Gate: g.Name, Want: g.Arity, Got: len(qubits)}
	}
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= s.NumQubits {
			return &QubitIndexError{Qubit: q, NumQubits: s.NumQubits}
		}
		if seen[q] {
			return &QubitIndexError{Qubit: q, NumQubits: s.NumQubits}
		}
		seen[q] = true
	}

	n := s.NumQubits
	u := g.Matrix()
	positions := make([]int, len(qubits))

	if !s.IsDensityMatrix {
		for j, q := range qubits {
			positions[j] = n - 1 - q
		}
		applyOperator(s.Data, u, positions)
		return nil
	}

	// Row axes live above the column axes in the flat index.
	for j, q := range qubits {
		positions[j] = 2*n - 1 - q
	}
	applyOperator(s.Data, u, positions)

	for j, q := range qubits {
		positions[j] = n - 1 - q
	}
	applyOperator(s.Data, conjugateMatrix(u), positions)
	return nil
}

// applyOperator contracts the 2^k x 2^k matrix u against the bit axes of
// data named by positions. positions[j] is the flat-index bit of gate
// qubit j; gate qubit 0 is the most significant bit of u's index.
func applyOperator(data []complex128, u []complex128, positions []int) {
	k := len(positions)
	sub := 1 << k

	masks := make([]int, k)
	full := 0
	for j, p := range positions {
		masks[j] = 1 << p
		full |= masks[j]
	}

	// offsets[s] scatters the k-bit pattern s onto the target bits.
	offsets := make([]int, sub)
	for s := 0; s < sub; s++ {
		off := 0
		for j := 0; j < k; j++ {
			if s&(1<<(k-1-j)) != 0 {
				off |= masks[j]
			}
		}
		offsets[s] = off
	}

	in := make([]complex128, sub)
	for base := 0; base < len(data); base++ {
		if base&full != 0 {
			continue
		}
		for s := 0; s < sub; s++ {
			in[s] = data[base|offsets[s]]
		}
		for r := 0; r < sub; r++ {
			var acc complex128
			row := u[r*sub:]
			for s := 0; s < sub; s++ {
				if in[s] != 0 {
					acc += row[s] * in[s]
				}
			}
			data[base|offsets[r]] = acc
		}
	}
}

func conjugateMatrix(u []complex128) []complex128 {
	out := make([]complex128, len(u))
	for i, v := range u {
		out[i] = cmplx.Conj(v)
	}
	return out
}
