package qusim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Gate is an immutable unitary operator with a declared qubit arity. The
// matrix is 2^arity x 2^arity, flat row-major; the gate's own qubit 0 is
// the most significant bit of its row/column index, matching the global
// basis-index convention.
type Gate struct {
	Name   string
	Arity  int
	Params []float64
	matrix []complex128
}

// Matrix returns the gate's unitary matrix. Callers must not mutate it.
func (g Gate) Matrix() []complex128 {
	return g.matrix
}

func (g Gate) String() string {
	if len(g.Params) == 0 {
		return g.Name
	}
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = formatParam(p)
	}
	return fmt.Sprintf("%s(%s)", g.Name, strings.Join(parts, ", "))
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

// XGate returns the Pauli-X (NOT) gate.
func XGate() Gate {
	return Gate{Name: "X", Arity: 1, matrix: []complex128{0, 1, 1, 0}}
}

// YGate returns the Pauli-Y gate.
func YGate() Gate {
	return Gate{Name: "Y", Arity: 1, matrix: []complex128{0, -1i, 1i, 0}}
}

// ZGate returns the Pauli-Z gate.
func ZGate() Gate {
	return Gate{Name: "Z", Arity: 1, matrix: []complex128{1, 0, 0, -1}}
}

// HGate returns the Hadamard gate.
func HGate() Gate {
	return Gate{Name: "H", Arity: 1, matrix: []complex128{invSqrt2, invSqrt2, invSqrt2, -invSqrt2}}
}

// SGate returns the phase gate (pi/2 rotation around Z).
func SGate() Gate {
	return Gate{Name: "S", Arity: 1, matrix: []complex128{1, 0, 0, 1i}}
}

// TGate returns the T gate (pi/4 rotation around Z).
func TGate() Gate {
	return Gate{Name: "T", Arity: 1, matrix: []complex128{1, 0, 0, cmplx.Exp(complex(0, math.Pi/4))}}
}

// RXGate returns the rotation exp(-i*theta*X/2).
func RXGate(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return Gate{Name: "RX", Arity: 1, Params: []float64{theta}, matrix: []complex128{c, s, s, c}}
}

// RYGate returns the rotation exp(-i*theta*Y/2).
func RYGate(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Gate{Name: "RY", Arity: 1, Params: []float64{theta}, matrix: []complex128{c, -s, s, c}}
}

// RZGate returns the rotation exp(-i*theta*Z/2).
func RZGate(theta float64) Gate {
	return Gate{Name: "RZ", Arity: 1, Params: []float64{theta}, matrix: []complex128{
		cmplx.Exp(complex(0, -theta/2)), 0,
		0, cmplx.Exp(complex(0, theta/2)),
	}}
}

// CNOTGate returns the controlled-NOT gate; qubit 0 is the control.
func CNOTGate() Gate {
	return Gate{Name: "CNOT", Arity: 2, matrix: []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}}
}

// CZGate returns the controlled-Z gate.
func CZGate() Gate {
	return Gate{Name: "CZ", Arity: 2, matrix: []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	}}
}

// SwapGate returns the SWAP gate.
func SwapGate() Gate {
	return Gate{Name: "SWAP", Arity: 2, matrix: []complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}}
}

// ToffoliGate returns the CCNOT gate; qubits 0 and 1 are the controls.
func ToffoliGate() Gate {
	m := identity(8)
	m[6*8+6], m[6*8+7] = 0, 1
	m[7*8+6], m[7*8+7] = 1, 0
	return Gate{Name: "Toffoli", Arity: 3, matrix: m}
}

// CustomGate builds a gate from an arbitrary matrix. The matrix must be
// 2^numQubits square and unitary within 1e-8; invalid matrices fail here,
// never at application time.
func CustomGate(name string, matrix []complex128, numQubits int) (Gate, error) {
	dim := 1 << numQubits
	if len(matrix) != dim*dim {
		return Gate{}, &DimensionMismatchError{Got: len(matrix), Want: dim * dim}
	}
	if !isUnitary(matrix, dim, 1e-8) {
		return Gate{}, &NonUnitaryGateError{Gate: name}
	}
	m := make([]complex128, len(matrix))
	copy(m, matrix)
	return Gate{Name: name, Arity: numQubits, matrix: m}, nil
}

// cliffordGates is the gate set mapped to itself under Pauli conjugation.
var cliffordGates = map[string]bool{
	"H": true, "S": true, "CNOT": true, "CZ": true,
	"X": true, "Y": true, "Z": true, "SWAP": true,
}

// IsCliffordGate reports whether the named gate is in the Clifford set.
func IsCliffordGate(name string) bool {
	return cliffordGates[name]
}
