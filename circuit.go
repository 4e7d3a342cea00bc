package qusim

import "fmt"

// GateOp is one placed gate: the operator plus the qubit indices it acts
// on, in gate-qubit order (controls before targets for controlled gates).
type GateOp struct {
	Gate   Gate
	Qubits []int
}

// Measurement requests a Z-basis measurement of Qubit recorded into
// ClassicalBit.
type Measurement struct {
	Qubit        int
	ClassicalBit int
}

// Circuit is an ordered list of gate operations plus measurement requests.
// It is pure data; backends treat it as immutable once handed over and
// re-validate every index before executing.
type Circuit struct {
	NumQubits        int
	NumClassicalBits int
	Ops              []GateOp
	Measurements     []Measurement
}

// NewCircuit returns an empty circuit on the given registers.
func NewCircuit(numQubits, numClassicalBits int) *Circuit {
	return &Circuit{NumQubits: numQubits, NumClassicalBits: numClassicalBits}
}

// AddGate appends a gate acting on the given qubits, validating arity and
// index range.
func (c *Circuit) AddGate(g Gate, qubits ...int) error {
	if len(qubits) != g.Arity {
		return &GateArityError{Gate: g.Name, Want: g.Arity, Got: len(qubits)}
	}
	for _, q := range qubits {
		if q < 0 || q >= c.NumQubits {
			return &QubitIndexError{Qubit: q, NumQubits: c.NumQubits}
		}
	}
	qs := make([]int, len(qubits))
	copy(qs, qubits)
	c.Ops = append(c.Ops, GateOp{Gate: g, Qubits: qs})
	return nil
}

// Measure appends a measurement request. A negative classicalBit is
// auto-assigned from the measurement order.
func (c *Circuit) Measure(qubit, classicalBit int) error {
	if qubit < 0 || qubit >= c.NumQubits {
		return &QubitIndexError{Qubit: qubit, NumQubits: c.NumQubits}
	}
	if classicalBit < 0 {
		classicalBit = len(c.Measurements)
	} else if c.NumClassicalBits > 0 && classicalBit >= c.NumClassicalBits {
		return fmt.Errorf("classical bit %d out of range [0, %d)", classicalBit, c.NumClassicalBits)
	}
	c.Measurements = append(c.Measurements, Measurement{Qubit: qubit, ClassicalBit: classicalBit})
	return nil
}

// MeasureAll appends a measurement of every qubit into classical bit i for
// qubit i.
func (c *Circuit) MeasureAll() {
	for q := 0; q < c.NumQubits; q++ {
		c.Measurements = append(c.Measurements, Measurement{Qubit: q, ClassicalBit: q})
	}
}

// Fluent builders for common gates. These append without checking indices;
// backends re-validate every op before executing, so a bad index still
// fails loudly at run time.

func (c *Circuit) append(g Gate, qubits ...int) *Circuit {
	qs := make([]int, len(qubits))
	copy(qs, qubits)
	c.Ops = append(c.Ops, GateOp{Gate: g, Qubits: qs})
	return c
}

// X appends a Pauli-X gate.
func (c *Circuit) X(q int) *Circuit { return c.append(XGate(), q) }

// Y appends a Pauli-Y gate.
func (c *Circuit) Y(q int) *Circuit { return c.append(YGate(), q) }

// Z appends a Pauli-Z gate.
func (c *Circuit) Z(q int) *Circuit { return c.append(ZGate(), q) }

// H appends a Hadamard gate.
func (c *Circuit) H(q int) *Circuit { return c.append(HGate(), q) }

// S appends the phase gate.
func (c *Circuit) S(q int) *Circuit { return c.append(SGate(), q) }

// T appends the T gate.
func (c *Circuit) T(q int) *Circuit { return c.append(TGate(), q) }

// RX appends an X-axis rotation by theta.
func (c *Circuit) RX(q int, theta float64) *Circuit { return c.append(RXGate(theta), q) }

// RY appends a Y-axis rotation by theta.
func (c *Circuit) RY(q int, theta float64) *Circuit { return c.append(RYGate(theta), q) }

// RZ appends a Z-axis rotation by theta.
func (c *Circuit) RZ(q int, theta float64) *Circuit { return c.append(RZGate(theta), q) }

// CNOT appends a controlled-NOT gate.
func (c *Circuit) CNOT(control, target int) *Circuit { return c.append(CNOTGate(), control, target) }

// CZ appends a controlled-Z gate.
func (c *Circuit) CZ(control, target int) *Circuit { return c.append(CZGate(), control, target) }

// Swap appends a SWAP gate.
func (c *Circuit) Swap(q1, q2 int) *Circuit { return c.append(SwapGate(), q1, q2) }

// Toffoli appends a CCNOT gate.
func (c *Circuit) Toffoli(control1, control2, target int) *Circuit {
	return c.append(ToffoliGate(), control1, control2, target)
}

// Depth returns the number of layers when gates sharing no qubits are
// packed greedily into parallel layers.
func (c *Circuit) Depth() int {
	if len(c.Ops) == 0 {
		return 0
	}
	qubitLayer := make([]int, c.NumQubits)
	for i := range qubitLayer {
		qubitLayer[i] = -1
	}
	depth := 0
	for _, op := range c.Ops {
		layer := 0
		for _, q := range op.Qubits {
			if q >= 0 && q < c.NumQubits && qubitLayer[q]+1 > layer {
				layer = qubitLayer[q] + 1
			}
		}
		for _, q := range op.Qubits {
			if q >= 0 && q < c.NumQubits {
				qubitLayer[q] = layer
			}
		}
		if layer+1 > depth {
			depth = layer + 1
		}
	}
	return depth
}

// GateCounts returns the number of placed gates by name.
func (c *Circuit) GateCounts() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Ops {
		counts[op.Gate.Name]++
	}
	return counts
}

// IsClifford reports whether every gate in the circuit is Clifford.
func (c *Circuit) IsClifford() bool {
	for _, op := range c.Ops {
		if !IsCliffordGate(op.Gate.Name) {
			return false
		}
	}
	return true
}

// Validate re-checks every gate op and measurement against the register
// sizes.
func (c *Circuit) Validate() error {
	for _, op := range c.Ops {
		if len(op.Qubits) != op.Gate.Arity {
			return &GateArityError{Gate: op.Gate.Name, Want: op.Gate.Arity, Got: len(op.Qubits)}
		}
		for _, q := range op.Qubits {
			if q < 0 || q >= c.NumQubits {
				return &QubitIndexError{Qubit: q, NumQubits: c.NumQubits}
			}
		}
	}
	for _, m := range c.Measurements {
		if m.Qubit < 0 || m.Qubit >= c.NumQubits {
			return &QubitIndexError{Qubit: m.Qubit, NumQubits: c.NumQubits}
		}
	}
	return nil
}

func (c *Circuit) String() string {
	return fmt.Sprintf("Circuit(%d qubits, %d gates, depth=%d)", c.NumQubits, len(c.Ops), c.Depth())
}
