package qusim

import (
	"math"
	"strings"
	"testing"
)

func TestParseBellCircuit(t *testing.T) {
	src := `qreg q[2]
creg c[2]
h(0)
cnot(0, 1)
measure(0, 0)
measure(1, 1)`

	c, err := ParseDSL(src)
	if err != nil {
		t.Fatalf("ParseDSL: %v", err)
	}
	if c.NumQubits != 2 || c.NumClassicalBits != 2 {
		t.Fatalf("registers: %d qubits, %d cbits", c.NumQubits, c.NumClassicalBits)
	}
	if len(c.Ops) != 2 {
		t.Fatalf("gates: got %d", len(c.Ops))
	}
	if c.Ops[0].Gate.Name != "H" || c.Ops[0].Qubits[0] != 0 {
		t.Errorf("gate 0: %s %v", c.Ops[0].Gate.Name, c.Ops[0].Qubits)
	}
	if c.Ops[1].Gate.Name != "CNOT" || c.Ops[1].Qubits[0] != 0 || c.Ops[1].Qubits[1] != 1 {
		t.Errorf("gate 1: %s %v", c.Ops[1].Gate.Name, c.Ops[1].Qubits)
	}
	if len(c.Measurements) != 2 {
		t.Fatalf("measurements: got %d", len(c.Measurements))
	}
	if c.Measurements[1].Qubit != 1 || c.Measurements[1].ClassicalBit != 1 {
		t.Errorf("measurement 1: %+v", c.Measurements[1])
	}
}

func TestParseInfersQubitCount(t *testing.T) {
	c, err := ParseDSL("h(0)\ncnot(0, 3)")
	if err != nil {
		t.Fatalf("ParseDSL: %v", err)
	}
	if c.NumQubits != 4 {
		t.Errorf("inferred qubits: got %d, want 4", c.NumQubits)
	}

	// Inference never yields an empty register.
	c, err = ParseDSL("# nothing but a comment")
	if err != nil {
		t.Fatalf("ParseDSL: %v", err)
	}
	if c.NumQubits != 1 {
		t.Errorf("empty source qubits: got %d, want 1", c.NumQubits)
	}
}

func TestParseParameterizedGates(t *testing.T) {
	tests := []struct {
		src   string
		name  string
		theta float64
	}{
		{"rx(0, pi/2)", "RX", math.Pi / 2},
		{"ry(0, -pi)", "RY", -math.Pi},
		{"rz(0, 0.25)", "RZ", 0.25},
		{"rx(0, 3*pi/4)", "RX", 3 * math.Pi / 4},
	}
	for _, tt := range tests {
		c, err := ParseDSL(tt.src)
		if err != nil {
			t.Fatalf("ParseDSL(%q): %v", tt.src, err)
		}
		op := c.Ops[0]
		if op.Gate.Name != tt.name {
			t.Errorf("%q: gate %s", tt.src, op.Gate.Name)
		}
		if math.Abs(op.Gate.Params[0]-tt.theta) > 1e-12 {
			t.Errorf("%q: theta %v, want %v", tt.src, op.Gate.Params[0], tt.theta)
		}
	}
}

func TestParseThreeQubitGate(t *testing.T) {
	c, err := ParseDSL("ccx(0, 1, 2)")
	if err != nil {
		t.Fatalf("ParseDSL: %v", err)
	}
	op := c.Ops[0]
	if op.Gate.Name != "Toffoli" || len(op.Qubits) != 3 {
		t.Errorf("op: %s %v", op.Gate.Name, op.Qubits)
	}
}

func TestParseMeasureWithoutClassicalBit(t *testing.T) {
	c, err := ParseDSL("qreg q[2]\nh(0)\nmeasure(0)\nmeasure(1)")
	if err != nil {
		t.Fatalf("ParseDSL: %v", err)
	}
	if len(c.Measurements) != 2 {
		t.Fatalf("measurements: got %d", len(c.Measurements))
	}
	for i, m := range c.Measurements {
		if m.Qubit != i || m.ClassicalBit != i {
			t.Errorf("measurement %d: %+v", i, m)
		}
	}
}

func TestParseCommentsAndBlanks(t *testing.T) {
	src := `# build a superposition

h(0)  # trailing comment
`
	c, err := ParseDSL(src)
	if err != nil {
		t.Fatalf("ParseDSL: %v", err)
	}
	if len(c.Ops) != 1 {
		t.Errorf("gates: got %d, want 1", len(c.Ops))
	}
}

func TestParseGateNamesCaseInsensitive(t *testing.T) {
	c, err := ParseDSL("H(0)\nCNOT(0, 1)")
	if err != nil {
		t.Fatalf("ParseDSL: %v", err)
	}
	if len(c.Ops) != 2 || c.Ops[1].Gate.Name != "CNOT" {
		t.Errorf("ops: %v", c.Ops)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"frobnicate(0)", "unknown gate"},
		{"rx(0)", "requires a qubit and an angle"},
		{"rx(0, tau)", "bad angle"},
		{"qreg q[2]\nh(9)", "qubit index 9"},
		{"h(0, 1)", "requires 1 qubit"},
		{"total nonsense", "cannot parse"},
	}
	for _, tt := range tests {
		_, err := ParseDSL(tt.src)
		if err == nil {
			t.Errorf("ParseDSL(%q): expected error", tt.src)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("ParseDSL(%q): error %q does not mention %q", tt.src, err, tt.want)
		}
	}
}

func TestParseErrorNamesLine(t *testing.T) {
	_, err := ParseDSL("h(0)\nbogus(0)")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %v does not name the line", err)
	}
}
