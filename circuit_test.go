package qusim

import "testing"

func TestAddGateValidation(t *testing.T) {
	c := NewCircuit(2, 0)

	if err := c.AddGate(HGate(), 0); err != nil {
		t.Fatalf("AddGate: %v", err)
	}
	if err := c.AddGate(HGate(), 3); err == nil {
		t.Error("expected index error")
	} else if _, ok := err.(*QubitIndexError); !ok {
		t.Errorf("expected QubitIndexError, got %v", err)
	}
	if err := c.AddGate(CNOTGate(), 0); err == nil {
		t.Error("expected arity error")
	} else if _, ok := err.(*GateArityError); !ok {
		t.Errorf("expected GateArityError, got %v", err)
	}
}

func TestMeasureAutoAssignsClassicalBit(t *testing.T) {
	c := NewCircuit(3, 0)
	for q := 0; q < 3; q++ {
		if err := c.Measure(q, -1); err != nil {
			t.Fatalf("Measure: %v", err)
		}
	}
	for i, m := range c.Measurements {
		if m.ClassicalBit != i {
			t.Errorf("measurement %d: classical bit %d", i, m.ClassicalBit)
		}
	}
}

func TestMeasureClassicalBitRange(t *testing.T) {
	c := NewCircuit(2, 2)
	if err := c.Measure(0, 5); err == nil {
		t.Error("expected classical-bit range error")
	}
	if err := c.Measure(4, 0); err == nil {
		t.Error("expected qubit range error")
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Circuit
		want  int
	}{
		{
			"empty", func() *Circuit { return NewCircuit(2, 0) }, 0,
		},
		{
			"parallel singles", func() *Circuit {
				c := NewCircuit(2, 0)
				return c.H(0).H(1)
			}, 1,
		},
		{
			"serial chain", func() *Circuit {
				c := NewCircuit(1, 0)
				return c.H(0).T(0).H(0)
			}, 3,
		},
		{
			"bell", func() *Circuit {
				c := NewCircuit(2, 0)
				return c.H(0).CNOT(0, 1)
			}, 2,
		},
		{
			"interleaved", func() *Circuit {
				c := NewCircuit(3, 0)
				return c.H(0).H(2).CNOT(0, 1).X(2)
			}, 2,
		},
	}
	for _, tt := range tests {
		if got := tt.build().Depth(); got != tt.want {
			t.Errorf("%s: depth %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGateCounts(t *testing.T) {
	c := NewCircuit(2, 0)
	c.H(0).H(1).CNOT(0, 1)
	counts := c.GateCounts()
	if counts["H"] != 2 || counts["CNOT"] != 1 {
		t.Errorf("counts: %v", counts)
	}
}

func TestIsClifford(t *testing.T) {
	clifford := NewCircuit(2, 0)
	clifford.H(0).S(1).CNOT(0, 1)
	if !clifford.IsClifford() {
		t.Error("expected Clifford circuit")
	}

	mixed := NewCircuit(2, 0)
	mixed.H(0).T(1)
	if mixed.IsClifford() {
		t.Error("expected non-Clifford circuit")
	}
}
