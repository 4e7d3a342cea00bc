package qusim

import (
	"math"
	"testing"
)

func TestStandardGatesAreUnitary(t *testing.T) {
	gates := []Gate{
		XGate(), YGate(), ZGate(), HGate(), SGate(), TGate(),
		RXGate(0.3), RYGate(1.1), RZGate(-2.5),
		CNOTGate(), CZGate(), SwapGate(), ToffoliGate(),
	}
	for _, g := range gates {
		dim := 1 << g.Arity
		if !isUnitary(g.Matrix(), dim, 1e-12) {
			t.Errorf("%s: matrix is not unitary", g.Name)
		}
	}
}

func TestRotationGateAngles(t *testing.T) {
	// RX(2pi) = -I, RX(0) = I
	ident := RXGate(0)
	if !matricesClose(ident.Matrix(), identity(2), 1e-12) {
		t.Error("RX(0) is not the identity")
	}

	full := RXGate(2 * math.Pi)
	minusI := []complex128{-1, 0, 0, -1}
	if !matricesClose(full.Matrix(), minusI, 1e-12) {
		t.Error("RX(2pi) is not -I")
	}
}

func TestToffoliTruthTable(t *testing.T) {
	// Only |110> flips to |111>.
	for input := 0; input < 8; input++ {
		s := NewZeroState(3)
		s.Data[0] = 0
		s.Data[input] = 1
		if err := ApplyGate(s, ToffoliGate(), []int{0, 1, 2}); err != nil {
			t.Fatalf("ApplyGate: %v", err)
		}
		want := input
		if input == 6 {
			want = 7
		} else if input == 7 {
			want = 6
		}
		if !complexClose(s.Data[want], 1, tol) {
			t.Errorf("input %03b: amplitude not at %03b", input, want)
		}
	}
}

func TestCustomGateValidation(t *testing.T) {
	// A valid custom gate: sqrt(X).
	h := complex(0.5, 0)
	sqrtX := []complex128{
		h + h*1i, h - h*1i,
		h - h*1i, h + h*1i,
	}
	if _, err := CustomGate("SX", sqrtX, 1); err != nil {
		t.Errorf("sqrt(X): unexpected error %v", err)
	}

	// Non-unitary matrix must be rejected at construction.
	bad := []complex128{1, 1, 0, 1}
	_, err := CustomGate("BAD", bad, 1)
	if _, ok := err.(*NonUnitaryGateError); !ok {
		t.Fatalf("expected NonUnitaryGateError, got %v", err)
	}

	// Wrong size must be rejected.
	_, err = CustomGate("TINY", []complex128{1, 0}, 1)
	if _, ok := err.(*DimensionMismatchError); !ok {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
}

func TestGateString(t *testing.T) {
	tests := []struct {
		gate Gate
		want string
	}{
		{XGate(), "X"},
		{RXGate(math.Pi / 2), "RX(pi/2)"},
		{RZGate(math.Pi), "RZ(pi)"},
	}
	for _, tt := range tests {
		if got := tt.gate.String(); got != tt.want {
			t.Errorf("String(): got %q, want %q", got, tt.want)
		}
	}
}

func TestCliffordGateSet(t *testing.T) {
	clifford := []string{"H", "S", "CNOT", "CZ", "X", "Y", "Z", "SWAP"}
	for _, name := range clifford {
		if !IsCliffordGate(name) {
			t.Errorf("%s: expected Clifford", name)
		}
	}
	for _, name := range []string{"T", "RX", "RY", "RZ", "Toffoli"} {
		if IsCliffordGate(name) {
			t.Errorf("%s: expected non-Clifford", name)
		}
	}
}
