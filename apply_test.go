package qusim

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestBellStateAmplitudes(t *testing.T) {
	s := NewZeroState(2)
	if err := ApplyGate(s, HGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate H: %v", err)
	}
	if err := ApplyGate(s, CNOTGate(), []int{0, 1}); err != nil {
		t.Fatalf("ApplyGate CNOT: %v", err)
	}

	inv := complex(1/math.Sqrt2, 0)
	want := []complex128{inv, 0, 0, inv}
	for i := range want {
		if !complexClose(s.Data[i], want[i], tol) {
			t.Errorf("amplitude %d: got %v, want %v", i, s.Data[i], want[i])
		}
	}
}

func TestHadamardAmplitudes(t *testing.T) {
	s := NewZeroState(1)
	if err := ApplyGate(s, HGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	inv := complex(1/math.Sqrt2, 0)
	for i, want := range []complex128{inv, inv} {
		if !complexClose(s.Data[i], want, tol) {
			t.Errorf("amplitude %d: got %v, want %v", i, s.Data[i], want)
		}
	}
}

func TestNormPreservedAcrossGates(t *testing.T) {
	s := NewZeroState(3)
	ops := []struct {
		gate   Gate
		qubits []int
	}{
		{HGate(), []int{0}},
		{RXGate(0.7), []int{1}},
		{CNOTGate(), []int{0, 2}},
		{TGate(), []int{2}},
		{RYGate(-1.3), []int{0}},
		{ToffoliGate(), []int{0, 1, 2}},
		{SwapGate(), []int{1, 2}},
		{RZGate(2.1), []int{1}},
	}
	for _, op := range ops {
		if err := ApplyGate(s, op.gate, op.qubits); err != nil {
			t.Fatalf("ApplyGate %s: %v", op.gate.Name, err)
		}
		if math.Abs(s.Norm()-1) > tol {
			t.Fatalf("after %s: norm %v", op.gate.Name, s.Norm())
		}
	}
}

func TestDensityMatrixStaysHermitianTraceOne(t *testing.T) {
	s := NewZeroDensityMatrix(2)
	ops := []struct {
		gate   Gate
		qubits []int
	}{
		{HGate(), []int{0}},
		{CNOTGate(), []int{0, 1}},
		{RYGate(0.9), []int{1}},
		{CZGate(), []int{1, 0}},
	}
	dim := s.Dim()
	for _, op := range ops {
		if err := ApplyGate(s, op.gate, op.qubits); err != nil {
			t.Fatalf("ApplyGate %s: %v", op.gate.Name, err)
		}
		if tr := real(trace(s.Data, dim)); math.Abs(tr-1) > tol {
			t.Fatalf("after %s: trace %v", op.gate.Name, tr)
		}
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				if cmplx.Abs(s.Data[i*dim+j]-cmplx.Conj(s.Data[j*dim+i])) > tol {
					t.Fatalf("after %s: not Hermitian at (%d,%d)", op.gate.Name, i, j)
				}
			}
		}
	}
}

func TestStatevectorAndDensityAgree(t *testing.T) {
	// The same circuit on both representations must give identical
	// probabilities, including the 3-qubit gate on the mixed path.
	ops := []struct {
		gate   Gate
		qubits []int
	}{
		{HGate(), []int{0}},
		{HGate(), []int{1}},
		{ToffoliGate(), []int{0, 1, 2}},
		{RZGate(0.4), []int{2}},
		{CNOTGate(), []int{2, 0}},
	}

	sv := NewZeroState(3)
	dm := NewZeroDensityMatrix(3)
	for _, op := range ops {
		if err := ApplyGate(sv, op.gate, op.qubits); err != nil {
			t.Fatalf("statevector %s: %v", op.gate.Name, err)
		}
		if err := ApplyGate(dm, op.gate, op.qubits); err != nil {
			t.Fatalf("density %s: %v", op.gate.Name, err)
		}
	}

	pv, pd := sv.Probabilities(), dm.Probabilities()
	for i := range pv {
		if math.Abs(pv[i]-pd[i]) > tol {
			t.Errorf("prob[%d]: statevector %v, density %v", i, pv[i], pd[i])
		}
	}
}

func TestApplyGateValidation(t *testing.T) {
	s := NewZeroState(2)

	if err := ApplyGate(s, CNOTGate(), []int{0}); err == nil {
		t.Error("expected arity error")
	} else if _, ok := err.(*GateArityError); !ok {
		t.Errorf("expected GateArityError, got %v", err)
	}

	if err := ApplyGate(s, XGate(), []int{2}); err == nil {
		t.Error("expected index error")
	} else if _, ok := err.(*QubitIndexError); !ok {
		t.Errorf("expected QubitIndexError, got %v", err)
	}

	if err := ApplyGate(s, CNOTGate(), []int{1, 1}); err == nil {
		t.Error("expected duplicate-qubit error")
	}
}

func TestCNOTControlTargetOrder(t *testing.T) {
	// Control set, target flips.
	s := NewZeroState(2)
	if err := ApplyGate(s, XGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	if err := ApplyGate(s, CNOTGate(), []int{0, 1}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	if !complexClose(s.Data[3], 1, tol) {
		t.Errorf("expected |11>, amplitudes %v", s.Data)
	}

	// Control clear, nothing happens.
	s2 := NewZeroState(2)
	if err := ApplyGate(s2, CNOTGate(), []int{0, 1}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	if !complexClose(s2.Data[0], 1, tol) {
		t.Errorf("expected |00>, amplitudes %v", s2.Data)
	}
}
