package qusim

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

const tol = 1e-9

func complexClose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) < tol
}

func TestNewZeroState(t *testing.T) {
	s := NewZeroState(3)
	if len(s.Data) != 8 {
		t.Fatalf("expected 8 amplitudes, got %d", len(s.Data))
	}
	if !complexClose(s.Data[0], 1, tol) {
		t.Errorf("amplitude 0: got %v, want 1", s.Data[0])
	}
	if math.Abs(s.Norm()-1) > tol {
		t.Errorf("norm: got %v, want 1", s.Norm())
	}
}

func TestQubitZeroIsMostSignificantBit(t *testing.T) {
	// X on qubit 0 of a 2-qubit register must move the amplitude to
	// basis index 2 (|10>), not index 1.
	s := NewZeroState(2)
	if err := ApplyGate(s, XGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	if !complexClose(s.Data[2], 1, tol) {
		t.Errorf("amplitude at |10>: got %v, want 1", s.Data[2])
	}
	if !complexClose(s.Data[1], 0, tol) {
		t.Errorf("amplitude at |01>: got %v, want 0", s.Data[1])
	}
}

func TestNewStateVectorDimensionCheck(t *testing.T) {
	_, err := NewStateVector([]complex128{1, 0, 0}, 2)
	if _, ok := err.(*DimensionMismatchError); !ok {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
}

func TestProbabilities(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	s, err := NewStateVector([]complex128{inv, 0, 0, inv}, 2)
	if err != nil {
		t.Fatalf("NewStateVector: %v", err)
	}
	probs := s.Probabilities()
	want := []float64{0.5, 0, 0, 0.5}
	for i, p := range probs {
		if math.Abs(p-want[i]) > tol {
			t.Errorf("prob[%d]: got %v, want %v", i, p, want[i])
		}
	}
}

func TestPurity(t *testing.T) {
	pure := NewZeroDensityMatrix(1)
	if got := pure.Purity(); math.Abs(got-1) > tol {
		t.Errorf("pure state purity: got %v, want 1", got)
	}

	// Maximally mixed single qubit: purity 1/2.
	mixed, err := NewDensityMatrix([]complex128{0.5, 0, 0, 0.5}, 1)
	if err != nil {
		t.Fatalf("NewDensityMatrix: %v", err)
	}
	if got := mixed.Purity(); math.Abs(got-0.5) > tol {
		t.Errorf("mixed state purity: got %v, want 0.5", got)
	}
}

func TestDensityMatrixRoundTrip(t *testing.T) {
	s := NewZeroState(2)
	if err := ApplyGate(s, HGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	if err := ApplyGate(s, CNOTGate(), []int{0, 1}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}

	back, err := s.ToDensityMatrix().ToStatevector()
	if err != nil {
		t.Fatalf("ToStatevector: %v", err)
	}

	// Recovery is up to a global phase: fix it by the largest amplitude.
	var phase complex128 = 1
	for i := range s.Data {
		if cmplx.Abs(s.Data[i]) > 0.1 {
			phase = s.Data[i] / back.Data[i]
			break
		}
	}
	for i := range s.Data {
		if !complexClose(back.Data[i]*phase, s.Data[i], 1e-6) {
			t.Errorf("amplitude %d: got %v, want %v", i, back.Data[i]*phase, s.Data[i])
		}
	}
}

func TestToStatevectorRejectsMixedState(t *testing.T) {
	mixed, err := NewDensityMatrix([]complex128{0.5, 0, 0, 0.5}, 1)
	if err != nil {
		t.Fatalf("NewDensityMatrix: %v", err)
	}
	_, err = mixed.ToStatevector()
	var extractErr *MixedStateExtractionError
	if e, ok := err.(*MixedStateExtractionError); ok {
		extractErr = e
	} else {
		t.Fatalf("expected MixedStateExtractionError, got %v", err)
	}
	if math.Abs(extractErr.Purity-0.5) > tol {
		t.Errorf("reported purity: got %v, want 0.5", extractErr.Purity)
	}
}

func TestMeasureCollapsesStatevector(t *testing.T) {
	s := NewZeroState(1)
	if err := ApplyGate(s, HGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	outcome, err := s.Measure(0, rng)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if outcome != 0 && outcome != 1 {
		t.Fatalf("outcome: got %d", outcome)
	}

	// Collapsed state must be a basis state with unit norm.
	if math.Abs(s.Norm()-1) > tol {
		t.Errorf("post-measurement norm: got %v, want 1", s.Norm())
	}
	wantIdx := outcome // single qubit: outcome bit is the basis index
	if cmplx.Abs(s.Data[wantIdx]) < 1-tol {
		t.Errorf("amplitude at %d: got %v, want magnitude 1", wantIdx, s.Data[wantIdx])
	}

	// Re-measuring the collapsed state repeats the outcome.
	for i := 0; i < 10; i++ {
		again, err := s.Measure(0, rng)
		if err != nil {
			t.Fatalf("Measure: %v", err)
		}
		if again != outcome {
			t.Fatalf("re-measurement %d: got %d, want %d", i, again, outcome)
		}
	}
}

func TestMeasureDensityMatrix(t *testing.T) {
	s := NewZeroDensityMatrix(1)
	if err := ApplyGate(s, HGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	outcome, err := s.Measure(0, rng)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	// Trace renormalized to 1 and concentrated in the outcome subspace.
	probs := s.Probabilities()
	if math.Abs(probs[outcome]-1) > tol {
		t.Errorf("prob[%d]: got %v, want 1", outcome, probs[outcome])
	}
}

func TestMeasureQubitRange(t *testing.T) {
	s := NewZeroState(2)
	rng := rand.New(rand.NewSource(1))
	if _, err := s.Measure(2, rng); err == nil {
		t.Fatal("expected error for out-of-range qubit")
	}
	if _, err := s.Measure(-1, rng); err == nil {
		t.Fatal("expected error for negative qubit")
	}
}

func TestExpectationValue(t *testing.T) {
	// <0|Z|0> = 1, <+|Z|+> = 0, <1|Z|1> = -1
	z := ZGate().Matrix()

	s := NewZeroState(1)
	if got := s.ExpectationValue(z); math.Abs(got-1) > tol {
		t.Errorf("<0|Z|0>: got %v, want 1", got)
	}

	if err := ApplyGate(s, HGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	if got := s.ExpectationValue(z); math.Abs(got) > tol {
		t.Errorf("<+|Z|+>: got %v, want 0", got)
	}

	s1 := NewZeroState(1)
	if err := ApplyGate(s1, XGate(), []int{0}); err != nil {
		t.Fatalf("ApplyGate: %v", err)
	}
	if got := s1.ExpectationValue(z); math.Abs(got+1) > tol {
		t.Errorf("<1|Z|1>: got %v, want -1", got)
	}
}

func TestCopyIsDeep(t *testing.T) {
	s := NewZeroState(1)
	s.ClassicalBits = map[string]int{"c0": 1}
	c := s.Copy()
	c.Data[0] = 0
	c.ClassicalBits["c0"] = 0
	if !complexClose(s.Data[0], 1, tol) {
		t.Error("copy shares amplitude storage")
	}
	if s.ClassicalBits["c0"] != 1 {
		t.Error("copy shares classical bits")
	}
}
