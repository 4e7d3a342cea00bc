package qusim

import (
	"fmt"
	"strings"
)

// QubitIndexError reports a gate or measurement referencing a qubit
// outside [0, NumQubits).
type QubitIndexError struct {
	Qubit     int
	NumQubits int
}

func (e *QubitIndexError) Error() string {
	return fmt.Sprintf("qubit index %d out of range [0, %d)", e.Qubit, e.NumQubits)
}

// GateArityError reports a qubit list whose length does not match the
// gate's declared arity.
type GateArityError struct {
	Gate string
	Want int
	Got  int
}

func (e *GateArityError) Error() string {
	return fmt.Sprintf("gate %s requires %d qubits, got %d", e.Gate, e.Want, e.Got)
}

// NonUnitaryGateError reports a custom gate matrix that failed the
// unitarity check at construction.
type NonUnitaryGateError struct {
	Gate string
}

func (e *NonUnitaryGateError) Error() string {
	return fmt.Sprintf("gate %s: matrix is not unitary", e.Gate)
}

// InvalidChannelParameterError reports a channel probability or damping
// parameter outside [0, 1].
type InvalidChannelParameterError struct {
	Channel string
	Param   string
	Value   float64
}

func (e *InvalidChannelParameterError) Error() string {
	return fmt.Sprintf("channel %s: parameter %s must be in [0, 1], got %g", e.Channel, e.Param, e.Value)
}

// IncompleteChannelError reports a custom Kraus set that fails the
// completeness relation sum K_i^dag K_i = I.
type IncompleteChannelError struct {
	Channel string
}

func (e *IncompleteChannelError) Error() string {
	return fmt.Sprintf("channel %s: Kraus operators do not satisfy completeness", e.Channel)
}

// DimensionMismatchError reports an initial state whose size does not
// match the circuit's qubit count.
type DimensionMismatchError struct {
	Got  int
	Want int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("state dimension %d does not match expected %d", e.Got, e.Want)
}

// NonCliffordGateError reports a non-Clifford gate handed to the
// stabilizer backend.
type NonCliffordGateError struct {
	Gate string
}

func (e *NonCliffordGateError) Error() string {
	return fmt.Sprintf("non-Clifford gate %s: stabilizer backend supports only Clifford gates", e.Gate)
}

// MixedStateExtractionError reports a statevector extraction attempted
// on a genuinely mixed density matrix.
type MixedStateExtractionError struct {
	Purity float64
}

func (e *MixedStateExtractionError) Error() string {
	return fmt.Sprintf("cannot extract statevector from mixed state (purity %g)", e.Purity)
}

// UnknownBackendError reports an unrecognized backend name given to the
// selector.
type UnknownBackendError struct {
	Name  string
	Known []string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend %q, available: %s", e.Name, strings.Join(e.Known, ", "))
}
