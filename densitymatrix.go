package qusim

import "time"

// DensityMatrixBackend simulates mixed states as 4^n flat matrices. It
// costs the square of a statevector of equal size but supports noise and
// mixed initial states.
type DensityMatrixBackend struct{}

// NewDensityMatrixBackend returns a mixed-state backend.
func NewDensityMatrixBackend() *DensityMatrixBackend {
	return &DensityMatrixBackend{}
}

func (b *DensityMatrixBackend) Name() string { return BackendDensityMatrix }

// CanExecute accepts any valid circuit, attaching a memory warning for
// large qubit counts.
func (b *DensityMatrixBackend) CanExecute(c *Circuit) (bool, string) {
	if err := c.Validate(); err != nil {
		return false, err.Error()
	}
	return true, memoryWarning(c.NumQubits, true)
}

// Execute runs the circuit on a density matrix. Pure initial states are
// promoted to |psi><psi|.
func (b *DensityMatrixBackend) Execute(c *Circuit, opts RunOptions) (*ExecutionResult, error) {
	start := time.Now()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	state, err := initialDensityState(c, opts.InitialState)
	if err != nil {
		return nil, err
	}

	var history []*QuantumState
	for _, op := range c.Ops {
		if err := ApplyGate(state, op.Gate, op.Qubits); err != nil {
			return nil, err
		}
		if opts.TrackHistory {
			history = append(history, state.Copy())
		}
	}

	rng := opts.rng()
	shots, err := runShots(state, c, opts.shots(), rng)
	if err != nil {
		return nil, err
	}
	recordClassicalBits(state, shots)

	return &ExecutionResult{
		Backend:      b.Name(),
		FinalState:   state,
		Shots:        opts.shots(),
		Measurements: shots,
		History:      history,
		Metadata:     baseMetadata(b.Name(), c),
		Duration:     time.Since(start),
	}, nil
}

// initialDensityState builds the starting density matrix for a mixed-state
// run: |0..0><0..0| by default, a copy of a supplied density matrix, or
// the promotion of a supplied pure state.
func initialDensityState(c *Circuit, initial *QuantumState) (*QuantumState, error) {
	if initial == nil {
		return NewZeroDensityMatrix(c.NumQubits), nil
	}
	dim := 1 << c.NumQubits
	if initial.IsDensityMatrix {
		if len(initial.Data) != dim*dim {
			return nil, &DimensionMismatchError{Got: len(initial.Data), Want: dim * dim}
		}
		return initial.Copy(), nil
	}
	if len(initial.Data) != dim {
		return nil, &DimensionMismatchError{Got: len(initial.Data), Want: dim}
	}
	return initial.ToDensityMatrix(), nil
}
