package qusim

import "time"

// StatevectorBackend simulates pure states as 2^n amplitude vectors. It is
// the cheapest exact backend and the default for non-Clifford circuits.
type StatevectorBackend struct{}

// NewStatevectorBackend returns a pure-state backend.
func NewStatevectorBackend() *StatevectorBackend {
	return &StatevectorBackend{}
}

func (b *StatevectorBackend) Name() string { return BackendStatevector }

// CanExecute accepts any valid circuit, attaching a memory warning for
// large qubit counts.
func (b *StatevectorBackend) CanExecute(c *Circuit) (bool, string) {
	if err := c.Validate(); err != nil {
		return false, err.Error()
	}
	return true, memoryWarning(c.NumQubits, false)
}

// Execute runs the circuit on a pure state. Mixed initial states are not
// representable here and yield a DimensionMismatchError.
func (b *StatevectorBackend) Execute(c *Circuit, opts RunOptions) (*ExecutionResult, error) {
	start := time.Now()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var state *QuantumState
	dim := 1 << c.NumQubits
	switch {
	case opts.InitialState == nil:
		state = NewZeroState(c.NumQubits)
	case opts.InitialState.IsDensityMatrix:
		return nil, &DimensionMismatchError{Got: len(opts.InitialState.Data), Want: dim}
	case len(opts.InitialState.Data) != dim:
		return nil, &DimensionMismatchError{Got: len(opts.InitialState.Data), Want: dim}
	default:
		state = opts.InitialState.Copy()
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
