package qusim

import "time"

// NoisyBackend wraps mixed-state execution with a per-qubit noise model:
// after each gate, every touched qubit's registered channels are applied
// in registration order. Alongside the noisy state it evolves a noiseless
// reference, so each noise event can record the fidelity against the
// ideal state at the moment the channel fires.
type NoisyBackend struct {
	base     *DensityMatrixBackend
	channels map[int][]NoiseChannel
}

// NewNoisyBackend returns a noisy backend over a fresh density-matrix
// base.
func NewNoisyBackend() *NoisyBackend {
	return &NoisyBackend{
		base:     NewDensityMatrixBackend(),
		channels: make(map[int][]NoiseChannel),
	}
}

// NoiseModel is the declarative form of a per-qubit channel map, used by
// the selector and the API layer to request a noisy run.
type NoiseModel struct {
	channels map[int][]NoiseChannel
}

// NewNoiseModel returns an empty noise model.
func NewNoiseModel() *NoiseModel {
	return &NoiseModel{channels: make(map[int][]NoiseChannel)}
}

// Add registers a channel on a qubit and returns the model for chaining.
func (m *NoiseModel) Add(qubit int, ch NoiseChannel) *NoiseModel {
	m.channels[qubit] = append(m.channels[qubit], ch)
	return m
}

// Empty reports whether no channel is registered.
func (m *NoiseModel) Empty() bool {
	return m == nil || len(m.channels) == 0
}

// NewNoisyBackendFromModel returns a noisy backend preloaded with the
// model's channels.
func NewNoisyBackendFromModel(m *NoiseModel) *NoisyBackend {
	b := NewNoisyBackend()
	if m != nil {
		for q, chs := range m.channels {
			b.channels[q] = append(b.channels[q], chs...)
		}
	}
	return b
}

func (b *NoisyBackend) Name() string { return BackendNoisy }

// AddNoise registers a channel on a qubit. Channels accumulate; each
// registration fires once per touching gate.
func (b *NoisyBackend) AddNoise(qubit int, ch NoiseChannel) {
	b.channels[qubit] = append(b.channels[qubit], ch)
}

// HasNoise reports whether any channel is registered.
func (b *NoisyBackend) HasNoise() bool {
	return len(b.channels) > 0
}

// CanExecute matches the underlying density-matrix backend.
func (b *NoisyBackend) CanExecute(c *Circuit) (bool, string) {
	return b.base.CanExecute(c)
}

// Execute runs the circuit with noise interleaved after every gate.
func (b *NoisyBackend) Execute(c *Circuit, opts RunOptions) (*ExecutionResult, error) {
	start := time.Now()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	state, err := initialDensityState(c, opts.InitialState)
	if err != nil {
		return nil, err
	}
	ideal := state.Copy()

	var history []*QuantumState
	var noiseTrace []NoiseEvent
	for i, op := range c.Ops {
		if err := ApplyGate(state, op.Gate, op.Qubits); err != nil {
			return nil, err
		}
		if err := ApplyGate(ideal, op.Gate, op.Qubits); err != nil {
			return nil, err
		}
		for _, q := range op.Qubits {
			for _, ch := range b.channels[q] {
				fid, err := Fidelity(state, ideal)
				if err != nil {
					return nil, err
				}
				if err := ch.Apply(state, q); err != nil {
					return nil, err
				}
				noiseTrace = append(noiseTrace, NoiseEvent{
					GateIndex:      i,
					Qubit:          q,
					Channel:        ch.Name,
					FidelityBefore: fid,
				})
			}
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

	md := baseMetadata(b.Name(), c)
	return &ExecutionResult{
		Backend:      b.Name(),
		FinalState:   state,
		Shots:        opts.shots(),
		Measurements: shots,
		History:      history,
		NoiseTrace:   noiseTrace,
		Metadata:     md,
		Duration:     time.Since(start),
	}, nil
}
