package qusim

// StabilizerBackend accepts only Clifford circuits. It is a capability
// shim, not a complexity win: after validating the gate set it delegates
// to full statevector simulation and relabels the result. A
// tableau-based simulator could slot in behind the same contract.
type StabilizerBackend struct {
	delegate *StatevectorBackend
}

// NewStabilizerBackend returns a Clifford-only backend.
func NewStabilizerBackend() *StabilizerBackend {
	return &StabilizerBackend{delegate: NewStatevectorBackend()}
}

func (b *StabilizerBackend) Name() string { return BackendStabilizer }

// CanExecute refuses circuits containing any non-Clifford gate, naming
// the first offender.
func (b *StabilizerBackend) CanExecute(c *Circuit) (bool, string) {
	if err := c.Validate(); err != nil {
		return false, err.Error()
	}
	for _, op := range c.Ops {
		if !IsCliffordGate(op.Gate.Name) {
			return false, (&NonCliffordGateError{Gate: op.Gate.Name}).Error()
		}
	}
	return true, memoryWarning(c.NumQubits, false)
}

// Execute validates the Clifford gate set, then delegates.
func (b *StabilizerBackend) Execute(c *Circuit, opts RunOptions) (*ExecutionResult, error) {
	for _, op := range c.Ops {
		if !IsCliffordGate(op.Gate.Name) {
			return nil, &NonCliffordGateError{Gate: op.Gate.Name}
		}
	}
	res, err := b.delegate.Execute(c, opts)
	if err != nil {
		return nil, err
	}
	res.Backend = b.Name()
	res.Metadata["backend"] = b.Name()
	res.Metadata["delegated_to"] = b.delegate.Name()
	return res, nil
}
