package qusim

// BackendInfo is static metadata about one backend, for introspection.
type BackendInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CostScaling string `json:"cost_scaling"`
}

var backendCatalog = []BackendInfo{
	{
		Name:        BackendStatevector,
		Description: "exact pure-state simulation on a 2^n amplitude vector",
		CostScaling: "O(2^n) memory, O(g*2^n) time",
	},
	{
		Name:        BackendDensityMatrix,
		Description: "mixed-state simulation on a 4^n density matrix",
		CostScaling: "O(4^n) memory, O(g*4^n) time",
	},
	{
		Name:        BackendStabilizer,
		Description: "Clifford-only path, currently delegating to statevector",
		CostScaling: "O(2^n) memory, O(g*2^n) time",
	},
	{
		Name:        BackendNoisy,
		Description: "density-matrix simulation with per-qubit Kraus channels after each gate",
		CostScaling: "O(4^n) memory, O((g+k)*4^n) time",
	},
}

// BackendSelector picks a backend for a circuit: an explicitly named one,
// the stabilizer path for all-Clifford circuits, or statevector otherwise.
// A non-empty noise model forces the noisy backend on every path.
type BackendSelector struct{}

// NewBackendSelector returns a selector.
func NewBackendSelector() *BackendSelector {
	return &BackendSelector{}
}

// KnownBackends returns the catalog of selectable backends.
func (s *BackendSelector) KnownBackends() []BackendInfo {
	out := make([]BackendInfo, len(backendCatalog))
	copy(out, backendCatalog)
	return out
}

// Describe returns the metadata for one backend name.
func (s *BackendSelector) Describe(name string) (BackendInfo, error) {
	for _, info := range backendCatalog {
		if info.Name == name {
			return info, nil
		}
	}
	return BackendInfo{}, &UnknownBackendError{Name: name, Known: s.knownNames()}
}

func (s *BackendSelector) knownNames() []string {
	names := make([]string, len(backendCatalog))
	for i, info := range backendCatalog {
		names[i] = info.Name
	}
	return names
}

// Select picks a backend for the circuit. preferred may be empty for
// automatic dispatch; an unrecognized name is an UnknownBackendError.
// When noise is non-empty the result is always the noisy backend.
func (s *BackendSelector) Select(c *Circuit, preferred string, noise *NoiseModel) (Backend, error) {
	if preferred != "" {
		if _, err := s.Describe(preferred); err != nil {
			return nil, err
		}
	}
	if !noise.Empty() {
		return NewNoisyBackendFromModel(noise), nil
	}

	switch preferred {
	case BackendStatevector:
		return NewStatevectorBackend(), nil
	case BackendDensityMatrix:
		return NewDensityMatrixBackend(), nil
	case BackendStabilizer:
		return NewStabilizerBackend(), nil
	case BackendNoisy:
		return NewNoisyBackend(), nil
	}

	if c != nil && c.IsClifford() && len(c.Ops) > 0 {
		return NewStabilizerBackend(), nil
	}
	return NewStatevectorBackend(), nil
}
