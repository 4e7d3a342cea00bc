package qusim

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Backend executes circuits against one state representation.
//
// CanExecute never fails; it reports whether the backend can run the
// circuit plus an optional warning or refusal reason, and is used by the
// selector and by pre-flight diagnostics. Execute re-validates everything
// and returns real errors.
type Backend interface {
	Name() string
	CanExecute(c *Circuit) (bool, string)
	Execute(c *Circuit, opts RunOptions) (*ExecutionResult, error)
}

// RunOptions carries per-execution settings. A zero Seed draws one from
// the clock; any other value makes the run fully reproducible.
type RunOptions struct {
	InitialState *QuantumState
	Shots        int
	TrackHistory bool
	Seed         int64
}

func (o RunOptions) shots() int {
	if o.Shots < 1 {
		return 1
	}
	return o.Shots
}

// rng returns the RNG for this execution. Each Execute call owns its own
// generator; nothing touches process-global RNG state.
func (o RunOptions) rng() *rand.Rand {
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

const memoryWarnGB = 10.0

// memoryEstimateGB returns the working-set estimate for an n-qubit state:
// 16 bytes per complex128 amplitude, squared dimension for a density
// matrix.
func memoryEstimateGB(numQubits int, densityMatrix bool) float64 {
	bits := numQubits
	if densityMatrix {
		bits *= 2
	}
	bytes := 16.0
	for i := 0; i < bits; i++ {
		bytes *= 2
	}
	return bytes / (1 << 30)
}

// memoryWarning returns a non-fatal warning string when the estimate
// crosses the threshold, or "" otherwise. Large circuits are warned
// about, never blocked.
func memoryWarning(numQubits int, densityMatrix bool) string {
	gb := memoryEstimateGB(numQubits, densityMatrix)
	if gb <= memoryWarnGB {
		return ""
	}
	kind := "statevector"
	if densityMatrix {
		kind = "density matrix"
	}
	return fmt.Sprintf("%d-qubit %s needs an estimated %.1f GB (threshold %.0f GB)", numQubits, kind, gb, memoryWarnGB)
}

// runShots samples the circuit's measurements shots times against the
// given state, in place.
//
// The state is deliberately not reset between shots: shot 0 collapses it,
// and every later shot re-measures the collapsed state, deterministically
// repeating shot 0's outcomes. Callers wanting i.i.d. sampling run the
// circuit once per shot.
func runShots(s *QuantumState, c *Circuit, shots int, rng *rand.Rand) ([]map[int]int, error) {
	results := make([]map[int]int, 0, shots)
	for shot := 0; shot < shots; shot++ {
		outcomes := make(map[int]int, len(c.Measurements))
		for _, m := range c.Measurements {
			v, err := s.Measure(m.Qubit, rng)
			if err != nil {
				return nil, err
			}
			outcomes[m.ClassicalBit] = v
		}
		results = append(results, outcomes)
	}
	return results, nil
}

// recordClassicalBits mirrors the last shot's outcomes into the state for
// consumers that read bits off the state itself.
func recordClassicalBits(s *QuantumState, shots []map[int]int) {
	if len(shots) == 0 {
		return
	}
	last := shots[len(shots)-1]
	if len(last) == 0 {
		return
	}
	if s.ClassicalBits == nil {
		s.ClassicalBits = make(map[string]int, len(last))
	}
	for bit, v := range last {
		s.ClassicalBits["c"+strconv.Itoa(bit)] = v
	}
}

// baseMetadata assembles the metadata every backend reports.
func baseMetadata(name string, c *Circuit) map[string]string {
	md := map[string]string{
		"backend":    name,
		"num_qubits": strconv.Itoa(c.NumQubits),
		"gate_count": strconv.Itoa(len(c.Ops)),
		"depth":      strconv.Itoa(c.Depth()),
	}
	if w := memoryWarning(c.NumQubits, name == BackendDensityMatrix || name == BackendNoisy); w != "" {
		md["memory_warning"] = w
	}
	return md
}

// Backend names recognized by the selector.
const (
	BackendStatevector   = "statevector"
	BackendDensityMatrix = "density_matrix"
	BackendStabilizer    = "stabilizer"
	BackendNoisy         = "noisy"
)
