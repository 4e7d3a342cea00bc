package qusim

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// NoiseEvent records one noise-channel application during a noisy run.
type NoiseEvent struct {
	GateIndex      int     `json:"gate_index"`
	Qubit          int     `json:"qubit"`
	Channel        string  `json:"channel"`
	FidelityBefore float64 `json:"fidelity_before"`
}

// ExecutionResult is what a backend returns from running a circuit.
// FinalState is the state after the last shot; earlier shots that measured
// have already collapsed it.
type ExecutionResult struct {
	Backend      string
	FinalState   *QuantumState
	Shots        int
	Measurements []map[int]int
	History      []*QuantumState
	NoiseTrace   []NoiseEvent
	Metadata     map[string]string
	Duration     time.Duration
}

// Counts aggregates per-shot measurement outcomes into bitstring counts.
// Bits are ordered by ascending classical bit index, leftmost first.
func (r *ExecutionResult) Counts() map[string]int {
	counts := make(map[string]int)
	for _, shot := range r.Measurements {
		if len(shot) == 0 {
			continue
		}
		bits := make([]int, 0, len(shot))
		for b := range shot {
			bits = append(bits, b)
		}
		sort.Ints(bits)
		var sb strings.Builder
		for _, b := range bits {
			sb.WriteString(strconv.Itoa(shot[b]))
		}
		counts[sb.String()]++
	}
	return counts
}

// Probabilities returns the basis-state probabilities of the final state,
// or nil if no state was retained.
func (r *ExecutionResult) Probabilities() []float64 {
	if r.FinalState == nil {
		return nil
	}
	return r.FinalState.Probabilities()
}

// TotalNoiseEvents returns the number of channel applications recorded.
func (r *ExecutionResult) TotalNoiseEvents() int {
	return len(r.NoiseTrace)
}
