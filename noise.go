package qusim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// NoiseChannel is an immutable set of single-qubit Kraus operators.
// Channels are stateless and reusable across applications.
type NoiseChannel struct {
	Name   string
	Params map[string]float64
	kraus  [][]complex128 // each 2x2 flat
}

// KrausOperators returns the channel's 2x2 Kraus operators. Callers must
// not mutate them.
func (nc NoiseChannel) KrausOperators() [][]complex128 {
	return nc.kraus
}

func (nc NoiseChannel) String() string {
	if len(nc.Params) == 0 {
		return nc.Name
	}
	keys := make([]string, 0, len(nc.Params))
	for k := range nc.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, nc.Params[k])
	}
	return fmt.Sprintf("%s(%s)", nc.Name, strings.Join(parts, ", "))
}

// Apply transforms the density matrix in place by embedding each Kraus
// operator on the target qubit and summing K rho K^dag.
func (nc NoiseChannel) Apply(s *QuantumState, qubit int) error {
	if !s.IsDensityMatrix {
		return &DimensionMismatchError{Got: len(s.Data), Want: s.Dim() * s.Dim()}
	}
	if qubit < 0 || qubit >= s.NumQubits {
		return &QubitIndexError{Qubit: qubit, NumQubits: s.NumQubits}
	}
	embedded := embedKraus(nc.kraus, s.NumQubits, qubit)
	s.Data = ApplyKraus(s.Data, s.Dim(), embedded)
	return nil
}

func checkProbability(channel, param string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return &InvalidChannelParameterError{Channel: channel, Param: param, Value: v}
	}
	return nil
}

// Depolarizing returns the channel
// eps(rho) = (1-p) rho + (p/3)(X rho X + Y rho Y + Z rho Z).
func Depolarizing(p float64) (NoiseChannel, error) {
	if err := checkProbability("Depolarizing", "p", p); err != nil {
		return NoiseChannel{}, err
	}
	s0 := complex(math.Sqrt(1-p), 0)
	s3 := complex(math.Sqrt(p/3), 0)
	return NoiseChannel{
		Name:   "Depolarizing",
		Params: map[string]float64{"p": p},
		kraus: [][]complex128{
			{s0, 0, 0, s0},
			{0, s3, s3, 0},
			{0, -1i * s3, 1i * s3, 0},
			{s3, 0, 0, -s3},
		},
	}, nil
}

// AmplitudeDamping returns the energy-dissipation channel that decays
// |1> to |0> with probability gamma.
func AmplitudeDamping(gamma float64) (NoiseChannel, error) {
	if err := checkProbability("AmplitudeDamping", "gamma", gamma); err != nil {
		return NoiseChannel{}, err
	}
	return NoiseChannel{
		Name:   "AmplitudeDamping",
		Params: map[string]float64{"gamma": gamma},
		kraus: [][]complex128{
			{1, 0, 0, complex(math.Sqrt(1-gamma), 0)},
			{0, complex(math.Sqrt(gamma), 0), 0, 0},
		},
	}, nil
}

// PhaseDamping returns the dephasing channel: phase coherence decays with
// parameter gamma, without energy loss.
func PhaseDamping(gamma float64) (NoiseChannel, error) {
	if err := checkProbability("PhaseDamping", "gamma", gamma); err != nil {
		return NoiseChannel{}, err
	}
	s0 := complex(math.Sqrt(1-gamma), 0)
	sg := complex(math.Sqrt(gamma), 0)
	return NoiseChannel{
		Name:   "PhaseDamping",
		Params: map[string]float64{"gamma": gamma},
		kraus: [][]complex128{
			{s0, 0, 0, s0},
			{sg, 0, 0, 0},
			{0, 0, 0, sg},
		},
	}, nil
}

// BitFlip returns the channel applying X with probability p.
func BitFlip(p float64) (NoiseChannel, error) {
	if err := checkProbability("BitFlip", "p", p); err != nil {
		return NoiseChannel{}, err
	}
	s0 := complex(math.Sqrt(1-p), 0)
	sp := complex(math.Sqrt(p), 0)
	return NoiseChannel{
		Name:   "BitFlip",
		Params: map[string]float64{"p": p},
		kraus: [][]complex128{
			{s0, 0, 0, s0},
			{0, sp, sp, 0},
		},
	}, nil
}

// PhaseFlip returns the channel applying Z with probability p.
func PhaseFlip(p float64) (NoiseChannel, error) {
	if err := checkProbability("PhaseFlip", "p", p); err != nil {
		return NoiseChannel{}, err
	}
	s0 := complex(math.Sqrt(1-p), 0)
	sp := complex(math.Sqrt(p), 0)
	return NoiseChannel{
		Name:   "PhaseFlip",
		Params: map[string]float64{"p": p},
		kraus: [][]complex128{
			{s0, 0, 0, s0},
			{sp, 0, 0, -sp},
		},
	}, nil
}

// CustomChannel builds a channel from explicit 2x2 Kraus operators.
// Construction fails unless the set satisfies completeness within 1e-8.
func CustomChannel(name string, kraus [][]complex128) (NoiseChannel, error) {
	for _, k := range kraus {
		if len(k) != 4 {
			return NoiseChannel{}, &DimensionMismatchError{Got: len(k), Want: 4}
		}
	}
	if !VerifyCompleteness(kraus, 2, 1e-8) {
		return NoiseChannel{}, &IncompleteChannelError{Channel: name}
	}
	copied := make([][]complex128, len(kraus))
	for i, k := range kraus {
		c := make([]complex128, len(k))
		copy(c, k)
		copied[i] = c
	}
	return NoiseChannel{Name: name, kraus: copied}, nil
}
