package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"qusim"
)

var (
	runBackend string
	runShots   int
	runSeed    int64
	runHistory bool
	runNoise   []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a circuit from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}

		circuit, err := qusim.ParseDSL(source)
		if err != nil {
			return err
		}

		noise, err := parseNoiseFlags(runNoise)
		if err != nil {
			return err
		}

		backend, err := qusim.NewBackendSelector().Select(circuit, backendOrDefault(), noise)
		if err != nil {
			return err
		}

		result, err := backend.Execute(circuit, qusim.RunOptions{
			Shots:        shotsOrDefault(),
			Seed:         seedOrDefault(),
			TrackHistory: runHistory,
		})
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), circuit, result)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runBackend, "backend", "b", "", "backend name (default: auto)")
	runCmd.Flags().IntVarP(&runShots, "shots", "n", 0, "number of measurement shots")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "RNG seed (0 = time-based)")
	runCmd.Flags().BoolVar(&runHistory, "history", false, "track per-gate state history")
	runCmd.Flags().StringArrayVar(&runNoise, "noise", nil, "noise spec qubit:channel:param, repeatable")
}

func readSource(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func backendOrDefault() string {
	if runBackend != "" {
		return runBackend
	}
	return config.Defaults.Backend
}

func shotsOrDefault() int {
	if runShots > 0 {
		return runShots
	}
	return config.Defaults.Shots
}

func seedOrDefault() int64 {
	if runSeed != 0 {
		return runSeed
	}
	return config.Defaults.Seed
}

// parseNoiseFlags parses repeated qubit:channel:param flags into a noise
// model, e.g. --noise 0:depolarizing:0.05.
func parseNoiseFlags(specs []string) (*qusim.NoiseModel, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	model := qusim.NewNoiseModel()
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("noise spec %q: want qubit:channel:param", spec)
		}
		qubit, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("noise spec %q: bad qubit: %w", spec, err)
		}
		param, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("noise spec %q: bad param: %w", spec, err)
		}
		ch, err := channelByName(parts[1], param)
		if err != nil {
			return nil, fmt.Errorf("noise spec %q: %w", spec, err)
		}
		model.Add(qubit, ch)
	}
	return model, nil
}

func channelByName(name string, param float64) (qusim.NoiseChannel, error) {
	switch name {
	case "depolarizing":
		return qusim.Depolarizing(param)
	case "amplitude_damping":
		return qusim.AmplitudeDamping(param)
	case "phase_damping":
		return qusim.PhaseDamping(param)
	case "bit_flip":
		return qusim.BitFlip(param)
	case "phase_flip":
		return qusim.PhaseFlip(param)
	}
	return qusim.NoiseChannel{}, fmt.Errorf("unknown noise channel %q", name)
}

func printResult(w io.Writer, circuit *qusim.Circuit, result *qusim.ExecutionResult) {
	fmt.Fprintf(w, "backend: %s  qubits: %d  gates: %d  depth: %d  shots: %d\n",
		result.Backend, circuit.NumQubits, len(circuit.Ops), circuit.Depth(), result.Shots)

	if warn, ok := result.Metadata["memory_warning"]; ok {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}

	if probs := result.Probabilities(); probs != nil {
		fmt.Fprintln(w, "probabilities:")
		for i, p := range probs {
			if p < 1e-9 {
				continue
			}
			fmt.Fprintf(w, "  |%0*b>  %.6f\n", circuit.NumQubits, i, p)
		}
	}

	if counts := result.Counts(); len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(w, "counts:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %s  %d\n", k, counts[k])
		}
	}

	if len(result.NoiseTrace) > 0 {
		fmt.Fprintf(w, "noise events: %d\n", len(result.NoiseTrace))
		for _, ev := range result.NoiseTrace {
			fmt.Fprintf(w, "  gate %d qubit %d %s fidelity=%.6f\n", ev.GateIndex, ev.Qubit, ev.Channel, ev.FidelityBefore)
		}
	}
}
