package qusim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for circuit-source parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\]\s*;?$`)
	cregRegex    = regexp.MustCompile(`^creg\s+(\w+)\[(\d+)\]\s*;?$`)
	callRegex    = regexp.MustCompile(`^(\w+)\s*\((.*?)\)\s*;?$`)
	intListRegex = regexp.MustCompile(`\((\d+(?:\s*,\s*\d+)*)\)`)
)

// gateBuilders maps lowercase source names to gate constructors, split by
// whether the gate takes an angle parameter.
var fixedGateBuilders = map[string]func() Gate{
	"x":       XGate,
	"y":       YGate,
	"z":       ZGate,
	"h":       HGate,
	"s":       SGate,
	"t":       TGate,
	"cx":      CNOTGate,
	"cnot":    CNOTGate,
	"cz":      CZGate,
	"swap":    SwapGate,
	"ccx":     ToffoliGate,
	"ccnot":   ToffoliGate,
	"toffoli": ToffoliGate,
}

var paramGateBuilders = map[string]func(float64) Gate{
	"rx": RXGate,
	"ry": RYGate,
	"rz": RZGate,
}

// ParseDSL parses circuit source into a Circuit. The grammar is a small
// function-call line language:
//
//	qreg q[2]           # optional; otherwise inferred from indices used
//	creg c[2]
//	h(0)
//	rx(1, pi/2)
//	cnot(0, 1)
//	measure(0, 0)       # qubit, classical bit (bit optional)
//
// Comments start with #. Gate names are case-insensitive.
func ParseDSL(source string) (*Circuit, error) {
	lines := strings.Split(source, "\n")

	numQubits, numClassical := scanRegisters(lines)
	c := NewCircuit(numQubits, numClassical)

	for lineNo, raw := range lines {
		line := stripComment(raw)
		if line == "" {
			continue
		}
		if err := parseLine(c, line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
	}
	return c, nil
}

// scanRegisters finds explicit register declarations, falling back to
// inferring the qubit count from the highest index used in any all-integer
// argument list. A sourced circuit always has at least one qubit.
func scanRegisters(lines []string) (numQubits, numClassical int) {
	maxIndex := -1
	sawQreg := false
	for _, raw := range lines {
		line := stripComment(raw)
		if line == "" {
			continue
		}
		if m := qregRegex.FindStringSubmatch(line); m != nil {
			sawQreg = true
			if n, err := strconv.Atoi(m[2]); err == nil && n > numQubits {
				numQubits = n
			}
			continue
		}
		if m := cregRegex.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[2]); err == nil && n > numClassical {
				numClassical = n
			}
			continue
		}
		for _, m := range intListRegex.FindAllStringSubmatch(line, -1) {
			for _, part := range strings.Split(m[1], ",") {
				if q, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && q > maxIndex {
					maxIndex = q
				}
			}
		}
	}
	if !sawQreg {
		numQubits = maxIndex + 1
		if numQubits < 1 {
			numQubits = 1
		}
	}
	return numQubits, numClassical
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func parseLine(c *Circuit, line string) error {
	if qregRegex.MatchString(line) || cregRegex.MatchString(line) {
		return nil
	}

	m := callRegex.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("cannot parse %q", line)
	}
	name := strings.ToLower(m[1])
	args := splitArgs(m[2])

	if name == "measure" {
		return parseMeasure(c, args)
	}
	if builder, ok := paramGateBuilders[name]; ok {
		return parseRotation(c, name, builder, args)
	}
	if builder, ok := fixedGateBuilders[name]; ok {
		qubits, err := intArgs(name, args)
		if err != nil {
			return err
		}
		return c.AddGate(builder(), qubits...)
	}
	return fmt.Errorf("unknown gate %q", name)
}

// parseRotation handles rx/ry/rz(qubit, angle), where the angle may be a
// pi expression.
func parseRotation(c *Circuit, name string, builder func(float64) Gate, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%s requires a qubit and an angle", name)
	}
	qubit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%s: bad qubit index %q", name, args[0])
	}
	angle, ok := parseParamExpr(args[1])
	if !ok {
		return fmt.Errorf("%s: bad angle %q", name, args[1])
	}
	return c.AddGate(builder(angle), qubit)
}

func parseMeasure(c *Circuit, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("measure requires a qubit and an optional classical bit")
	}
	qubit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("measure: bad qubit index %q", args[0])
	}
	cbit := -1
	if len(args) == 2 {
		cbit, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("measure: bad classical bit %q", args[1])
		}
	}
	return c.Measure(qubit, cbit)
}

func splitArgs(s string) []string {
	var args []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			args = append(args, part)
		}
	}
	return args
}

func intArgs(name string, args []string) ([]int, error) {
	qubits := make([]int, 0, len(args))
	for _, a := range args {
		q, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s: bad qubit index %q", name, a)
		}
		qubits = append(qubits, q)
	}
	return qubits, nil
}
