package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/limaJavier/enigma/pkg/enigma"
	"github.com/samber/lo"
)

// ParseText reads the whitespace-separated configuration format:
//
//	ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	5 3
//	I MQ (AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)
//	Beta N (ALBEVFCYODJWUGNMQTZSKPR) (HIX)
//	B R (AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP)
//	    (RX) (SZ) (TV)
//
// The type token is M followed by the notch symbols, N, or R. A rotor's cycles
// run until the next token that does not start with '('.
func ParseText(reader io.Reader) (MachineConfig, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanWords)
	tokens := make([]string, 0)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return MachineConfig{}, fmt.Errorf("cannot read configuration: %w", err)
	}

	if len(tokens) < 3 {
		return MachineConfig{}, fmt.Errorf("configuration file truncated")
	}

	config := MachineConfig{Alphabet: tokens[0]}
	var err error
	if config.Rotors, err = strconv.Atoi(tokens[1]); err != nil {
		return MachineConfig{}, fmt.Errorf("invalid rotor count %q", tokens[1])
	}
	if config.Pawls, err = strconv.Atoi(tokens[2]); err != nil {
		return MachineConfig{}, fmt.Errorf("invalid pawl count %q", tokens[2])
	}

	tokens = tokens[3:]
	for len(tokens) > 0 {
		var rotor RotorConfig
		rotor, tokens, err = parseRotor(tokens)
		if err != nil {
			return MachineConfig{}, err
		}
		config.Catalog = append(config.Catalog, rotor)
	}

	return config, nil
}

func parseRotor(tokens []string) (RotorConfig, []string, error) {
	if len(tokens) < 2 {
		return RotorConfig{}, nil, fmt.Errorf("configuration file truncated: rotor %q has no type", tokens[0])
	}

	name, tag := tokens[0], tokens[1]
	if strings.HasPrefix(name, "(") {
		return RotorConfig{}, nil, fmt.Errorf("bad rotor description: expected a rotor name, found %q", name)
	}

	rotor := RotorConfig{Name: name}
	switch {
	case strings.HasPrefix(tag, "M"):
		rotor.Kind, rotor.Notches = "moving", tag[1:]
	case tag == "N":
		rotor.Kind = "fixed"
	case tag == "R":
		rotor.Kind = "reflector"
	default:
		return RotorConfig{}, nil, fmt.Errorf("bad rotor description: rotor %v has unknown type %q", name, tag)
	}

	rest := tokens[2:]
	_, cycles, ok := lo.FindIndexOf(rest, func(token string) bool { return !strings.HasPrefix(token, "(") })
	if !ok {
		cycles = len(rest)
	}
	rotor.Cycles = strings.Join(rest[:cycles], " ")
	return rotor, rest[cycles:], nil
}

// FromText loads a configuration file in the text format.
func FromText(file string) (MachineConfig, error) {
	reader, err := os.Open(file)
	if err != nil {
		return MachineConfig{}, fmt.Errorf("could not open %v: %w", file, err)
	}
	defer reader.Close()
	return ParseText(reader)
}

// WriteText writes config in the text format, one rotor per line.
func WriteText(writer io.Writer, config MachineConfig) error {
	if _, err := fmt.Fprintf(writer, "%v\n%d %d\n", config.Alphabet, config.Rotors, config.Pawls); err != nil {
		return err
	}
	for _, rotor := range config.Catalog {
		descriptor, err := rotor.Descriptor()
		if err != nil {
			return fmt.Errorf("rotor %v: %w", rotor.Name, err)
		}
		tag := descriptor.Kind.Tag()
		if descriptor.Kind == enigma.KindMoving {
			tag += descriptor.Notches
		}
		if _, err := fmt.Fprintf(writer, "%v %v %v\n", rotor.Name, tag, rotor.Cycles); err != nil {
			return err
		}
	}
	return nil
}
