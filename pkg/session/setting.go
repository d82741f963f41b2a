package session

import (
	"fmt"
	"strings"

	"github.com/limaJavier/enigma/pkg/enigma"
	"github.com/samber/lo"
)

// Setting is a parsed directive line such as
// "* B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)".
type Setting struct {
	Rotors    []string
	Positions string
	Plugboard string
}

// IsSetting reports whether line is a setting directive.
func IsSetting(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "*")
}

// ParseSetting splits a directive into numRotors rotor names, the positions of
// the non-reflector rotors and the plugboard cycles.
func ParseSetting(line string, numRotors int) (Setting, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "*") {
		return Setting{}, fmt.Errorf("setting line must start with '*': %q", line)
	}

	fields := strings.Fields(strings.TrimPrefix(trimmed, "*"))
	if len(fields) < numRotors+1 {
		return Setting{}, fmt.Errorf("setting line needs %d rotor names and a position string: %q", numRotors, line)
	}

	plugboard := fields[numRotors+1:]
	if malformed, found := lo.Find(plugboard, func(field string) bool {
		return !strings.HasPrefix(field, "(") || !strings.HasSuffix(field, ")")
	}); found {
		return Setting{}, fmt.Errorf("plugboard cycle %q is not parenthesized", malformed)
	}

	return Setting{
		Rotors:    fields[:numRotors],
		Positions: fields[numRotors],
		Plugboard: strings.Join(plugboard, " "),
	}, nil
}

// Apply inserts the rotors, sets their positions and installs the plugboard.
func (setting Setting) Apply(machine *enigma.Machine) error {
	if err := machine.InsertRotors(setting.Rotors); err != nil {
		return err
	}
	if err := machine.SetRotors(setting.Positions); err != nil {
		return err
	}

	plugboard, err := enigma.NewPermutation(setting.Plugboard, machine.Alphabet())
	if err != nil {
		return fmt.Errorf("plugboard: %w", err)
	}
	return machine.SetPlugboard(plugboard)
}

// String renders the setting back as a directive line.
func (setting Setting) String() string {
	fields := append([]string{"*"}, setting.Rotors...)
	fields = append(fields, setting.Positions)
	if setting.Plugboard != "" {
		fields = append(fields, setting.Plugboard)
	}
	return strings.Join(fields, " ")
}
