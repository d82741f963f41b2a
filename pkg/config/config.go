package config

import (
	"fmt"

	"github.com/limaJavier/enigma/pkg/enigma"
	"github.com/samber/lo"
)

// RotorConfig describes one rotor of the catalog.
type RotorConfig struct {
	Name    string `mapstructure:"name" json:"name" yaml:"name"`
	Kind    string `mapstructure:"kind" json:"kind" yaml:"kind"`
	Notches string `mapstructure:"notches" json:"notches,omitempty" yaml:"notches,omitempty"`
	Cycles  string `mapstructure:"cycles" json:"cycles" yaml:"cycles"`
}

// MachineConfig is everything needed to build a machine: the alphabet, the
// number of rotor slots and pawls, and the catalog of available rotors.
type MachineConfig struct {
	Alphabet string        `mapstructure:"alphabet" json:"alphabet" yaml:"alphabet"`
	Rotors   int           `mapstructure:"rotors" json:"rotors" yaml:"rotors"`
	Pawls    int           `mapstructure:"pawls" json:"pawls" yaml:"pawls"`
	Catalog  []RotorConfig `mapstructure:"catalog" json:"catalog" yaml:"catalog"`
}

// Descriptor converts the rotor into its engine form.
func (rotor RotorConfig) Descriptor() (enigma.RotorDescriptor, error) {
	kind, err := enigma.ParseRotorKind(rotor.Kind)
	if err != nil {
		return enigma.RotorDescriptor{}, err
	}
	return enigma.RotorDescriptor{
		Name:    rotor.Name,
		Kind:    kind,
		Notches: rotor.Notches,
		Cycles:  rotor.Cycles,
	}, nil
}

// Validate checks the counts and names; cycle notation is checked by Build.
func (config MachineConfig) Validate() error {
	if config.Rotors <= 1 {
		return fmt.Errorf("rotor slots must be greater than 1: %v", config.Rotors)
	} else if config.Pawls < 0 || config.Pawls >= config.Rotors {
		return fmt.Errorf("pawls must be between 0 and %v: %v", config.Rotors-1, config.Pawls)
	} else if len(config.Catalog) == 0 {
		return fmt.Errorf("catalog must describe at least one rotor")
	}

	names := lo.Map(config.Catalog, func(rotor RotorConfig, _ int) string { return rotor.Name })
	if lo.Contains(names, "") {
		return fmt.Errorf("every rotor must have a name")
	} else if duplicates := lo.FindDuplicates(names); len(duplicates) > 0 {
		return fmt.Errorf("duplicate rotor names: %v", duplicates)
	}
	return nil
}

// Build constructs the alphabet, the rotor catalog and the machine.
func (config MachineConfig) Build() (*enigma.Machine, error) {
	if err := config.Validate(); err != nil {
		return nil, &enigma.ConfigError{Reason: err.Error()}
	}

	alphabet, err := enigma.NewAlphabet(config.Alphabet)
	if err != nil {
		return nil, err
	}

	catalog := enigma.NewCatalog(alphabet)
	for _, rotor := range config.Catalog {
		descriptor, err := rotor.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("rotor %v: %w", rotor.Name, err)
		}
		if err := catalog.AddDescriptor(descriptor); err != nil {
			return nil, fmt.Errorf("rotor %v: %w", rotor.Name, err)
		}
	}

	return enigma.NewMachine(alphabet, config.Rotors, config.Pawls, catalog)
}

// FromMachine describes machine's alphabet, slots and catalog.
func FromMachine(machine *enigma.Machine) MachineConfig {
	return MachineConfig{
		Alphabet: machine.Alphabet().String(),
		Rotors:   machine.NumRotors(),
		Pawls:    machine.NumPawls(),
		Catalog: lo.Map(machine.Catalog().Descriptors(), func(descriptor enigma.RotorDescriptor, _ int) RotorConfig {
			return RotorConfig{
				Name:    descriptor.Name,
				Kind:    descriptor.Kind.String(),
				Notches: descriptor.Notches,
				Cycles:  descriptor.Cycles,
			}
		}),
	}
}
