package enigma

import "github.com/samber/lo"

// RotorDescriptor is the configuration-level description of one rotor.
type RotorDescriptor struct {
	Name    string
	Kind    RotorKind
	Notches string
	Cycles  string
}

// Catalog owns every rotor available to a run. Rotors are addressed by a dense
// id so that machines can reference them without copying.
type Catalog struct {
	alphabet *Alphabet
	rotors   []Rotor
	ids      map[string]int
}

func NewCatalog(alphabet *Alphabet) *Catalog {
	return &Catalog{
		alphabet: alphabet,
		rotors:   make([]Rotor, 0),
		ids:      make(map[string]int),
	}
}

// Add registers rotor under its name.
func (catalog *Catalog) Add(rotor Rotor) error {
	if rotor.Name() == "" {
		return configErrorf("rotor name cannot be empty")
	} else if _, ok := catalog.ids[rotor.Name()]; ok {
		return configErrorf("duplicate rotor name %s", rotor.Name())
	} else if !catalog.alphabet.Equal(rotor.Alphabet()) {
		return configErrorf("rotor %s uses a different alphabet", rotor.Name())
	}

	catalog.ids[rotor.Name()] = len(catalog.rotors)
	catalog.rotors = append(catalog.rotors, rotor)
	return nil
}

// AddDescriptor builds the rotor variant named by descriptor.Kind and registers it.
func (catalog *Catalog) AddDescriptor(descriptor RotorDescriptor) error {
	if descriptor.Kind != KindMoving && descriptor.Notches != "" {
		return configErrorf("only moving rotors have notches, %s is %s", descriptor.Name, descriptor.Kind)
	}

	permutation, err := NewPermutation(descriptor.Cycles, catalog.alphabet)
	if err != nil {
		return err
	}

	var rotor Rotor
	switch descriptor.Kind {
	case KindReflector:
		rotor, err = NewReflector(descriptor.Name, permutation)
	case KindFixed:
		rotor = NewFixedRotor(descriptor.Name, permutation)
	case KindMoving:
		rotor, err = NewMovingRotor(descriptor.Name, permutation, descriptor.Notches)
	default:
		err = configErrorf("rotor %s has no valid kind", descriptor.Name)
	}
	if err != nil {
		return err
	}
	return catalog.Add(rotor)
}

// Lookup returns the id of the rotor called name.
func (catalog *Catalog) Lookup(name string) (int, bool) {
	id, ok := catalog.ids[name]
	return id, ok
}

func (catalog *Catalog) Rotor(id int) Rotor {
	return catalog.rotors[id]
}

func (catalog *Catalog) Alphabet() *Alphabet {
	return catalog.alphabet
}

func (catalog *Catalog) Len() int {
	return len(catalog.rotors)
}

// Names returns the rotor names in registration order.
func (catalog *Catalog) Names() []string {
	return lo.Map(catalog.rotors, func(rotor Rotor, _ int) string { return rotor.Name() })
}

// Descriptors describes every rotor, in registration order.
func (catalog *Catalog) Descriptors() []RotorDescriptor {
	return lo.Map(catalog.rotors, func(rotor Rotor, _ int) RotorDescriptor {
		return RotorDescriptor{
			Name:    rotor.Name(),
			Kind:    rotor.Kind(),
			Notches: rotor.Notches(),
			Cycles:  rotor.Permutation().String(),
		}
	})
}
