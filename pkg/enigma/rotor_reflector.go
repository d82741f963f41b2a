package enigma

type reflector struct {
	rotor
}

// NewReflector returns a reflector over permutation, which must be a derangement.
func NewReflector(name string, permutation *Permutation) (Rotor, error) {
	if !permutation.Derangement() {
		return nil, configErrorf("reflector %s must have no fixed points: %s", name, permutation.String())
	}
	return &reflector{
		rotor: rotor{name: name, permutation: permutation},
	}, nil
}

func (reflector *reflector) Kind() RotorKind {
	return KindReflector
}

func (reflector *reflector) Reflecting() bool {
	return true
}

// Set only accepts position 0: reflectors do not rotate.
func (reflector *reflector) Set(setting int) error {
	if reflector.permutation.Wrap(setting) != 0 {
		return configErrorf("reflector %s has only one position", reflector.name)
	}
	return nil
}

func (reflector *reflector) SetSymbol(symbol rune) error {
	index, err := reflector.setSymbol(symbol)
	if err != nil {
		return err
	}
	return reflector.Set(index)
}
