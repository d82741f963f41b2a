package enigma

type fixedRotor struct {
	rotor
}

// NewFixedRotor returns a rotor that can be set but never advances.
func NewFixedRotor(name string, permutation *Permutation) Rotor {
	return &fixedRotor{
		rotor: rotor{name: name, permutation: permutation},
	}
}

func (fixed *fixedRotor) Kind() RotorKind {
	return KindFixed
}
