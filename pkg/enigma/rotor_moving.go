package enigma

import "github.com/samber/lo"

type movingRotor struct {
	rotor
	notches []bool
}

// NewMovingRotor returns a rotor that advances when the machine steps it and
// that reports AtNotch while set to any of the symbols in notches.
func NewMovingRotor(name string, permutation *Permutation, notches string) (Rotor, error) {
	alphabet := permutation.Alphabet()
	marks := make([]bool, alphabet.Size())
	for _, notch := range notches {
		index := alphabet.ToIndex(notch)
		if index < 0 {
			return nil, configErrorf("notch %q of rotor %s is not in the alphabet", notch, name)
		}
		marks[index] = true
	}
	return &movingRotor{
		rotor:   rotor{name: name, permutation: permutation},
		notches: marks,
	}, nil
}

func (moving *movingRotor) Kind() RotorKind {
	return KindMoving
}

func (moving *movingRotor) Rotates() bool {
	return true
}

func (moving *movingRotor) AtNotch() bool {
	return moving.notches[moving.setting]
}

func (moving *movingRotor) Advance() {
	moving.setting = moving.permutation.Wrap(moving.setting + 1)
}

func (moving *movingRotor) Notches() string {
	alphabet := moving.Alphabet()
	return string(lo.FilterMap(lo.Range(len(moving.notches)), func(index int, _ int) (rune, bool) {
		return alphabet.ToSymbol(index), moving.notches[index]
	}))
}
