package enigma

import (
	"slices"
	"unicode"
)

// The classic 26-letter alphabet used when a configuration does not name one.
const defaultSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Alphabet is an immutable, ordered set of distinct symbols. Symbol number k has index k.
type Alphabet struct {
	symbols []rune
	indices map[rune]int
}

// NewAlphabet builds an alphabet from chars. Parentheses are cycle delimiters in
// permutation notation, so they are skipped rather than treated as members.
// Whitespace and '*' are reserved by the line format and rejected.
func NewAlphabet(chars string) (*Alphabet, error) {
	alphabet := &Alphabet{
		symbols: make([]rune, 0, len(chars)),
		indices: make(map[rune]int, len(chars)),
	}

	for _, symbol := range chars {
		switch {
		case symbol == '(' || symbol == ')':
			continue
		case symbol == '*' || unicode.IsSpace(symbol):
			return nil, configErrorf("alphabet cannot contain %q", symbol)
		}
		if _, ok := alphabet.indices[symbol]; ok {
			return nil, configErrorf("duplicate symbol %q in alphabet", symbol)
		}
		alphabet.indices[symbol] = len(alphabet.symbols)
		alphabet.symbols = append(alphabet.symbols, symbol)
	}

	return alphabet, nil
}

// DefaultAlphabet returns the upper-case latin alphabet A-Z.
func DefaultAlphabet() *Alphabet {
	alphabet, _ := NewAlphabet(defaultSymbols)
	return alphabet
}

func (alphabet *Alphabet) Size() int {
	return len(alphabet.symbols)
}

func (alphabet *Alphabet) Contains(symbol rune) bool {
	_, ok := alphabet.indices[symbol]
	return ok
}

// ToSymbol returns symbol number index. index must lie in [0, Size()).
func (alphabet *Alphabet) ToSymbol(index int) rune {
	return alphabet.symbols[index]
}

// ToIndex returns the index of symbol, or -1 when the symbol is not a member.
func (alphabet *Alphabet) ToIndex(symbol rune) int {
	index, ok := alphabet.indices[symbol]
	if !ok {
		return -1
	}
	return index
}

func (alphabet *Alphabet) String() string {
	return string(alphabet.symbols)
}

// Equal reports whether both alphabets hold the same symbols in the same order.
func (alphabet *Alphabet) Equal(other *Alphabet) bool {
	if alphabet == other {
		return true
	} else if alphabet == nil || other == nil {
		return false
	}
	return slices.Equal(alphabet.symbols, other.symbols)
}
