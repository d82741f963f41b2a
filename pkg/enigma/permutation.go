package enigma

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Permutation is a bijection over the indices of an Alphabet, given in cycle
// notation: "(c0 c1 ... cm)" maps c0->c1, ..., cm->c0. Symbols that appear in
// no cycle are fixed points.
type Permutation struct {
	alphabet *Alphabet
	cycles   [][]int
	forward  []int
	inverse  []int
}

// NewPermutation parses cycles, a string of the form "(cccc) (cc) ...", over
// alphabet. Whitespace is ignored; an empty string is the identity.
func NewPermutation(cycles string, alphabet *Alphabet) (*Permutation, error) {
	parsed, err := parseCycles(cycles, alphabet)
	if err != nil {
		return nil, err
	}

	permutation := &Permutation{
		alphabet: alphabet,
		forward:  lo.Range(alphabet.Size()),
		inverse:  lo.Range(alphabet.Size()),
	}
	for _, cycle := range parsed {
		permutation.addCycle(cycle)
	}
	return permutation, nil
}

// IdentityPermutation returns the permutation that maps every symbol of alphabet to itself.
func IdentityPermutation(alphabet *Alphabet) *Permutation {
	permutation, _ := NewPermutation("", alphabet)
	return permutation
}

func parseCycles(cycles string, alphabet *Alphabet) ([][]int, error) {
	parsed := make([][]int, 0)
	seen := make(map[rune]bool)

	var current []int
	open := false
	for _, symbol := range cycles {
		switch {
		case unicode.IsSpace(symbol):
			continue
		case symbol == '(':
			if open {
				return nil, configErrorf("nested '(' in cycles %q", cycles)
			}
			open = true
			current = make([]int, 0)
		case symbol == ')':
			if !open {
				return nil, configErrorf("unbalanced ')' in cycles %q", cycles)
			}
			open = false
			if len(current) > 0 {
				parsed = append(parsed, current)
			}
		case !open:
			return nil, configErrorf("symbol %q outside of a cycle in %q", symbol, cycles)
		case !alphabet.Contains(symbol):
			return nil, configErrorf("cycle symbol %q is not in the alphabet %q", symbol, alphabet.String())
		case seen[symbol]:
			return nil, configErrorf("symbol %q appears more than once in cycles %q", symbol, cycles)
		default:
			seen[symbol] = true
			current = append(current, alphabet.ToIndex(symbol))
		}
	}
	if open {
		return nil, configErrorf("unclosed '(' in cycles %q", cycles)
	}

	return parsed, nil
}

// addCycle links c0->c1->...->cm->c0 in both lookup tables.
func (permutation *Permutation) addCycle(cycle []int) {
	permutation.cycles = append(permutation.cycles, cycle)
	for i, from := range cycle {
		to := cycle[(i+1)%len(cycle)]
		permutation.forward[from] = to
		permutation.inverse[to] = from
	}
}

// Size returns the size of the alphabet being permuted.
func (permutation *Permutation) Size() int {
	return permutation.alphabet.Size()
}

// Wrap returns p modulo Size(), always in [0, Size()).
func (permutation *Permutation) Wrap(p int) int {
	r := p % permutation.Size()
	if r < 0 {
		r += permutation.Size()
	}
	return r
}

// Permute applies the permutation to p modulo the alphabet size.
func (permutation *Permutation) Permute(p int) int {
	return permutation.forward[permutation.Wrap(p)]
}

// Invert applies the inverse permutation to c modulo the alphabet size.
func (permutation *Permutation) Invert(c int) int {
	return permutation.inverse[permutation.Wrap(c)]
}

func (permutation *Permutation) PermuteSymbol(p rune) (rune, error) {
	index := permutation.alphabet.ToIndex(p)
	if index < 0 {
		return 0, &NotInAlphabetError{Symbol: p}
	}
	return permutation.alphabet.ToSymbol(permutation.forward[index]), nil
}

func (permutation *Permutation) InvertSymbol(c rune) (rune, error) {
	index := permutation.alphabet.ToIndex(c)
	if index < 0 {
		return 0, &NotInAlphabetError{Symbol: c}
	}
	return permutation.alphabet.ToSymbol(permutation.inverse[index]), nil
}

func (permutation *Permutation) Alphabet() *Alphabet {
	return permutation.alphabet
}

// Derangement reports whether no index maps to itself. A permutation over the
// empty alphabet is not a derangement.
func (permutation *Permutation) Derangement() bool {
	if permutation.Size() == 0 {
		return false
	}
	return !lo.SomeBy(lo.Range(permutation.Size()), func(i int) bool {
		return permutation.forward[i] == i
	})
}

// Cycles returns each cycle as the string of its symbols, in parse order.
func (permutation *Permutation) Cycles() []string {
	return lo.Map(permutation.cycles, func(cycle []int, _ int) string {
		return string(lo.Map(cycle, func(index int, _ int) rune {
			return permutation.alphabet.ToSymbol(index)
		}))
	})
}

// String renders the permutation back into cycle notation.
func (permutation *Permutation) String() string {
	return strings.Join(lo.Map(permutation.Cycles(), func(cycle string, _ int) string {
		return "(" + cycle + ")"
	}), " ")
}
