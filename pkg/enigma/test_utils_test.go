package enigma

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Historical wirings in cycle notation, the same table as testdata/default.conf.
var navalRotors = []RotorDescriptor{
	{Name: "I", Kind: KindMoving, Notches: "Q", Cycles: "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)"},
	{Name: "II", Kind: KindMoving, Notches: "E", Cycles: "(FIXVYOMW) (CDKLHUP) (ESZ) (BJ) (GR) (NT) (A) (Q)"},
	{Name: "III", Kind: KindMoving, Notches: "V", Cycles: "(ABDHPEJT) (CFLVMZOYQIRWUKXSG) (N)"},
	{Name: "IV", Kind: KindMoving, Notches: "J", Cycles: "(AEPLIYWCOXMRFZBSTGJQNH) (DV) (KU)"},
	{Name: "V", Kind: KindMoving, Notches: "Z", Cycles: "(AVOLDRWFIUQ)(BZKSMNHYC) (EGTJPX)"},
	{Name: "VI", Kind: KindMoving, Notches: "ZM", Cycles: "(AJQDVLEOZWIYTS) (CGMNHFUX) (BPRK)"},
	{Name: "VII", Kind: KindMoving, Notches: "ZM", Cycles: "(ANOUPFRIMBZTLWKSVEGCJYDHXQ)"},
	{Name: "VIII", Kind: KindMoving, Notches: "ZM", Cycles: "(AFLSETWUNDHOZVICQ) (BKJ) (GXY) (MPR)"},
	{Name: "Beta", Kind: KindFixed, Cycles: "(ALBEVFCYODJWUGNMQTZSKPR) (HIX)"},
	{Name: "Gamma", Kind: KindFixed, Cycles: "(AFNIRXQYPCOWVLBSZDKMTGUJHE)"},
	{Name: "B", Kind: KindReflector, Cycles: "(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)"},
	{Name: "C", Kind: KindReflector, Cycles: "(AR) (BD) (CO) (EJ) (FN) (GT) (HK) (IV) (LM) (PW) (QZ) (SX) (UY)"},
}

func newNavalCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog := NewCatalog(DefaultAlphabet())
	for _, descriptor := range navalRotors {
		require.NoError(t, catalog.AddDescriptor(descriptor))
	}
	return catalog
}

// newNavalMachine returns a 5-slot, 3-pawl machine already set up with rotors,
// initial positions and plugboard cycles.
func newNavalMachine(t *testing.T, rotors []string, setting string, plugboard string) *Machine {
	t.Helper()
	alphabet := DefaultAlphabet()
	machine, err := NewMachine(alphabet, 5, 3, newNavalCatalog(t))
	require.NoError(t, err)
	require.NoError(t, machine.InsertRotors(rotors))
	require.NoError(t, machine.SetRotors(setting))
	permutation, err := NewPermutation(plugboard, alphabet)
	require.NoError(t, err)
	require.NoError(t, machine.SetPlugboard(permutation))
	return machine
}

func mustAlphabet(t *testing.T, chars string) *Alphabet {
	t.Helper()
	alphabet, err := NewAlphabet(chars)
	require.NoError(t, err)
	return alphabet
}

func mustPermutation(t *testing.T, cycles string, alphabet *Alphabet) *Permutation {
	t.Helper()
	permutation, err := NewPermutation(cycles, alphabet)
	require.NoError(t, err)
	return permutation
}
