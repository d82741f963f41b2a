package enigma

import (
	"github.com/samber/lo"
)

// Machine is a rotor cipher machine: numRotors slots (slot 0 holds the
// reflector), the numPawls rightmost of which hold moving rotors, plus a
// plugboard. A Machine mutates its rotors on every converted symbol and must
// not be shared between goroutines.
type Machine struct {
	alphabet  *Alphabet
	catalog   *Catalog
	numRotors int
	numPawls  int
	slots     []int // catalog ids, nil while unconfigured
	plugboard *Permutation
	advances  []bool
}

// NewMachine returns a machine with 1 < numRotors slots and
// 0 <= numPawls < numRotors pawls whose rotors come from catalog.
func NewMachine(alphabet *Alphabet, numRotors, numPawls int, catalog *Catalog) (*Machine, error) {
	if numRotors <= 1 {
		return nil, configErrorf("a machine needs more than one rotor slot, got %d", numRotors)
	} else if numPawls < 0 || numPawls >= numRotors {
		return nil, configErrorf("pawl count %d must lie in [0, %d)", numPawls, numRotors)
	} else if !alphabet.Equal(catalog.Alphabet()) {
		return nil, configErrorf("catalog alphabet %q differs from machine alphabet %q", catalog.Alphabet().String(), alphabet.String())
	}

	return &Machine{
		alphabet:  alphabet,
		catalog:   catalog,
		numRotors: numRotors,
		numPawls:  numPawls,
		plugboard: IdentityPermutation(alphabet),
		advances:  make([]bool, numRotors),
	}, nil
}

func (machine *Machine) NumRotors() int {
	return machine.numRotors
}

func (machine *Machine) NumPawls() int {
	return machine.numPawls
}

func (machine *Machine) Alphabet() *Alphabet {
	return machine.alphabet
}

func (machine *Machine) Catalog() *Catalog {
	return machine.catalog
}

func (machine *Machine) Plugboard() *Permutation {
	return machine.plugboard
}

// Configured reports whether rotors have been inserted and no later setup step failed.
func (machine *Machine) Configured() bool {
	return machine.slots != nil
}

// InsertRotors fills the slots, left to right, with the catalog rotors called
// names; names[0] must be a reflector and exactly the NumPawls() rightmost
// rotors must be moving ones. Inserted rotors start at setting 0. On failure
// the machine is left unconfigured.
func (machine *Machine) InsertRotors(names []string) error {
	machine.slots = nil

	if len(names) != machine.numRotors {
		return configErrorf("expected %d rotors, got %d", machine.numRotors, len(names))
	} else if duplicates := lo.FindDuplicates(names); len(duplicates) > 0 {
		return configErrorf("rotor %s inserted more than once", duplicates[0])
	}

	slots := make([]int, 0, len(names))
	for _, name := range names {
		id, ok := machine.catalog.Lookup(name)
		if !ok {
			return configErrorf("no rotor named %s", name)
		}
		slots = append(slots, id)
	}

	rotors := lo.Map(slots, func(id int, _ int) Rotor { return machine.catalog.Rotor(id) })
	if !rotors[0].Reflecting() {
		return configErrorf("rotor %s in slot 0 is not a reflector", rotors[0].Name())
	}
	if reflectors := lo.CountBy(rotors, Rotor.Reflecting); reflectors != 1 {
		return configErrorf("only slot 0 may hold a reflector, got %d reflectors", reflectors)
	}
	if moving := lo.CountBy(rotors, Rotor.Rotates); moving != machine.numPawls {
		return configErrorf("expected %d moving rotors, got %d", machine.numPawls, moving)
	}
	firstMoving := machine.numRotors - machine.numPawls
	for slot, rotor := range rotors {
		if rotor.Rotates() != (slot >= firstMoving) {
			return configErrorf("moving rotors must occupy the %d rightmost slots, %s is in slot %d", machine.numPawls, rotor.Name(), slot)
		}
	}

	for _, rotor := range rotors {
		_ = rotor.Set(0)
	}
	machine.slots = slots
	return nil
}

// SetRotors positions the non-reflector rotors. setting holds one symbol per
// slot from slot 1 to the rightmost. On failure the machine is left unconfigured.
func (machine *Machine) SetRotors(setting string) error {
	if !machine.Configured() {
		return configErrorf("rotors must be inserted before they are set")
	}

	symbols := []rune(setting)
	if len(symbols) != machine.numRotors-1 {
		machine.slots = nil
		return configErrorf("setting %q must have %d symbols", setting, machine.numRotors-1)
	}
	for _, symbol := range symbols {
		if !machine.alphabet.Contains(symbol) {
			machine.slots = nil
			return configErrorf("setting symbol %q is not in the alphabet", symbol)
		}
	}

	for slot := 1; slot < machine.numRotors; slot++ {
		if err := machine.rotor(slot).SetSymbol(symbols[slot-1]); err != nil {
			machine.slots = nil
			return err
		}
	}
	return nil
}

// SetPlugboard replaces the plugboard; nil restores the identity.
func (machine *Machine) SetPlugboard(plugboard *Permutation) error {
	if plugboard == nil {
		machine.plugboard = IdentityPermutation(machine.alphabet)
		return nil
	} else if !machine.alphabet.Equal(plugboard.Alphabet()) {
		return configErrorf("plugboard alphabet %q differs from machine alphabet %q", plugboard.Alphabet().String(), machine.alphabet.String())
	}
	machine.plugboard = plugboard
	return nil
}

// Rotors returns the rotors in slot order, or nil while unconfigured.
func (machine *Machine) Rotors() []Rotor {
	if !machine.Configured() {
		return nil
	}
	return lo.Map(machine.slots, func(id int, _ int) Rotor { return machine.catalog.Rotor(id) })
}

// Positions returns the current setting of slots 1..NumRotors()-1 as symbols.
func (machine *Machine) Positions() string {
	if !machine.Configured() {
		return ""
	}
	return string(lo.Map(machine.slots[1:], func(id int, _ int) rune {
		return machine.catalog.Rotor(id).SettingSymbol()
	}))
}

func (machine *Machine) rotor(slot int) Rotor {
	return machine.catalog.Rotor(machine.slots[slot])
}

// Advance steps the moving rotors once. The rightmost rotor always moves; any
// other moving rotor moves when its right neighbour is at a notch, and a
// rotor sitting on its own notch is carried along with its left neighbour
// (the double step). Every notch is read before any rotor moves.
func (machine *Machine) Advance() {
	if machine.numPawls == 0 {
		return
	}
	last := machine.numRotors - 1
	firstMoving := machine.numRotors - machine.numPawls

	for slot := firstMoving; slot <= last; slot++ {
		switch {
		case slot == last:
			machine.advances[slot] = true
		case machine.rotor(slot + 1).AtNotch():
			machine.advances[slot] = true
		default:
			machine.advances[slot] = slot > firstMoving && machine.rotor(slot).AtNotch()
		}
	}

	for slot := firstMoving; slot <= last; slot++ {
		if machine.advances[slot] {
			machine.rotor(slot).Advance()
		}
	}
}

// Convert advances the machine and then returns the encoding of c, an index
// into the alphabet. The machine must be configured.
func (machine *Machine) Convert(c int) int {
	machine.Advance()

	c = machine.plugboard.Permute(c)
	for slot := machine.numRotors - 1; slot >= 0; slot-- {
		c = machine.rotor(slot).ConvertForward(c)
	}
	for slot := 1; slot < machine.numRotors; slot++ {
		c = machine.rotor(slot).ConvertBackward(c)
	}
	return machine.plugboard.Permute(c)
}

// ConvertMessage converts every symbol of msg in order, carrying rotor state
// across calls. A symbol outside the alphabet aborts the call before the
// machine advances.
func (machine *Machine) ConvertMessage(msg string) (string, error) {
	if !machine.Configured() {
		return "", configErrorf("machine has no rotors inserted")
	}

	symbols := []rune(msg)
	if symbol, ok := lo.Find(symbols, func(symbol rune) bool { return !machine.alphabet.Contains(symbol) }); ok {
		return "", &NotInAlphabetError{Symbol: symbol}
	}

	converted := make([]rune, len(symbols))
	for i, symbol := range symbols {
		converted[i] = machine.alphabet.ToSymbol(machine.Convert(machine.alphabet.ToIndex(symbol)))
	}
	return string(converted), nil
}
