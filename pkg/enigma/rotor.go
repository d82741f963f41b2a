package enigma

// Rotor is a Permutation mounted on a wheel with a rotational setting. A
// catalog owns each Rotor for the whole run; machines only reference them.
type Rotor interface {
	// Name identifies the rotor inside its catalog
	Name() string

	// Kind reports the variant (reflector, fixed or moving)
	Kind() RotorKind

	Alphabet() *Alphabet

	Permutation() *Permutation

	// Size returns the size of the rotor's alphabet
	Size() int

	// Setting returns the current rotational offset, in [0, Size())
	Setting() int

	// SettingSymbol returns the alphabet symbol for the current setting
	SettingSymbol() rune

	// Set moves the rotor to position setting modulo Size()
	Set(setting int) error

	// SetSymbol moves the rotor to the position of symbol
	SetSymbol(symbol rune) error

	// ConvertForward maps a contact entering from the right, in the rotor's rotated frame
	ConvertForward(p int) int

	// ConvertBackward maps a contact entering from the left, in the rotor's rotated frame
	ConvertBackward(e int) int

	// Rotates reports whether the rotor has a ratchet and can move
	Rotates() bool

	// Reflecting reports whether the rotor is a reflector
	Reflecting() bool

	// AtNotch reports whether the rotor is positioned to let the rotor on its left advance
	AtNotch() bool

	// Advance steps the rotor by one position if it rotates; otherwise it does nothing
	Advance()

	// Notches returns the notch symbols, empty for non-moving rotors
	Notches() string
}

// rotor holds the state shared by every variant.
type rotor struct {
	name        string
	permutation *Permutation
	setting     int
}

func (rotor *rotor) Name() string {
	return rotor.name
}

func (rotor *rotor) Alphabet() *Alphabet {
	return rotor.permutation.Alphabet()
}

func (rotor *rotor) Permutation() *Permutation {
	return rotor.permutation
}

func (rotor *rotor) Size() int {
	return rotor.permutation.Size()
}

func (rotor *rotor) Setting() int {
	return rotor.setting
}

func (rotor *rotor) SettingSymbol() rune {
	return rotor.Alphabet().ToSymbol(rotor.setting)
}

func (rotor *rotor) Set(setting int) error {
	rotor.setting = rotor.permutation.Wrap(setting)
	return nil
}

func (rotor *rotor) setSymbol(symbol rune) (int, error) {
	index := rotor.Alphabet().ToIndex(symbol)
	if index < 0 {
		return 0, configErrorf("setting %q of rotor %s is not in the alphabet", symbol, rotor.name)
	}
	return index, nil
}

func (rotor *rotor) SetSymbol(symbol rune) error {
	index, err := rotor.setSymbol(symbol)
	if err != nil {
		return err
	}
	rotor.setting = index
	return nil
}

// ConvertForward shifts p into the rotor's frame, permutes it, and shifts the result back.
func (rotor *rotor) ConvertForward(p int) int {
	return rotor.permutation.Wrap(rotor.permutation.Permute(p+rotor.setting) - rotor.setting)
}

func (rotor *rotor) ConvertBackward(e int) int {
	return rotor.permutation.Wrap(rotor.permutation.Invert(e+rotor.setting) - rotor.setting)
}

func (rotor *rotor) Rotates() bool {
	return false
}

func (rotor *rotor) Reflecting() bool {
	return false
}

func (rotor *rotor) AtNotch() bool {
	return false
}

func (rotor *rotor) Advance() {}

func (rotor *rotor) Notches() string {
	return ""
}
