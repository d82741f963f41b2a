package enigma

import (
	"fmt"
	"strings"
)

// RotorKind tags the rotor variants a catalog can hold.
type RotorKind uint8

const (
	// KindUnknown is the zero value; no rotor is built from it.
	KindUnknown RotorKind = iota
	// KindReflector never advances and only sits in slot 0.
	KindReflector
	// KindFixed never advances.
	KindFixed
	// KindMoving carries notches and is driven by a pawl.
	KindMoving
)

const (
	KindUnknownStr   = "unknown"
	KindReflectorStr = "reflector"
	KindFixedStr     = "fixed"
	KindMovingStr    = "moving"
)

// ParseRotorKind accepts the long names and the single-letter type tags of the
// text configuration format: R (reflector), N (non-moving) and M (moving).
func ParseRotorKind(s string) (RotorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case KindReflectorStr, "r":
		return KindReflector, nil
	case KindFixedStr, "n":
		return KindFixed, nil
	case KindMovingStr, "m":
		return KindMoving, nil
	default:
		return KindUnknown, configErrorf("unknown rotor kind %q (valid: %s, %s, %s)", s, KindReflectorStr, KindFixedStr, KindMovingStr)
	}
}

func (kind RotorKind) String() string {
	switch kind {
	case KindUnknown:
		return KindUnknownStr
	case KindReflector:
		return KindReflectorStr
	case KindFixed:
		return KindFixedStr
	case KindMoving:
		return KindMovingStr
	default:
		return fmt.Sprintf("RotorKind(%d)", uint8(kind))
	}
}

// Tag returns the single-letter type tag used by the text configuration format.
func (kind RotorKind) Tag() string {
	switch kind {
	case KindReflector:
		return "R"
	case KindFixed:
		return "N"
	case KindMoving:
		return "M"
	default:
		return ""
	}
}

func (kind RotorKind) Valid() bool {
	return kind == KindReflector || kind == KindFixed || kind == KindMoving
}

func (kind RotorKind) MarshalText() ([]byte, error) {
	if !kind.Valid() {
		return nil, configErrorf("cannot marshal invalid rotor kind %d", uint8(kind))
	}
	return []byte(kind.String()), nil
}

func (kind *RotorKind) UnmarshalText(text []byte) error {
	parsed, err := ParseRotorKind(string(text))
	if err != nil {
		return err
	}
	*kind = parsed
	return nil
}
