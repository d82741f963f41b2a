package enigma

import (
	"fmt"
	"strconv"
)

// ConfigError reports a structural or setup problem: a malformed alphabet,
// permutation or rotor, a mismatch between the machine and the rotors inserted
// into it, or a bad initial setting. It is fatal to the current run.
type ConfigError struct {
	Reason string
}

func (err *ConfigError) Error() string {
	return "enigma: " + err.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// NotInAlphabetError is returned by symbol-indexed lookups on a symbol that is
// absent from the configured alphabet.
type NotInAlphabetError struct {
	Symbol rune
}

func (err *NotInAlphabetError) Error() string {
	return "enigma: symbol " + strconv.QuoteRune(err.Symbol) + " is not in the alphabet"
}
