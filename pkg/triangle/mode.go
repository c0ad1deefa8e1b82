package triangle

import (
	"strconv"
	"strings"

	"github.com/matzehuels/trisolve/pkg/errors"
)

// Mode selects which three measures are given.
type Mode int

const (
	SAS Mode = iota // two sides and the included angle
	SSS             // three sides
	ASA             // two angles and the included side
	AAS             // two angles and a non-included side
)

// DefaultMode is the mode the solver starts in.
const DefaultMode = SAS

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{SAS, SSS, ASA, AAS}
}

// InteractiveModes returns the modes offered by the interactive mode bar.
// AAS is solvable but has no button.
func InteractiveModes() []Mode {
	return []Mode{SAS, SSS, ASA}
}

// String returns the mode name, e.g. "SAS".
func (m Mode) String() string {
	switch m {
	case SAS:
		return "SAS"
	case SSS:
		return "SSS"
	case ASA:
		return "ASA"
	case AAS:
		return "AAS"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Description returns a short explanation of the mode.
func (m Mode) Description() string {
	switch m {
	case SAS:
		return "two sides and their included angle"
	case SSS:
		return "three sides"
	case ASA:
		return "two angles and their included side"
	case AAS:
		return "two angles and a non-included side"
	}
	return ""
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= SAS && m <= AAS
}

// Given returns the keys of the three measures m treats as inputs, in the
// order the input form shows them.
func (m Mode) Given() [3]Key {
	switch m {
	case SSS:
		return [3]Key{SideA, SideB, SideC}
	case ASA:
		return [3]Key{AngleA, SideC, AngleB}
	case AAS:
		return [3]Key{AngleA, AngleB, SideA}
	default:
		return [3]Key{SideA, SideB, AngleC}
	}
}

// Derived returns the keys m computes, in [Keys] order.
func (m Mode) Derived() [3]Key {
	var out [3]Key
	i := 0
	for _, k := range Keys {
		if !m.IsGiven(k) {
			out[i] = k
			i++
		}
	}
	return out
}

// IsGiven reports whether k is one of m's inputs.
func (m Mode) IsGiven(k Key) bool {
	for _, g := range m.Given() {
		if g == k {
			return true
		}
	}
	return false
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SAS":
		return SAS, nil
	case "SSS":
		return SSS, nil
	case "ASA":
		return ASA, nil
	case "AAS":
		return AAS, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: SAS, SSS, ASA, AAS)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMode, "invalid mode: %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
