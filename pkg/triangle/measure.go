package triangle

import (
	"fmt"
	"math"
)

// Key names one of the six measures of a triangle.
// Lowercase keys are sides, uppercase keys are angles.
type Key string

const (
	SideA  Key = "a"
	SideB  Key = "b"
	SideC  Key = "c"
	AngleA Key = "A"
	AngleB Key = "B"
	AngleC Key = "C"
)

// Keys lists every measure key in display order: sides first, then angles.
var Keys = [6]Key{SideA, SideB, SideC, AngleA, AngleB, AngleC}

// ParseKey returns the Key for s. Matching is case-sensitive because "a" and
// "A" name different measures.
func ParseKey(s string) (Key, error) {
	for _, k := range Keys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown measure %q (must be one of a, b, c, A, B, C)", s)
}

// IsAngle reports whether k names an angle.
func (k Key) IsAngle() bool {
	return k == AngleA || k == AngleB || k == AngleC
}

// IsSide reports whether k names a side.
func (k Key) IsSide() bool {
	return k == SideA || k == SideB || k == SideC
}

// Label returns the human-readable name of the measure, e.g. "side a" or "angle B".
func (k Key) Label() string {
	if k.IsAngle() {
		return "angle " + string(k)
	}
	return "side " + string(k)
}

// Format renders v the way the readout shows it: angles get a degree sign.
func (k Key) Format(v float64) string {
	if k.IsAngle() {
		return fmt.Sprintf("%.2f°", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// Measures holds the six measures of a triangle.
// Angles are in degrees.
type Measures struct {
	SideA  float64 `json:"a"`
	SideB  float64 `json:"b"`
	SideC  float64 `json:"c"`
	AngleA float64 `json:"A"`
	AngleB float64 `json:"B"`
	AngleC float64 `json:"C"`
}

// Defaults returns the measures the solver starts with before any input is
// edited: a=150, b=180, c=150 and three 60° angles.
func Defaults() Measures {
	return Measures{
		SideA: 150, SideB: 180, SideC: 150,
		AngleA: 60, AngleB: 60, AngleC: 60,
	}
}

// Get returns the value of the measure named by k.
// Unknown keys return NaN.
func (m Measures) Get(k Key) float64 {
	switch k {
	case SideA:
		return m.SideA
	case SideB:
		return m.SideB
	case SideC:
		return m.SideC
	case AngleA:
		return m.AngleA
	case AngleB:
		return m.AngleB
	case AngleC:
		return m.AngleC
	}
	return math.NaN()
}

// Set returns a copy of m with the measure named by k replaced by v.
// Unknown keys leave m unchanged.
func (m Measures) Set(k Key, v float64) Measures {
	switch k {
	case SideA:
		m.SideA = v
	case SideB:
		m.SideB = v
	case SideC:
		m.SideC = v
	case AngleA:
		m.AngleA = v
	case AngleB:
		m.AngleB = v
	case AngleC:
		m.AngleC = v
	}
	return m
}

// AngleSum returns A + B + C in degrees.
func (m Measures) AngleSum() float64 {
	return m.AngleA + m.AngleB + m.AngleC
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
