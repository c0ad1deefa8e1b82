package triangle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/trisolve/pkg/errors"
)

// ParseError reports a measure that could not be turned into a usable number.
type ParseError struct {
	Key    Key    // Measure being parsed
	Input  string // Raw text as received
	Reason string // Why the value was rejected
	Err    error  // Underlying conversion error, if any
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Key.Label(), e.Input, e.Reason)
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error { return e.Err }

// Code returns the error code for this error type.
func (e *ParseError) Code() errors.Code { return errors.ErrCodeInvalidMeasure }

// ParseMeasure converts the raw text of an input field into a value for k.
// Surrounding whitespace is ignored, and angles may carry a trailing degree sign.
// The value must pass [ValidateMeasure].
func ParseMeasure(k Key, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if k.IsAngle() {
		s = strings.TrimSpace(strings.TrimSuffix(s, "°"))
	}
	if s == "" {
		return 0, &ParseError{Key: k, Input: raw, Reason: "value is empty"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Key: k, Input: raw, Reason: "not a number", Err: err}
	}
	if err := checkDomain(k, v); err != nil {
		err.Input = raw
		return 0, err
	}
	return v, nil
}

// ValidateMeasure checks that v is usable as the given measure k:
// finite, strictly positive for sides and strictly between 0 and 180 for angles.
func ValidateMeasure(k Key, v float64) error {
	if err := checkDomain(k, v); err != nil {
		return err
	}
	return nil
}

func checkDomain(k Key, v float64) *ParseError {
	input := strconv.FormatFloat(v, 'g', -1, 64)
	switch {
	case !k.IsAngle() && !k.IsSide():
		return &ParseError{Key: k, Input: input, Reason: "unknown measure"}
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &ParseError{Key: k, Input: input, Reason: "value must be finite"}
	case k.IsSide() && v <= 0:
		return &ParseError{Key: k, Input: input, Reason: "sides must be greater than 0"}
	case k.IsAngle() && (v <= 0 || v >= 180):
		return &ParseError{Key: k, Input: input, Reason: "angles must be between 0° and 180° exclusive"}
	}
	return nil
}
