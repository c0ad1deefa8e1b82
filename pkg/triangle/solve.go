package triangle

import (
	"fmt"
	"math"

	"github.com/matzehuels/trisolve/pkg/errors"
)

// Solve derives the three measures mode does not treat as given and returns
// the full result with its derivation trace.
//
// Only the given keys of in are read. On failure the result is marked
// invalid, its measures equal in, and its trace is a single failed step.
func Solve(mode Mode, in Measures) Result {
	if !mode.Valid() {
		return failed(mode, in, errors.New(errors.ErrCodeUnsupported, "unsupported mode %s", mode))
	}
	for _, k := range mode.Given() {
		if err := ValidateMeasure(k, in.Get(k)); err != nil {
			return failed(mode, in, err)
		}
	}

	s := &solver{m: in}
	var err error
	switch mode {
	case SAS:
		err = s.sas()
	case SSS:
		err = s.sss()
	case ASA:
		err = s.asa()
	case AAS:
		err = s.aas()
	default:
		err = errors.New(errors.ErrCodeUnsupported, "unsupported mode %s", mode)
	}
	if err == nil {
		err = checkDerived(mode, s.m)
	}
	if err != nil {
		return failed(mode, in, err)
	}
	return Result{Mode: mode, Measures: s.m, Valid: true, Steps: s.steps}
}

// checkDerived rejects derived measures that left the representable range,
// such as a side that overflowed or an angle lost to rounding.
func checkDerived(mode Mode, m Measures) error {
	for _, k := range mode.Derived() {
		v := m.Get(k)
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || (k.IsAngle() && v >= 180) {
			return errors.New(errors.ErrCodeInvalidTriangle,
				"%s came out as %g, outside the range a triangle can have", k.Label(), v)
		}
	}
	return nil
}

func failed(mode Mode, in Measures, err error) Result {
	msg := errors.UserMessage(err)
	return Result{
		Mode:     mode,
		Measures: in,
		Valid:    false,
		Steps:    []Step{{Number: 1, Title: "Error", Detail: msg, Failed: true}},
		Err:      err,
		Error:    msg,
	}
}

type solver struct {
	m     Measures
	steps []Step
}

func (s *solver) record(k Key, v float64, title, formula, expr string) {
	s.m = s.m.Set(k, v)
	s.steps = append(s.steps, Step{
		Number:  len(s.steps) + 1,
		Title:   title,
		Formula: formula,
		Detail:  fmt.Sprintf("%s = %s", expr, k.Format(v)),
		Key:     k,
		Value:   v,
	})
}

func (s *solver) sas() error {
	a, b, C := s.m.SideA, s.m.SideB, s.m.AngleC

	// Work on sides scaled to the longer one so the squares cannot overflow.
	// The half-angle form keeps c accurate when C is tiny.
	k := math.Max(a, b)
	x, y := a/k, b/k
	d := x - y
	h := math.Sin(toRad(C) / 2)
	z := math.Sqrt(d*d + 4*x*y*h*h)
	c := z * k
	s.record(SideC, c, "Side c by the law of cosines", "c² = a² + b² − 2ab·cos C",
		fmt.Sprintf("c = √(%s² + %s² − 2·%s·%s·cos %s°)", num(a), num(b), num(a), num(b), num(C)))

	A := toDeg(math.Acos(clamp((y*y + z*z - x*x) / (2 * y * z))))
	s.record(AngleA, A, "Angle A by the law of cosines", "cos A = (b² + c² − a²) / 2bc",
		fmt.Sprintf("A = acos((%s² + %.2f² − %s²) / (2·%s·%.2f))", num(b), c, num(a), num(b), c))

	s.record(AngleB, 180-C-A, "Angle B from the angle sum", "B = 180° − C − A",
		fmt.Sprintf("B = 180° − %s° − %.2f°", num(C), A))
	return nil
}

func (s *solver) sss() error {
	a, b, c := s.m.SideA, s.m.SideB, s.m.SideC
	if a+b <= c || a+c <= b || b+c <= a {
		return errors.New(errors.ErrCodeInvalidTriangle,
			"sides %s, %s, %s do not form a triangle (each pair must sum to more than the third)", num(a), num(b), num(c))
	}

	k := math.Max(a, math.Max(b, c))
	x, y, z := a/k, b/k, c/k
	A := toDeg(math.Acos(clamp((y*y + z*z - x*x) / (2 * y * z))))
	s.record(AngleA, A, "Angle A by the law of cosines", "cos A = (b² + c² − a²) / 2bc",
		fmt.Sprintf("A = acos((%s² + %s² − %s²) / (2·%s·%s))", num(b), num(c), num(a), num(b), num(c)))

	B := toDeg(math.Acos(clamp((x*x + z*z - y*y) / (2 * x * z))))
	s.record(AngleB, B, "Angle B by the law of cosines", "cos B = (a² + c² − b²) / 2ac",
		fmt.Sprintf("B = acos((%s² + %s² − %s²) / (2·%s·%s))", num(a), num(c), num(b), num(a), num(c)))

	s.record(AngleC, 180-A-B, "Angle C from the angle sum", "C = 180° − A − B",
		fmt.Sprintf("C = 180° − %.2f° − %.2f°", A, B))
	return nil
}

func (s *solver) asa() error {
	A, B, c := s.m.AngleA, s.m.AngleB, s.m.SideC
	C, err := thirdAngle(A, B)
	if err != nil {
		return err
	}
	s.record(AngleC, C, "Angle C from the angle sum", "C = 180° − A − B",
		fmt.Sprintf("C = 180° − %s° − %s°", num(A), num(B)))

	sinC := math.Sin(toRad(C))
	s.record(SideA, c*math.Sin(toRad(A))/sinC, "Side a by the law of sines", "a = c·sin A / sin C",
		fmt.Sprintf("a = %s·sin %s° / sin %.2f°", num(c), num(A), C))
	s.record(SideB, c*math.Sin(toRad(B))/sinC, "Side b by the law of sines", "b = c·sin B / sin C",
		fmt.Sprintf("b = %s·sin %s° / sin %.2f°", num(c), num(B), C))
	return nil
}

func (s *solver) aas() error {
	A, B, a := s.m.AngleA, s.m.AngleB, s.m.SideA
	C, err := thirdAngle(A, B)
	if err != nil {
		return err
	}
	s.record(AngleC, C, "Angle C from the angle sum", "C = 180° − A − B",
		fmt.Sprintf("C = 180° − %s° − %s°", num(A), num(B)))

	sinA := math.Sin(toRad(A))
	s.record(SideB, a*math.Sin(toRad(B))/sinA, "Side b by the law of sines", "b = a·sin B / sin A",
		fmt.Sprintf("b = %s·sin %s° / sin %s°", num(a), num(B), num(A)))
	s.record(SideC, a*math.Sin(toRad(C))/sinA, "Side c by the law of sines", "c = a·sin C / sin A",
		fmt.Sprintf("c = %s·sin %.2f° / sin %s°", num(a), C, num(A)))
	return nil
}

func thirdAngle(A, B float64) (float64, error) {
	C := 180 - A - B
	if C <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidAngleSum,
			"angles %s° and %s° leave no room for a third angle (their sum must be below 180°)", num(A), num(B))
	}
	return C, nil
}

// clamp keeps a cosine inside acos's domain when rounding pushes it just past ±1.
func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// num formats a given value without trailing zeros, the way it was typed.
func num(v float64) string {
	return fmt.Sprintf("%g", v)
}
