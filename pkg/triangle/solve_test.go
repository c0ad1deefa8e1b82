package triangle

import (
	"math"
	"testing"

	"github.com/matzehuels/trisolve/pkg/errors"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestSolveValid(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		in   Measures
		want map[Key]float64
	}{
		{
			name: "SAS defaults",
			mode: SAS,
			in:   Defaults().Set(SideA, 150).Set(SideB, 180).Set(AngleC, 60),
			want: map[Key]float64{
				SideC:  167.03293088490062,
				AngleA: 51.051724435372925,
				AngleB: 68.94827556462707,
			},
		},
		{
			name: "SAS obtuse A",
			mode: SAS,
			in:   Measures{SideA: 10, SideB: 3, AngleC: 30},
			want: map[Key]float64{
				SideC:  7.5523821257225645,
				AngleA: 138.54414707841235,
			},
		},
		{
			name: "SSS right triangle",
			mode: SSS,
			in:   Measures{SideA: 3, SideB: 4, SideC: 5},
			want: map[Key]float64{
				AngleA: 36.86989764584401,
				AngleB: 53.13010235415599,
				AngleC: 90,
			},
		},
		{
			name: "ASA 30-60-90",
			mode: ASA,
			in:   Measures{AngleA: 30, AngleB: 60, SideC: 10},
			want: map[Key]float64{
				AngleC: 90,
				SideA:  5,
				SideB:  8.660254037844386,
			},
		},
		{
			name: "AAS 30-60-90",
			mode: AAS,
			in:   Measures{AngleA: 30, AngleB: 60, SideA: 5},
			want: map[Key]float64{
				AngleC: 90,
				SideB:  8.660254037844386,
				SideC:  10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Solve(tt.mode, tt.in)
			if !res.Valid {
				t.Fatalf("Valid = false, steps = %+v", res.Steps)
			}
			if res.Err != nil {
				t.Errorf("Err = %v, want nil", res.Err)
			}
			if len(res.Steps) != 3 {
				t.Errorf("len(Steps) = %d, want 3", len(res.Steps))
			}
			for k, want := range tt.want {
				if got := res.Measures.Get(k); math.Abs(got-want) > 1e-6 {
					t.Errorf("%s = %v, want %v", k, got, want)
				}
			}
			if sum := res.Measures.AngleSum(); math.Abs(sum-180) > 1e-6 {
				t.Errorf("angle sum = %v, want 180", sum)
			}
			for _, k := range tt.mode.Given() {
				if res.Measures.Get(k) != tt.in.Get(k) {
					t.Errorf("given %s changed: %v -> %v", k, tt.in.Get(k), res.Measures.Get(k))
				}
			}
		})
	}
}

func TestSolveTriangleInequality(t *testing.T) {
	m := Measures{SideA: 1, SideB: 2, SideC: 3}
	res := Solve(SSS, m)
	assertFailed(t, res, m, errors.ErrCodeInvalidTriangle)
}

func TestSolveAngleSum(t *testing.T) {
	for _, mode := range []Mode{ASA, AAS} {
		t.Run(mode.String(), func(t *testing.T) {
			m := Measures{SideA: 10, SideC: 10, AngleA: 100, AngleB: 80}
			assertFailed(t, Solve(mode, m), m, errors.ErrCodeInvalidAngleSum)
		})
	}
}

func TestSolveInvalidMeasure(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		in   Measures
	}{
		{"zero side", SAS, Measures{SideA: 0, SideB: 1, AngleC: 60}},
		{"negative side", SSS, Measures{SideA: -1, SideB: 1, SideC: 1}},
		{"NaN side", SAS, Measures{SideA: math.NaN(), SideB: 1, AngleC: 60}},
		{"straight angle", SAS, Measures{SideA: 1, SideB: 1, AngleC: 180}},
		{"infinite side", ASA, Measures{AngleA: 30, AngleB: 30, SideC: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Solve(tt.mode, tt.in)
			if res.Valid {
				t.Fatal("Valid = true, want false")
			}
			if !errors.Is(res.Err, errors.ErrCodeInvalidMeasure) {
				t.Errorf("Err code = %v, want %v", errors.GetCode(res.Err), errors.ErrCodeInvalidMeasure)
			}
		})
	}
}

func TestSolveIgnoresNonGiven(t *testing.T) {
	in := Measures{SideA: 150, SideB: 180, AngleC: 60}
	noisy := in.Set(SideC, -5).Set(AngleA, math.NaN()).Set(AngleB, 999)

	a, b := Solve(SAS, in), Solve(SAS, noisy)
	if a.Measures != b.Measures {
		t.Errorf("non-given inputs changed the result: %+v vs %+v", a.Measures, b.Measures)
	}
}

func TestSolveUnknownMode(t *testing.T) {
	in := Defaults()
	res := Solve(Mode(42), in)
	assertFailed(t, res, in, errors.ErrCodeUnsupported)
}

func TestSolveStepsOrdered(t *testing.T) {
	res := Solve(SAS, Defaults())
	wantKeys := []Key{SideC, AngleA, AngleB}
	for i, s := range res.Steps {
		if s.Number != i+1 {
			t.Errorf("Steps[%d].Number = %d", i, s.Number)
		}
		if s.Key != wantKeys[i] {
			t.Errorf("Steps[%d].Key = %s, want %s", i, s.Key, wantKeys[i])
		}
		if !approx(s.Value, res.Measures.Get(s.Key)) {
			t.Errorf("Steps[%d].Value = %v, measure = %v", i, s.Value, res.Measures.Get(s.Key))
		}
		if s.Formula == "" || s.Detail == "" {
			t.Errorf("Steps[%d] missing formula or detail: %+v", i, s)
		}
	}
}

func TestSolveAASMatchesASA(t *testing.T) {
	asa := Solve(ASA, Measures{AngleA: 35, AngleB: 75, SideC: 12})
	if !asa.Valid {
		t.Fatal("ASA invalid")
	}
	aas := Solve(AAS, Measures{AngleA: 35, AngleB: 75, SideA: asa.Measures.SideA})
	if !aas.Valid {
		t.Fatal("AAS invalid")
	}
	for _, k := range Keys {
		if math.Abs(asa.Measures.Get(k)-aas.Measures.Get(k)) > 1e-9 {
			t.Errorf("%s: ASA %v, AAS %v", k, asa.Measures.Get(k), aas.Measures.Get(k))
		}
	}
}

func TestSolveSSSRoundTrip(t *testing.T) {
	sas := Solve(SAS, Measures{SideA: 7, SideB: 9, AngleC: 110})
	sss := Solve(SSS, Measures{SideA: 7, SideB: 9, SideC: sas.Measures.SideC})
	for _, k := range []Key{AngleA, AngleB, AngleC} {
		if math.Abs(sas.Measures.Get(k)-sss.Measures.Get(k)) > 1e-9 {
			t.Errorf("%s: SAS %v, SSS %v", k, sas.Measures.Get(k), sss.Measures.Get(k))
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	in := Defaults()
	first := Solve(SAS, in)
	for i := 0; i < 5; i++ {
		again := Solve(SAS, in)
		if again.Measures != first.Measures || len(again.Steps) != len(first.Steps) {
			t.Fatalf("run %d differs", i)
		}
	}
}

func TestResultDerived(t *testing.T) {
	res := Solve(SSS, Measures{SideA: 3, SideB: 4, SideC: 5})
	d := res.Derived()
	if len(d) != 3 {
		t.Fatalf("len(Derived) = %d, want 3", len(d))
	}
	if !approx(d[AngleC], 90) {
		t.Errorf("Derived[C] = %v, want 90", d[AngleC])
	}
	if bad := Solve(SSS, Measures{SideA: 1, SideB: 1, SideC: 5}).Derived(); bad != nil {
		t.Errorf("Derived on invalid = %v, want nil", bad)
	}
}

func assertFailed(t *testing.T, res Result, in Measures, code errors.Code) {
	t.Helper()
	if res.Valid {
		t.Fatal("Valid = true, want false")
	}
	if !errors.Is(res.Err, code) {
		t.Errorf("Err code = %v, want %v", errors.GetCode(res.Err), code)
	}
	if len(res.Steps) != 1 || !res.Steps[0].Failed {
		t.Errorf("Steps = %+v, want a single failed step", res.Steps)
	}
	if res.Steps[0].Detail != res.Error || res.Error == "" {
		t.Errorf("failure detail %q, Error %q", res.Steps[0].Detail, res.Error)
	}
	if res.Measures != in && !hasNaN(in) {
		t.Errorf("Measures = %+v, want inputs %+v", res.Measures, in)
	}
}

func hasNaN(m Measures) bool {
	for _, k := range Keys {
		if math.IsNaN(m.Get(k)) {
			return true
		}
	}
	return false
}

func TestSolveLargeSides(t *testing.T) {
	t.Run("SSS equilateral", func(t *testing.T) {
		res := Solve(SSS, Measures{SideA: 1e200, SideB: 1e200, SideC: 1e200})
		if !res.Valid {
			t.Fatalf("Valid = false: %s", res.Error)
		}
		for _, k := range []Key{AngleA, AngleB, AngleC} {
			if got := res.Measures.Get(k); !approx(got, 60) {
				t.Errorf("%s = %v, want 60", k, got)
			}
		}
	})
	t.Run("SAS", func(t *testing.T) {
		res := Solve(SAS, Measures{SideA: 1e200, SideB: 1e200, AngleC: 60})
		if !res.Valid {
			t.Fatalf("Valid = false: %s", res.Error)
		}
		if got := res.Measures.SideC / 1e200; !approx(got, 1) {
			t.Errorf("c/1e200 = %v, want 1", got)
		}
		if got := res.Measures.AngleA; !approx(got, 60) {
			t.Errorf("A = %v, want 60", got)
		}
	})
}

func TestSolveTinyIncludedAngle(t *testing.T) {
	res := Solve(SAS, Measures{SideA: 1, SideB: 1, AngleC: 1e-10})
	if !res.Valid {
		t.Fatalf("Valid = false: %s", res.Error)
	}
	m := res.Measures
	if m.SideC <= 0 {
		t.Errorf("c = %v, want > 0", m.SideC)
	}
	if math.Abs(m.AngleA-90) > 1e-6 || math.Abs(m.AngleB-90) > 1e-6 {
		t.Errorf("A, B = %v, %v, want about 90", m.AngleA, m.AngleB)
	}
	if sum := m.AngleA + m.AngleB + m.AngleC; !approx(sum, 180) {
		t.Errorf("angle sum = %v", sum)
	}
}

func TestSolveOverflowingSide(t *testing.T) {
	m := Measures{SideA: 1e308, AngleA: 1, AngleB: 89}
	res := Solve(AAS, m)
	assertFailed(t, res, m, errors.ErrCodeInvalidTriangle)
}
