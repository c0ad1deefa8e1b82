package viewport

import (
	"math"
	"testing"

	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/geometry"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

func TestFitScale(t *testing.T) {
	tests := []struct {
		name  string
		frame geometry.Frame
		vp    Viewport
		want  float64
	}{
		{
			name:  "width bound",
			frame: geometry.Frame{A: geometry.Point{X: 0, Y: 100}, B: geometry.Point{X: 200}, C: geometry.Point{}},
			vp:    Viewport{Width: 800, Height: 800, Padding: 60},
			want:  3.4,
		},
		{
			name:  "height bound",
			frame: geometry.Frame{A: geometry.Point{X: 0, Y: 100}, B: geometry.Point{X: 100}, C: geometry.Point{}},
			vp:    Viewport{Width: 800, Height: 300, Padding: 50},
			want:  2,
		},
		{
			name:  "flat frame ignores height",
			frame: geometry.Frame{A: geometry.Point{X: 50}, B: geometry.Point{X: 100}, C: geometry.Point{}},
			vp:    Viewport{Width: 800, Height: 600, Padding: 60},
			want:  6.8,
		},
		{
			name:  "single point",
			frame: geometry.Frame{},
			vp:    Default(),
			want:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Fit(tt.frame, tt.vp)
			if math.Abs(tr.Scale-tt.want) > 1e-9 {
				t.Errorf("Scale = %v, want %v", tr.Scale, tt.want)
			}
			if math.IsNaN(tr.OffsetX) || math.IsInf(tr.OffsetX, 0) || math.IsNaN(tr.OffsetY) || math.IsInf(tr.OffsetY, 0) {
				t.Errorf("non-finite offsets: %+v", tr)
			}
		})
	}
}

func TestFitCentres(t *testing.T) {
	res := triangle.Solve(triangle.SAS, triangle.Defaults())
	f := geometry.Canonical(res.Measures)
	vp := Default()
	tr := Fit(f, vp)
	s := tr.ApplyFrame(f).Bounds()

	if math.Abs((s.Min.X+s.Max.X)/2-vp.Width/2) > 1e-6 {
		t.Errorf("horizontal centre = %v, want %v", (s.Min.X+s.Max.X)/2, vp.Width/2)
	}
	if math.Abs((s.Min.Y+s.Max.Y)/2-vp.Height/2) > 1e-6 {
		t.Errorf("vertical centre = %v, want %v", (s.Min.Y+s.Max.Y)/2, vp.Height/2)
	}
	if s.Min.X < vp.Padding-1e-6 || s.Max.X > vp.Width-vp.Padding+1e-6 ||
		s.Min.Y < vp.Padding-1e-6 || s.Max.Y > vp.Height-vp.Padding+1e-6 {
		t.Errorf("screen box %+v escapes padding", s)
	}
	// one axis touches the padding exactly
	if math.Abs(s.Width()-(vp.Width-2*vp.Padding)) > 1e-6 && math.Abs(s.Height()-(vp.Height-2*vp.Padding)) > 1e-6 {
		t.Errorf("screen box %+v does not fill either axis", s)
	}
}

func TestApplyFlipsY(t *testing.T) {
	tr := Transform{Scale: 2, OffsetX: 10, OffsetY: 20, Height: 100}
	got := tr.Apply(geometry.Point{X: 5, Y: 5})
	if got != (geometry.Point{X: 20, Y: 70}) {
		t.Errorf("Apply = %+v, want (20, 70)", got)
	}
	hi := tr.Apply(geometry.Point{Y: 10})
	lo := tr.Apply(geometry.Point{Y: 0})
	if hi.Y >= lo.Y {
		t.Errorf("larger canonical y should be higher on screen: %v vs %v", hi.Y, lo.Y)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		vp      Viewport
		wantErr bool
	}{
		{"default", Default(), false},
		{"no padding", Viewport{Width: 10, Height: 10}, false},
		{"zero width", Viewport{Width: 0, Height: 10}, true},
		{"negative padding", Viewport{Width: 10, Height: 10, Padding: -1}, true},
		{"padding too large", Viewport{Width: 100, Height: 100, Padding: 50}, true},
		{"NaN", Viewport{Width: math.NaN(), Height: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vp.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidViewport) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Viewport
		want Viewport
	}{
		{"zero", Viewport{}, Default()},
		{"width only", Viewport{Width: 1024}, Viewport{Width: 1024, Height: DefaultHeight}},
		{"explicit padding", Viewport{Width: 400, Height: 300, Padding: 10}, Viewport{Width: 400, Height: 300, Padding: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.WithDefaults(); got != tt.want {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
