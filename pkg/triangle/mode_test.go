package triangle

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/trisolve/pkg/errors"
)

func TestModeGiven(t *testing.T) {
	tests := []struct {
		mode    Mode
		given   [3]Key
		derived [3]Key
	}{
		{SAS, [3]Key{SideA, SideB, AngleC}, [3]Key{SideC, AngleA, AngleB}},
		{SSS, [3]Key{SideA, SideB, SideC}, [3]Key{AngleA, AngleB, AngleC}},
		{ASA, [3]Key{AngleA, SideC, AngleB}, [3]Key{SideA, SideB, AngleC}},
		{AAS, [3]Key{AngleA, AngleB, SideA}, [3]Key{SideB, SideC, AngleC}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.Given(); got != tt.given {
				t.Errorf("Given() = %v, want %v", got, tt.given)
			}
			if got := tt.mode.Derived(); got != tt.derived {
				t.Errorf("Derived() = %v, want %v", got, tt.derived)
			}
		})
	}
}

func TestModesPartitionKeys(t *testing.T) {
	for _, m := range Modes() {
		seen := map[Key]int{}
		for _, k := range m.Given() {
			seen[k]++
		}
		for _, k := range m.Derived() {
			seen[k]++
		}
		if len(seen) != len(Keys) {
			t.Errorf("%s covers %d keys, want %d", m, len(seen), len(Keys))
		}
		for k, n := range seen {
			if n != 1 {
				t.Errorf("%s: key %s appears %d times", m, k, n)
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"SAS", SAS, false},
		{"sss", SSS, false},
		{" Asa ", ASA, false},
		{"aas", AAS, false},
		{"SSA", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidMode) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidMode)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeJSON(t *testing.T) {
	var v struct {
		Mode Mode `json:"mode"`
	}
	if err := json.Unmarshal([]byte(`{"mode":"asa"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Mode != ASA {
		t.Errorf("Mode = %v, want ASA", v.Mode)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"mode":"ASA"}` {
		t.Errorf("Marshal = %s", out)
	}
	if _, err := json.Marshal(struct{ M Mode }{Mode(9)}); err == nil {
		t.Error("Marshal of invalid mode succeeded")
	}
}

func TestInteractiveModes(t *testing.T) {
	got := InteractiveModes()
	if len(got) != 3 || got[0] != SAS || got[1] != SSS || got[2] != ASA {
		t.Errorf("InteractiveModes() = %v", got)
	}
	if DefaultMode != SAS {
		t.Errorf("DefaultMode = %v, want SAS", DefaultMode)
	}
}

func TestModeString(t *testing.T) {
	if s := Mode(7).String(); s != "Mode(7)" {
		t.Errorf("String() = %q", s)
	}
	for _, m := range Modes() {
		if m.Description() == "" {
			t.Errorf("%s has no description", m)
		}
	}
}
