package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet(t *testing.T) {
	embedded := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name    string
		bi      *debug.BuildInfo
		stamped bool
		want    Info
	}{
		{"no build info", nil, false, Info{"dev", "none", "unknown"}},
		{"devel module", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, false, Info{"dev", "none", "unknown"}},
		{"embedded", embedded, false, Info{"v0.3.1", "abc123", "2026-01-02T03:04:05Z"}},
		{"ldflags win", embedded, true, Info{"v1.0.0", "feed", "today"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.bi)
			if tt.stamped {
				Version, Commit, Date = "v1.0.0", "feed", "today"
				t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })
			}
			if got := Get(); got != tt.want {
				t.Errorf("Get() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	stubBuildInfo(t, nil)
	tmpl := Template()
	for _, want := range []string{"{{.Name}} dev", "commit: none", "built: unknown"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}

func TestString(t *testing.T) {
	stubBuildInfo(t, nil)
	if got := String(); got != "version: dev\ncommit: none\nbuilt: unknown" {
		t.Errorf("String() = %q", got)
	}
}
