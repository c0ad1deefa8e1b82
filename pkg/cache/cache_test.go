package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("x"), 0)

	path, _ := c.path("k")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt Get = %v, %v; want clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil || n != 3 {
		t.Errorf("Clear = %d, %v; want 3", n, err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q", c.Dir())
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "*", "*"))
	if len(leftovers) != 0 {
		t.Errorf("files left after Clear: %v", leftovers)
	}
}

func TestFileCacheErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "", nil, 0); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("empty key: %v", err)
	}
	_ = c.Close()
	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close: %v", err)
	}
	if _, err := c.Clear(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Clear after Close: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	open, _ := NewFileCache(t.TempDir())
	if err := open.Set(cancelled, "k", nil, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Set with cancelled ctx: %v", err)
	}
}

func TestMeasureKey(t *testing.T) {
	in := triangle.Measures{SideA: 150, SideB: 180, SideC: 7, AngleC: 60}
	if got := measureKey(triangle.SAS, in); got != "SAS|a=150|b=180|C=60" {
		t.Errorf("measureKey = %q", got)
	}
	if got := measureKey(triangle.SSS, in); got != "SSS|a=150|b=180|c=7" {
		t.Errorf("measureKey = %q", got)
	}
}

func TestHashKeyVersioned(t *testing.T) {
	k := hashKey("input", "SAS|a=1|b=1|C=60")
	if !strings.HasPrefix(k, "input:"+keyVersion+":") || len(k) != len("input:"+keyVersion+":")+64 {
		t.Errorf("hashKey = %q", k)
	}
	if len(ShortHash([]byte("theme"))) != 16 {
		t.Error("ShortHash should be 16 hex digits")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	in := triangle.Defaults()

	base := k.InputKey(triangle.SAS, in)
	if !strings.HasPrefix(base, "input:") {
		t.Errorf("InputKey = %q", base)
	}
	if k.InputKey(triangle.SAS, in.Set(triangle.SideC, 1)) != base {
		t.Error("derived measure changed the SAS key")
	}
	if k.InputKey(triangle.SAS, in.Set(triangle.SideA, 1)) == base {
		t.Error("given measure did not change the key")
	}
	if k.InputKey(triangle.SSS, in) == base {
		t.Error("mode did not change the key")
	}

	svg := k.ArtifactKey(base, ArtifactKeyOpts{Format: "svg", Viewport: viewport.Default()})
	png := k.ArtifactKey(base, ArtifactKeyOpts{Format: "png", Viewport: viewport.Default()})
	wide := k.ArtifactKey(base, ArtifactKeyOpts{Format: "svg", Viewport: viewport.Viewport{Width: 1200, Height: 600, Padding: 60}})
	if svg == png || svg == wide {
		t.Error("artifact options did not change the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "serve:")
	plain := NewDefaultKeyer()
	in := triangle.Defaults()

	got := scoped.InputKey(triangle.ASA, in)
	if got != "serve:"+plain.InputKey(triangle.ASA, in) {
		t.Errorf("InputKey = %q", got)
	}
	if ak := scoped.ArtifactKey("x", ArtifactKeyOpts{Format: "svg"}); !strings.HasPrefix(ak, "serve:artifact:") {
		t.Errorf("ArtifactKey = %q", ak)
	}
}
