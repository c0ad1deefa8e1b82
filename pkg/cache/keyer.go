package cache

import (
	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// ArtifactKeyOpts holds everything besides the measures that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string            `json:"format"`
	Viewport  viewport.Viewport `json:"viewport"`
	ThemeHash string            `json:"theme,omitempty"`
	Scale     float64           `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// InputKey identifies a solve request. Only the mode's given measures
	// take part, so edits to derived fields do not change it.
	InputKey(mode triangle.Mode, in triangle.Measures) string
	// ArtifactKey identifies one rendered output of a solve request.
	ArtifactKey(inputKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// InputKey implements [Keyer].
func (DefaultKeyer) InputKey(mode triangle.Mode, in triangle.Measures) string {
	return hashKey("input", measureKey(mode, in))
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(inputKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputKey, opts)
}

// ScopedKeyer prefixes every key from an inner keyer, so separate callers
// (the CLI and a long-running server) can share one cache directory
// without sharing entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// InputKey implements [Keyer].
func (k *ScopedKeyer) InputKey(mode triangle.Mode, in triangle.Measures) string {
	return k.prefix + k.inner.InputKey(mode, in)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(inputKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputKey, opts)
}
