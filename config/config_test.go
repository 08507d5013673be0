package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 800, c.Render.Width)
	assert.Equal(t, 600, c.Render.Height)
	assert.Equal(t, "#ffffff", c.Colors.Primary)
	assert.Equal(t, "#0000ff", c.Colors.Secondary)
	assert.InDelta(t, 1.0/120, c.Render.TimeStep(), 1e-12)
}

func TestLoadOverridesDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := Load(strings.NewReader(`
[analysis]
harmonics = 20
dc = true
order = "frequency"

[render]
width = 400
speed = 0.01
`))
	require.NoError(t, err)
	assert.Equal(t, 20, c.Analysis.Harmonics)
	assert.True(t, c.Analysis.DC)
	assert.Equal(t, OrderFrequency, c.Analysis.Order)
	assert.Equal(t, 10000, c.Analysis.Samples) // untouched
	assert.Equal(t, 400, c.Render.Width)
	assert.Equal(t, 600, c.Render.Height)
	assert.Equal(t, 0.01, c.Render.TimeStep())
}

func TestLoadRejects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, doc := range []string{
		"[analysis]\nsamples = 0",
		"[analysis]\nharmonics = -1",
		"[analysis]\norder = \"random\"",
		"[render]\nwidth = 0",
		"[render]\nframes = 0",
		"[render]\nmargin = 0.5",
		"[render]\nline_width = 0.0",
		"[trace]\nlevel = \"loud\"",
		"[colors]\nprimary = \"white\"",
		"[render]\nunknown = 1",
		"[render\nwidth = 1",
	} {
		_, err := Load(strings.NewReader(doc))
		assert.True(t, errors.Is(err, ErrInvalid), "%q: got %v", doc, err)
	}
}

func TestOpen(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	file := filepath.Join(t.TempDir(), "epicycle.toml")
	require.NoError(t, os.WriteFile(file, []byte("[trace]\nlevel = \"debug\"\n"), 0o644))
	c, err := Open(file)
	require.NoError(t, err)
	level, ok := TraceLevel(c.Trace.Level)
	assert.True(t, ok)
	assert.Equal(t, tracing.LevelDebug, level)
	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
