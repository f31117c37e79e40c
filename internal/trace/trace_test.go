package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "phase", "file", "debug"} {
		l, err := ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, s, l.String())
	}
	l, err := ParseLevel("FILE")
	require.NoError(t, err)
	assert.Equal(t, LevelFile, l)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestShouldEmit(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelFile.ShouldEmit(ScopeFile))
	assert.False(t, LevelFile.ShouldEmit(ScopeToken))
	assert.True(t, LevelDebug.ShouldEmit(ScopeToken))
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	assert.Equal(t, Nop, tr)
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelFile, Mode: ModeStream, Format: FormatText, Output: &buf})
	require.NoError(t, err)

	root := Begin(tr, ScopeDriver, "tokenize", 0)
	Point(tr, ScopeFile, "cache", "hit", root.ID())
	Point(tr, ScopeToken, "token", "filtered", root.ID())
	root.WithExtra("files", "2").WithExtra("errors", "0").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, out)
	assert.Contains(t, lines[0], "→ tokenize")
	assert.Contains(t, lines[1], "• cache (hit)")
	assert.Contains(t, lines[2], "← tokenize (ok) {errors=0, files=2}")
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopePass, "scan", 7).End("")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		assert.Equal(t, "scan", ev["name"])
		assert.Equal(t, "pass", ev["scope"])
		assert.EqualValues(t, 7, ev["parent_id"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeFile, name, "", 0)
	}
	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"c", "d", "e"}, []string{snap[0].Name, snap[1].Name, snap[2].Name})
	assert.Less(t, snap[0].Seq, snap[2].Seq)

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf, FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestModeBothFindsRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	require.NoError(t, err)
	Point(tr, ScopePass, "load", "", 0)

	r, ok := Ring(tr)
	require.True(t, ok)
	assert.Len(t, r.Snapshot(), 1)
	assert.NotEmpty(t, buf.String())
	assert.NoError(t, tr.Close())
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Nop, FromContext(ctx))

	r := NewRingTracer(4, LevelPhase)
	ctx = WithTracer(ctx, r)
	assert.Equal(t, Tracer(r), FromContext(ctx))

	span := Begin(r, ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, span)
	assert.Equal(t, span.ID(), ParentSpan(ctx))

	// неактивный span не меняет контекст
	inert := Begin(Nop, ScopeDriver, "x", 0)
	assert.Equal(t, ctx, WithSpan(ctx, inert))
}
