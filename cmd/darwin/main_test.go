package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darwin/internal/diagfmt"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decodeTokens(t *testing.T, raw string) diagfmt.TokensOutput {
	t.Helper()
	var out diagfmt.TokensOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &out), raw)
	return out
}

func TestTokenizeFilePretty(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "a.dw", "x = 1")

	res := runCLI(t, "--color", "off", "tokenize", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stderr)

	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Identifier")
	assert.Contains(t, lines[0], `"x"`)
	assert.Contains(t, lines[2], "Operator")
	assert.Contains(t, lines[4], "DecimalLiteral")
	assert.Contains(t, lines[5], "EndOfText")
}

func TestTokenizeSkipTrivia(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "a.dw", "x = 1 # done\n")

	res := runCLI(t, "tokenize", "--format", "json", "--skip-trivia", "--no-cache", path)
	require.Equal(t, 0, res.code, res.stderr)

	out := decodeTokens(t, res.stdout)
	require.Len(t, out.Files, 1)
	var kinds []string
	for _, tok := range out.Files[0].Tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []string{"Identifier", "Operator", "DecimalLiteral", "EndOfText"}, kinds)
}

func TestTokenizeLexicalErrorsExitNonZero(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "bad.dw", "a ` 0x\n")

	res := runCLI(t, "--color", "off", "tokenize", "--no-cache", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "LEX1001")
	assert.Contains(t, res.stderr, "LEX1004")
	assert.NotContains(t, res.stderr, "error: ")
	// токены всё равно печатаются
	assert.Contains(t, res.stdout, "Error")
}

func TestTokenizeJSONEmbedsDiagnostics(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "bad.dw", "`")

	res := runCLI(t, "tokenize", "--format", "json", "--no-cache", path)
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stderr)

	out := decodeTokens(t, res.stdout)
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].Diagnostics, 1)
	assert.Equal(t, "LEX1001", out.Files[0].Diagnostics[0].Code)
}

func TestTokenizeDirSortedAndCached(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "b.dw", "b")
	writeSource(t, dir, "a.dw", "a")
	writeSource(t, dir, "sub/c.dw", "c")
	writeSource(t, dir, "notes.txt", "ignored")

	first := runCLI(t, "tokenize", "--format", "json", "--ui", "off", "--jobs", "2", "--path-mode", "basename", dir)
	require.Equal(t, 0, first.code, first.stderr)
	out := decodeTokens(t, first.stdout)
	require.Len(t, out.Files, 3)
	assert.Equal(t, "a.dw", out.Files[0].File)
	assert.Equal(t, "b.dw", out.Files[1].File)
	assert.Equal(t, "c.dw", out.Files[2].File)
	for _, f := range out.Files {
		assert.False(t, f.Cached, f.File)
	}

	second := runCLI(t, "tokenize", "--format", "json", "--ui", "off", "--path-mode", "basename", dir)
	require.Equal(t, 0, second.code, second.stderr)
	out = decodeTokens(t, second.stdout)
	require.Len(t, out.Files, 3)
	for _, f := range out.Files {
		assert.True(t, f.Cached, f.File)
	}
}

func TestTokenizeStats(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "a.dw", "a b")
	writeSource(t, dir, "b.dw", "1")

	res := runCLI(t, "--color", "off", "tokenize", "--format", "stats", "--ui", "off", "--no-cache", dir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Identifier")
	assert.Contains(t, res.stdout, "(2 files, 4 bytes)")
}

func TestTokenizeManifestExtensions(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "darwin.toml", "[tokenize]\nextensions = [\".src\"]\n")
	writeSource(t, dir, "a.src", "a")
	writeSource(t, dir, "b.dw", "b")

	res := runCLI(t, "tokenize", "--format", "json", "--ui", "off", "--path-mode", "basename", dir)
	require.Equal(t, 0, res.code, res.stderr)
	out := decodeTokens(t, res.stdout)
	require.Len(t, out.Files, 1)
	assert.Equal(t, "a.src", out.Files[0].File)

	res = runCLI(t, "tokenize", "--format", "json", "--ui", "off", "--ext", ".dw", "--path-mode", "basename", dir)
	require.Equal(t, 0, res.code, res.stderr)
	out = decodeTokens(t, res.stdout)
	require.Len(t, out.Files, 1)
	assert.Equal(t, "b.dw", out.Files[0].File)
}

func TestTokenizeBadManifest(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "darwin.toml", "[tokenize]\nunknown = 1\n")
	path := writeSource(t, dir, "a.dw", "a")

	res := runCLI(t, "tokenize", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "PRJ5001")
	assert.Contains(t, res.stderr, "unknown key tokenize.unknown")
	assert.Contains(t, res.stderr, "darwin.toml")
	assert.NotContains(t, res.stderr, "error: ")
	assert.Empty(t, res.stdout)
}

func TestTokenizeManifestSyntaxErrorHasPosition(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "darwin.toml", "[tokenize]\njobs = = 1\n")
	writeSource(t, dir, "a.dw", "a")

	res := runCLI(t, "--color", "off", "tokenize", "--ui", "off", dir)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "PRJ5001")
	assert.Contains(t, res.stderr, "darwin.toml:2:")
}

func TestTokenizeUsageErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.dw", "a")

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"tokenize", filepath.Join(t.TempDir(), "nope.dw")}, "error: "},
		{"bad format", []string{"tokenize", "--format", "xml", path}, "unknown format"},
		{"bad path mode", []string{"tokenize", "--path-mode", "weird", path}, "invalid path mode"},
		{"bad normalize", []string{"tokenize", "--normalize", "nfd", path}, "normalize"},
		{"bad trace level", []string{"--trace-level", "loud", "tokenize", path}, "error: "},
		{"no args", []string{"tokenize"}, "error: "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, tc.args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tc.want)
		})
	}
}

func TestTraceStreamToStderr(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "a.dw", "a")

	res := runCLI(t, "--trace", "-", "--trace-level", "file", "--trace-format", "text", "tokenize", "--no-cache", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "darwin tokenize")
	assert.Contains(t, res.stderr, "file:")
}

func TestTraceRingDumpedOnFailure(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "bad.dw", "`")

	res := runCLI(t, "--color", "off", "--trace-level", "phase", "--trace-mode", "ring", "tokenize", "--no-cache", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "trace: last events before failure:")
	assert.Contains(t, res.stderr, "darwin tokenize")
}

func TestTimings(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeSource(t, t.TempDir(), "a.dw", "a")

	res := runCLI(t, "--timings", "tokenize", "--no-cache", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "timings:")
	assert.Contains(t, res.stderr, "tokenize")
	assert.Contains(t, res.stderr, "total")
}

func TestInitWritesLoadableManifest(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := filepath.Join(t.TempDir(), "proj")

	res := runCLI(t, "init", dir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "darwin.toml")
	assert.FileExists(t, filepath.Join(dir, "darwin.toml"))

	writeSource(t, dir, "a.dw", "a")
	res = runCLI(t, "tokenize", "--ui", "off", dir)
	assert.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, "init", dir)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "already initialized")
}

func TestClean(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "a.dw", "a")
	writeSource(t, dir, "b.dw", "b")

	res := runCLI(t, "tokenize", "--ui", "off", dir)
	require.Equal(t, 0, res.code, res.stderr)

	res = runCLI(t, "clean")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "removed 2 cached files")

	res = runCLI(t, "clean")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "removed 0 cached files")
}

func TestVersionJSON(t *testing.T) {
	res := runCLI(t, "version", "--format", "json", "--full")
	require.Equal(t, 0, res.code, res.stderr)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &payload))
	assert.Equal(t, "darwin", payload.Tool)
	assert.Equal(t, versionTagline, payload.Tagline)
	assert.NotEmpty(t, payload.Version)
	assert.NotEmpty(t, payload.GitCommit)
	assert.NotEmpty(t, payload.BuildDate)
}

func TestVersionPretty(t *testing.T) {
	res := runCLI(t, "--color", "off", "version")
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "darwin "), res.stdout)
	assert.Contains(t, res.stdout, "--full")
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)

	var buf bytes.Buffer
	assert.True(t, shouldUseTUI(uiModeOn, &buf))
	assert.False(t, shouldUseTUI(uiModeOff, &buf))
	assert.False(t, shouldUseTUI(uiModeAuto, &buf))
}

func TestMemProfileWritten(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeSource(t, dir, "a.dw", "a")
	memPath := filepath.Join(dir, "mem.out")

	res := runCLI(t, "--mem-profile", memPath, "tokenize", "--no-cache", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, memPath)
}
