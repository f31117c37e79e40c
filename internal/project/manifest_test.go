package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutManifest(t *testing.T) {
	m, err := Load(t.TempDir())
	require.NoError(t, err)
	// TempDir может лежать под каталогом с darwin.toml только в странной среде
	if m.Path != "" {
		t.Skipf("found unrelated manifest %s", m.Path)
	}
	assert.Equal(t, DefaultConfig(), m.Config)
}

func TestLoadFindsManifestUpwards(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `
[tokenize]
extensions = [".dw", ".darwin"]
jobs = 3
skip_trivia = true
normalize = "NFC"
`)
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	m, err := Load(sub)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	assert.Equal(t, root, m.Root)

	tc := m.Config.Tokenize
	assert.Equal(t, []string{".dw", ".darwin"}, tc.Extensions)
	assert.Equal(t, 3, tc.Jobs)
	assert.True(t, tc.SkipTrivia)
	assert.True(t, tc.NormalizeNFC())
	// cache не указан: остаётся значение по умолчанию
	assert.True(t, tc.Cache)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[tokenize\n", "failed to parse TOML"},
		{"unknown_key", "[tokenize]\ncolour = true\n", "unknown key tokenize.colour"},
		{"negative_jobs", "[tokenize]\njobs = -1\n", "[tokenize].jobs"},
		{"bad_normalize", "[tokenize]\nnormalize = \"nfd\"\n", "[tokenize].normalize"},
		{"empty_extensions", "[tokenize]\nextensions = []\n", "must not be empty"},
		{"extension_without_dot", "[tokenize]\nextensions = [\"dw\"]\n", "must start with a dot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), path)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, path, cfgErr.Path)
		})
	}
}

func TestConfigErrorPosition(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[tokenize]\njobs = = 1\n")
	_, err := LoadConfig(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	start, length, ok := cfgErr.Position()
	require.True(t, ok)
	assert.Positive(t, length)
	assert.GreaterOrEqual(t, start, len("[tokenize]\n"))

	path = writeManifest(t, t.TempDir(), "[tokenize]\njobs = -1\n")
	_, err = LoadConfig(path)
	require.ErrorAs(t, err, &cfgErr)
	_, _, ok = cfgErr.Position()
	assert.False(t, ok)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "")
	got, ok, err := FindProjectRoot(root)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, root, got)
}
