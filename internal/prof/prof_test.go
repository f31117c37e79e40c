package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{MemPath: "m.out"}.Enabled())
}

func TestSessionWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUPath:   filepath.Join(dir, "cpu.out"),
		MemPath:   filepath.Join(dir, "mem.out"),
		TracePath: filepath.Join(dir, "trace.out"),
	}
	s, err := Start(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, path := range []string{cfg.CPUPath, cfg.MemPath, cfg.TracePath} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
}

func TestStartBadPath(t *testing.T) {
	_, err := Start(Config{CPUPath: filepath.Join(t.TempDir(), "missing", "cpu.out")})
	assert.Error(t, err)
}
