package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Normalization modes for [tokenize].normalize.
const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
)

// Manifest is a loaded darwin.toml.
type Manifest struct {
	Path   string // пусто, если файл не найден
	Root   string
	Config Config
}

type Config struct {
	Tokenize TokenizeConfig `toml:"tokenize"`
}

// TokenizeConfig is the [tokenize] table.
type TokenizeConfig struct {
	Extensions []string `toml:"extensions"`
	Jobs       int      `toml:"jobs"`
	SkipTrivia bool     `toml:"skip_trivia"`
	Normalize  string   `toml:"normalize"`
	Cache      bool     `toml:"cache"`
}

// DefaultConfig is what an absent darwin.toml means.
func DefaultConfig() Config {
	return Config{
		Tokenize: TokenizeConfig{
			Extensions: []string{".dw"},
			Normalize:  NormalizeNone,
			Cache:      true,
		},
	}
}

// Load finds darwin.toml above startDir and decodes it over DefaultConfig.
// A missing manifest is not an error: the defaults come back with an empty Path.
func Load(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			root = startDir
		}
		return &Manifest{Root: root, Config: DefaultConfig()}, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// ConfigError reports a darwin.toml that exists but cannot be used.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Position returns the byte range of a TOML syntax error, if the
// decoder reported one.
func (e *ConfigError) Position() (start, length int, ok bool) {
	var pe toml.ParseError
	if !errors.As(e.Err, &pe) || pe.Position.Len == 0 {
		return 0, 0, false
	}
	return pe.Position.Start, pe.Position.Len, true
}

// LoadConfig decodes and validates one manifest file. Every failure is
// a *ConfigError.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, &ConfigError{Path: path, Err: fmt.Errorf("unknown key %s", undecoded[0])}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Validate checks value ranges and normalises Normalize to lower case.
func (c *Config) Validate() error {
	t := &c.Tokenize
	if t.Jobs < 0 {
		return fmt.Errorf("[tokenize].jobs must be >= 0, got %d", t.Jobs)
	}
	t.Normalize = strings.ToLower(strings.TrimSpace(t.Normalize))
	if t.Normalize == "" {
		t.Normalize = NormalizeNone
	}
	if !slices.Contains([]string{NormalizeNone, NormalizeNFC}, t.Normalize) {
		return fmt.Errorf("[tokenize].normalize must be %q or %q, got %q", NormalizeNone, NormalizeNFC, t.Normalize)
	}
	if len(t.Extensions) == 0 {
		return fmt.Errorf("[tokenize].extensions must not be empty")
	}
	for _, ext := range t.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[tokenize].extensions: %q must start with a dot", ext)
		}
	}
	return nil
}

// NormalizeNFC reports whether sources are normalised to NFC on load.
func (t TokenizeConfig) NormalizeNFC() bool {
	return t.Normalize == NormalizeNFC
}
