package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"darwin/internal/token"
)

// Current schema version - increment when diskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит потоки токенов на диске, ключ: SHA-256 содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// diskPayload is the on-disk form of a token stream. Starts are not stored:
// each token starts where the previous one ended.
type diskPayload struct {
	Schema uint16   `msgpack:"schema"`
	Kinds  []uint8  `msgpack:"kinds"`
	Ends   []uint32 `msgpack:"ends"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(key[:])+".mp")
}

// Put serializes toks and atomically replaces the entry for key.
func (c *DiskCache) Put(key [32]byte, toks []token.Token) error {
	if c == nil {
		return nil
	}
	payload := diskPayload{
		Schema: diskCacheSchemaVersion,
		Kinds:  make([]uint8, len(toks)),
		Ends:   make([]uint32, len(toks)),
	}
	for i, tok := range toks {
		payload.Kinds[i] = uint8(tok.Kind)
		payload.Ends[i] = tok.Range.End
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get loads the token stream stored for key. textLen is the length of the
// content the stream must cover; an entry that does not fit it, or was
// written by another schema, is a miss rather than an error.
func (c *DiskCache) Get(key [32]byte, textLen uint32) ([]token.Token, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	toks, ok := payload.tokens(textLen)
	return toks, ok, nil
}

// tokens rebuilds the stream, checking that it still partitions textLen bytes.
func (p *diskPayload) tokens(textLen uint32) ([]token.Token, bool) {
	if p.Schema != diskCacheSchemaVersion || len(p.Kinds) == 0 || len(p.Kinds) != len(p.Ends) {
		return nil, false
	}
	toks := make([]token.Token, len(p.Kinds))
	var start uint32
	last := len(p.Kinds) - 1
	for i, k := range p.Kinds {
		kind := token.Kind(k)
		end := p.Ends[i]
		if !kind.Valid() || end < start || end > textLen {
			return nil, false
		}
		if kind.IsEOF() != (i == last) || (i != last && end == start) {
			return nil, false
		}
		toks[i] = token.Token{Kind: kind, Range: token.Range{Start: start, End: end}}
		start = end
	}
	if start != textLen {
		return nil, false
	}
	return toks, true
}

// Len returns the number of stored entries.
func (c *DiskCache) Len() (int, error) {
	if c == nil {
		return 0, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	matches, err := filepath.Glob(filepath.Join(c.dir, "tokens", "*.mp"))
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, затем удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func textLen(content []byte) uint32 {
	n, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("len content overflow: %w", err))
	}
	return n
}
