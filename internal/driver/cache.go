package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vivax3794/viv-script-blog/internal/project"
	"github.com/vivax3794/viv-script-blog/internal/version"
)

// Current schema version - increment when ArtifactPayload format changes
const artifactCacheSchemaVersion uint16 = 1

// EnvCacheDir overrides the cache location.
const EnvCacheDir = "VIV_CACHE_DIR"

// ArtifactCache хранит сгенерированные LLVM-модули на диске,
// ключ - хеш исходника плюс опции компиляции.
// Thread-safe for concurrent access.
type ArtifactCache struct {
	mu  sync.RWMutex
	dir string
}

// ArtifactPayload is one cached module.
type ArtifactPayload struct {
	Schema     uint16
	Compiler   string
	SourcePath string
	SourceHash project.Digest
	Optimized  bool
	Artifact   string
	CreatedAt  int64
}

// OpenArtifactCache opens $VIV_CACHE_DIR, else $XDG_CACHE_HOME/<app>,
// else ~/.cache/<app>.
func OpenArtifactCache(app string) (*ArtifactCache, error) {
	dir := os.Getenv(EnvCacheDir)
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	return NewArtifactCache(dir)
}

// NewArtifactCache uses dir as the cache root.
func NewArtifactCache(dir string) (*ArtifactCache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &ArtifactCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ArtifactCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// ArtifactKey mixes the source digest with everything that changes the
// emitted module. The module records path as its source_filename.
func ArtifactKey(source project.Digest, path string, optimized bool) project.Digest {
	flag := project.DigestBytes([]byte(fmt.Sprintf("optimize=%t", optimized)))
	return project.Combine(source, project.DigestBytes([]byte(path)), flag, project.DigestBytes([]byte(version.Version)))
}

func (c *ArtifactCache) pathFor(key project.Digest) string {
	// подкаталог "ll" - проще чистить руками
	return filepath.Join(c.dir, "ll", key.Hex()+".mp")
}

// Put serializes and writes a payload to the cache.
func (c *ArtifactCache) Put(key project.Digest, payload *ArtifactPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	stored := *payload
	stored.Schema = artifactCacheSchemaVersion
	stored.Compiler = version.Version
	if stored.CreatedAt == 0 {
		stored.CreatedAt = time.Now().Unix()
	}
	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmpName, p)
}

// Get reads a payload. A missing entry or one written by a different
// schema/compiler is a miss, not an error.
func (c *ArtifactCache) Get(key project.Digest) (*ArtifactPayload, bool, error) {
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

	var out ArtifactPayload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != artifactCacheSchemaVersion || out.Compiler != version.Version {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every cached entry.
func (c *ArtifactCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "ll"))
}
