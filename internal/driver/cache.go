package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sodagql/internal/transform"
)

// Bump when the payload layout changes; stale entries miss instead of
// decoding garbage.
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// CacheKey hashes everything a transform result depends on: the schema
// version, the artifact, the serialized config and the source bytes.
func CacheKey(artifactJSON []byte, cfg transform.Config, source []byte) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], cacheSchemaVersion)
	h.Write(schema[:])
	h.Write(artifactJSON)
	if cfgJSON, err := json.Marshal(cfg); err == nil {
		h.Write(cfgJSON)
	}
	h.Write(source)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// cachePayload is the msgpack shape stored per transformed file.
type cachePayload struct {
	Schema      uint16
	OutputCode  string
	Transformed bool
	Errors      []transform.PluginError
	SourceMap   *string
}

func payloadFromResult(res *transform.Result) *cachePayload {
	return &cachePayload{
		Schema:      cacheSchemaVersion,
		OutputCode:  res.OutputCode,
		Transformed: res.Transformed,
		Errors:      res.Errors,
		SourceMap:   res.SourceMap,
	}
}

func (p *cachePayload) result() *transform.Result {
	if p == nil || p.Schema != cacheSchemaVersion {
		return nil
	}
	return &transform.Result{
		OutputCode:  p.OutputCode,
		Transformed: p.Transformed,
		Errors:      p.Errors,
		SourceMap:   p.SourceMap,
	}
}

// DiskCache stores transform results by content digest. Safe for
// concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes a disk cache at the standard location:
// $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a result under key, writing through a temp file so
// concurrent readers never see a partial entry.
func (c *DiskCache) Put(key Digest, res *transform.Result) error {
	if c == nil {
		return nil
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
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payloadFromResult(res)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads a cached result. The second return is false on a miss or a
// schema mismatch.
func (c *DiskCache) Get(key Digest) (*transform.Result, bool, error) {
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

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	res := payload.result()
	if res == nil {
		return nil, false, nil
	}
	return res, true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
