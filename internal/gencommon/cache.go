package gencommon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/Rana718/crudgen/internal/schema"
)

const (
	cacheFileName = ".crudgen_cache.json"
	cacheVersion  = "1.0"
)

// FileEntry records what a generated file was produced from and what it
// contained when written.
type FileEntry struct {
	Source string `json:"source"`
	Output string `json:"output"`
}

// GenerationCache tracks generated files for incremental generation. A file
// is rewritten when its inputs change or when it was edited on disk.
type GenerationCache struct {
	Version        string               `json:"version"`
	Files          map[string]FileEntry `json:"files"`
	LastGeneration time.Time            `json:"last_generation"`

	path string
	mu   sync.RWMutex
}

// NewGenerationCache creates a cache stored in dir and loads any existing one.
func NewGenerationCache(dir string) *GenerationCache {
	cache := &GenerationCache{
		Version: cacheVersion,
		Files:   make(map[string]FileEntry),
		path:    filepath.Join(dir, cacheFileName),
	}
	_ = cache.Load()
	return cache
}

func checksum(data []byte) string {
	return strconv.FormatUint(xxh3.Hash(data), 16)
}

// Fingerprint hashes everything about a table that reaches generated text,
// together with the generator settings.
func Fingerprint(t *schema.Table, settings string) string {
	b := GetBuilder()
	defer PutBuilder(b)

	fmt.Fprintf(b, "%s\x00%s\x00%s\x00%s\x00", t.Name, t.Author, t.SoftDeleteColumn, settings)
	for _, c := range t.Columns {
		fmt.Fprintf(b, "%s\x00%s\x00%t\x00%t\x00", c.Name, c.NativeType, c.IsIdentity, c.IsPrimaryKey)
	}
	return strconv.FormatUint(xxh3.HashString(b.String()), 16)
}

// Unchanged reports whether path was last written from source and still has
// the content that was written.
func (c *GenerationCache) Unchanged(path, source string) bool {
	c.mu.RLock()
	entry, ok := c.Files[path]
	c.mu.RUnlock()
	if !ok || entry.Source != source {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return checksum(data) == entry.Output
}

// Record stores the source fingerprint and written content of path.
func (c *GenerationCache) Record(path, source string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Files[path] = FileEntry{Source: source, Output: checksum(content)}
}

// MarkGeneration updates the last generation timestamp
func (c *GenerationCache) MarkGeneration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastGeneration = time.Now()
}

// Save persists the cache to disk
func (c *GenerationCache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0644)
}

// Load reads the cache from disk
func (c *GenerationCache) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := json.Unmarshal(data, c); err != nil {
		return err
	}

	if c.Version != cacheVersion || c.Files == nil {
		c.Files = make(map[string]FileEntry)
		c.Version = cacheVersion
	}

	return nil
}
