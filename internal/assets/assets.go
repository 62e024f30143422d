// Package assets resolves model paths to renderables in the background.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/islandview/internal/scene"
)

var (
	// ErrNotFound is returned when no asset root contains the path.
	ErrNotFound = errors.New("asset not found")
	// ErrUnsupported is returned for file types without a decoder.
	ErrUnsupported = errors.New("unsupported asset type")
)

// Decoder turns raw asset bytes into a renderable.
type Decoder func(path string, data []byte) (*scene.Renderable, error)

// DefaultWorkers is the number of loads allowed to read at once.
const DefaultWorkers = 4

const readChunk = 32 * 1024

// Loader loads assets from a list of root directories.
// Roots are searched in reverse order (last added = highest priority).
type Loader struct {
	roots    []string
	cache    *Cache
	decoders map[string]Decoder

	sem   *semaphore.Weighted
	group errgroup.Group
	reads singleflight.Group
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewLoader creates a loader reading from roots with at most workers
// concurrent reads.
func NewLoader(roots []string, workers int, log *zap.Logger) *Loader {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}
	l := &Loader{
		roots:    append([]string(nil), roots...),
		cache:    NewCache(),
		decoders: make(map[string]Decoder),
		sem:      semaphore.NewWeighted(int64(workers)),
		log:      log,
	}
	for _, ext := range []string{".gltf", ".glb", ".dae", ".obj"} {
		l.decoders[ext] = DecodeModel
	}
	return l
}

// AddRoot adds a directory to search.
func (l *Loader) AddRoot(dir string) {
	l.mu.Lock()
	l.roots = append(l.roots, dir)
	l.mu.Unlock()
}

// Register sets the decoder for a file extension such as ".gltf".
func (l *Loader) Register(ext string, d Decoder) {
	l.mu.Lock()
	l.decoders[strings.ToLower(ext)] = d
	l.mu.Unlock()
}

// Load resolves path in the background and reports through cb.
// It returns immediately.
func (l *Loader) Load(ctx context.Context, path string, cb scene.Callbacks) {
	l.group.Go(func() error {
		r, err := l.load(ctx, path, cb.OnProgress)
		if err != nil {
			if cb.OnError != nil {
				cb.OnError(err)
			}
			return nil
		}
		if cb.OnSuccess != nil {
			cb.OnSuccess(r)
		}
		return nil
	})
}

// Wait blocks until every started load has reported.
func (l *Loader) Wait() {
	_ = l.group.Wait()
}

// Cache returns the raw-bytes cache shared by all loads.
func (l *Loader) Cache() *Cache {
	return l.cache
}

func (l *Loader) load(ctx context.Context, path string, progress func(float64)) (*scene.Renderable, error) {
	l.mu.RLock()
	decode, ok := l.decoders[strings.ToLower(filepath.Ext(path))]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	data, ok := l.cache.Get(path)
	if ok {
		l.log.Debug("asset cache hit", zap.String("path", path))
	} else {
		// Concurrent loads of one path share a single read. Only the load
		// doing the read reports progress, and its ctx governs the read.
		v, err, shared := l.reads.Do(path, func() (any, error) {
			if data, ok := l.cache.peek(path); ok {
				return data, nil
			}
			if err := l.sem.Acquire(ctx, 1); err != nil {
				return nil, err
			}
			defer l.sem.Release(1)

			data, err := l.read(ctx, path, progress)
			if err != nil {
				return nil, err
			}
			l.cache.Set(path, data)
			return data, nil
		})
		if err != nil {
			return nil, err
		}
		if shared {
			l.log.Debug("asset read shared", zap.String("path", path))
		}
		data = v.([]byte)
	}

	r, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return r, nil
}

// resolve finds path under the roots.
func (l *Loader) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return path, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.roots) - 1; i >= 0; i-- {
		full := filepath.Join(l.roots[i], path)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// read reads the file in chunks, reporting the fraction read after each.
func (l *Loader) read(ctx context.Context, path string, progress func(float64)) ([]byte, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", full, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", full, err)
	}
	total := info.Size()

	data := make([]byte, 0, total)
	buf := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := f.Read(buf)
		data = append(data, buf[:n]...)
		if n > 0 && total > 0 && progress != nil {
			progress(float64(len(data)) / float64(total))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", full, err)
		}
	}

	l.log.Debug("asset read", zap.String("path", full), zap.Int("bytes", len(data)))
	return data, nil
}

// DefaultModelBounds is the placeholder box for models; their geometry is
// not decoded.
var DefaultModelBounds = scene.AABB{-5, 0, -5, 5, 10, 5}

// DecodeModel wraps a model file as a renderable without parsing it.
func DecodeModel(path string, data []byte) (*scene.Renderable, error) {
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	r := scene.NewRenderable(name, scene.KindModel, DefaultModelBounds)
	r.Source = path
	r.Color = [3]float32{0.9, 0.55, 0.2}
	return r, nil
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// peek looks up key without touching the stats.
func (c *Cache) peek(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
