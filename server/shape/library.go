package shape

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dm-vev/candelight/server/block/mount"
)

// ErrNotFound is returned by Library.Shape if no asset exists at a path.
var ErrNotFound = errors.New("shape asset not found")

// Path returns the asset path of the shape of a candle holder with the base
// name passed, mounted with a pose and holding a number of candles.
func Path(base string, pose mount.Pose, candles int, lit bool) string {
	p := "shapes/block/" + base + "/" + base + "-" + pose.String() + "-candle" + strconv.Itoa(candles)
	if lit {
		p += "-glow"
	}
	return p + ".json"
}

// Library loads shape assets from a file system and keeps decoded shapes
// around. Every shape is stored alongside a fingerprint of the bytes it was
// decoded from, so that Refresh only drops assets that actually changed.
// A Library is safe for concurrent use.
type Library struct {
	fsys    fs.FS
	log     *slog.Logger
	metrics *Metrics

	mu     sync.Mutex
	shapes map[string]libraryEntry

	// generation is incremented every time Refresh forgets an asset.
	generation uint64
}

type libraryEntry struct {
	shape *Shape
	sum   uint64
}

// NewLibrary creates a Library reading assets from fsys. If log is nil,
// slog.Default() is used.
func NewLibrary(fsys fs.FS, log *slog.Logger) *Library {
	if log == nil {
		log = slog.Default()
	}
	return &Library{fsys: fsys, log: log, shapes: make(map[string]libraryEntry)}
}

// WithMetrics sets the Metrics that missing assets are counted in.
func (l *Library) WithMetrics(m *Metrics) *Library {
	l.metrics = m
	return l
}

// Shape returns the shape at the path passed. ErrNotFound is returned if the
// asset does not exist. Failed lookups are never cached, so an asset that
// appears later is picked up on the next call.
func (l *Library) Shape(path string) (*Shape, error) {
	l.mu.Lock()
	entry, ok := l.shapes[path]
	l.mu.Unlock()
	if ok {
		return entry.shape, nil
	}

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.metrics.IncMissing()
			l.log.Debug("Shape asset missing.", "path", path)
			return nil, fmt.Errorf("%w: %v", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read shape %v: %w", path, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("shape %v: %w", path, err)
	}

	l.mu.Lock()
	l.shapes[path] = libraryEntry{shape: s, sum: xxhash.Sum64(data)}
	l.mu.Unlock()
	return s, nil
}

// Fingerprint returns the hash of the bytes the shape at path was decoded
// from, if it is currently loaded.
func (l *Library) Fingerprint(path string) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.shapes[path]
	return entry.sum, ok
}

// Generation returns a number that changes whenever Refresh forgets assets.
// Geometry derived from shapes of an older generation may be stale.
func (l *Library) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Refresh re-reads every loaded asset and forgets those that changed or
// disappeared. The paths forgotten are returned in sorted order.
func (l *Library) Refresh() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []string
	for path, entry := range l.shapes {
		data, err := fs.ReadFile(l.fsys, path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("refresh shape %v: %w", path, err)
		}
		if err == nil && xxhash.Sum64(data) == entry.sum {
			continue
		}
		delete(l.shapes, path)
		changed = append(changed, path)
	}
	slices.Sort(changed)
	if len(changed) > 0 {
		l.generation++
		l.log.Info("Shape assets changed.", "count", len(changed))
	}
	return changed, nil
}
