package levelstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/storage"
)

// DebounceInterval is how long a path must stay quiet before it is imported.
const DebounceInterval = 100 * time.Millisecond

// Sink receives imported levels. *Server satisfies it.
type Sink interface {
	Import(id string, d level.Descriptor) (bool, error)
	Remove(id string) error
}

// Importer mirrors a directory of level files into a Sink.
// Each *.json file becomes the level whose id is the file's base name.
type Importer struct {
	dir     string
	sink    Sink
	logger  *log.Logger
	watcher *fsnotify.Watcher

	// OnImport, if set, is called after every handled path. Tests use it.
	OnImport func(id string, err error)

	closeOnce sync.Once
}

// NewImporter starts watching dir. Call Scan for files already present and
// Run to follow changes.
func NewImporter(dir string, sink Sink, logger *log.Logger) (*Importer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("levelstore: cannot create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("levelstore: cannot watch %s: %w", dir, err)
	}
	return &Importer{
		dir:     dir,
		sink:    sink,
		logger:  logger,
		watcher: w,
	}, nil
}

// Close stops the watcher.
func (im *Importer) Close() error {
	var err error
	im.closeOnce.Do(func() {
		err = im.watcher.Close()
	})
	return err
}

// LevelID returns the level id a file maps to and whether the file is a level.
func LevelID(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".json") || strings.HasPrefix(base, ".") {
		return "", false
	}
	id := strings.TrimSuffix(base, ext)
	return id, id != ""
}

// Scan imports every level file currently in the directory, in name order.
// It returns the number of levels imported.
func (im *Importer) Scan() (int, error) {
	entries, err := os.ReadDir(im.dir)
	if err != nil {
		return 0, fmt.Errorf("levelstore: cannot read %s: %w", im.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := LevelID(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	imported := 0
	for _, name := range names {
		if err := im.sync(filepath.Join(im.dir, name)); err == nil {
			imported++
		}
	}
	return imported, nil
}

// Run follows directory changes until ctx is cancelled or the watcher closes.
func (im *Importer) Run(ctx context.Context) error {
	d := newDebouncer(DebounceInterval, ctx.Done())
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-im.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if _, ok := LevelID(event.Name); !ok {
				continue
			}
			d.touch(event.Name)
		case f := <-d.due:
			if d.take(f) {
				im.sync(f.path)
			}
		case err, ok := <-im.watcher.Errors:
			if !ok {
				return nil
			}
			im.logger.Warn("watch error", "dir", im.dir, "err", err)
		}
	}
}

// firing is a timer delivery for path. gen identifies the touch that armed it.
type firing struct {
	path string
	gen  uint64
}

type pendingPath struct {
	timer *time.Timer
	gen   uint64
}

// debouncer delays a path until it has been quiet for interval. It is owned
// by a single goroutine; only the timer callbacks send on due.
type debouncer struct {
	interval time.Duration
	done     <-chan struct{}
	due      chan firing
	pending  map[string]*pendingPath
}

func newDebouncer(interval time.Duration, done <-chan struct{}) *debouncer {
	return &debouncer{
		interval: interval,
		done:     done,
		due:      make(chan firing, 16),
		pending:  make(map[string]*pendingPath),
	}
}

// touch (re)starts the quiet period for path. A delivery from an earlier
// timer that already fired is made stale by the new generation.
func (d *debouncer) touch(path string) {
	p, ok := d.pending[path]
	if !ok {
		p = &pendingPath{}
		d.pending[path] = p
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	f := firing{path: path, gen: p.gen}
	p.timer = time.AfterFunc(d.interval, func() {
		select {
		case d.due <- f:
		case <-d.done:
		}
	})
}

// take reports whether f is the current firing for its path and clears it.
func (d *debouncer) take(f firing) bool {
	p, ok := d.pending[f.path]
	if !ok || p.gen != f.gen {
		return false
	}
	delete(d.pending, f.path)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

// sync makes the store match the file at path: present files are upserted,
// missing ones deleted.
func (im *Importer) sync(path string) error {
	id, _ := LevelID(path)
	err := im.syncLevel(id, path)
	if im.OnImport != nil {
		im.OnImport(id, err)
	}
	return err
}

func (im *Importer) syncLevel(id, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		err := im.sink.Remove(id)
		if errors.Is(err, storage.ErrLevelNotFound) {
			return nil
		}
		if err != nil {
			im.logger.Error("cannot remove level", "id", id, "err", err)
			return err
		}
		im.logger.Info("level removed", "id", id, "file", path)
		return nil
	}
	if err != nil {
		im.logger.Warn("cannot read level file", "file", path, "err", err)
		return err
	}

	d, err := level.Parse(data)
	if err == nil {
		err = level.Validate(d)
	}
	if err != nil {
		im.logger.Warn("skipping level file", "file", path, "err", err)
		return err
	}

	created, err := im.sink.Import(id, d)
	if err != nil {
		im.logger.Error("cannot import level", "id", id, "err", err)
		return err
	}
	im.logger.Info("level imported", "id", id, "created", created, "elements", len(d.Blocks))
	return nil
}
