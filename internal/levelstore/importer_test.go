package levelstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/storage"
)

type memorySink struct {
	mu     sync.Mutex
	levels map[string]level.Descriptor
}

func newMemorySink() *memorySink {
	return &memorySink{levels: make(map[string]level.Descriptor)}
}

func (m *memorySink) Import(id string, d level.Descriptor) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.levels[id]
	m.levels[id] = d
	return !exists, nil
}

func (m *memorySink) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.levels[id]; !ok {
		return storage.ErrLevelNotFound
	}
	delete(m.levels, id)
	return nil
}

func (m *memorySink) get(id string) (level.Descriptor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.levels[id]
	return d, ok
}

func TestLevelID(t *testing.T) {
	tests := []struct {
		path string
		id   string
		ok   bool
	}{
		{"/tmp/levels/castle.json", "castle", true},
		{"tower.JSON", "tower", true},
		{"notes.txt", "", false},
		{".hidden.json", "", false},
		{"/tmp/levels/.json", "", false},
	}
	for _, tc := range tests {
		id, ok := LevelID(tc.path)
		if id != tc.id || ok != tc.ok {
			t.Errorf("LevelID(%q) = %q, %v; expected %q, %v", tc.path, id, ok, tc.id, tc.ok)
		}
	}
}

func TestImporterScan(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "one.json"), []byte(sampleDoc), 0o644)
	os.WriteFile(filepath.Join(dir, "two.json"), []byte(sampleDoc), 0o644)
	os.WriteFile(filepath.Join(dir, "empty.json"), []byte(`{"blocks":[]}`), 0o644)
	os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# levels"), 0o644)

	sink := newMemorySink()
	im, err := NewImporter(dir, sink, nil)
	if err != nil {
		t.Fatalf("NewImporter() failed: %v", err)
	}
	defer im.Close()

	n, err := im.Scan()
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Scan() imported %d levels, expected 2", n)
	}
	for _, id := range []string{"one", "two"} {
		if _, ok := sink.get(id); !ok {
			t.Errorf("level %q was not imported", id)
		}
	}
	if _, ok := sink.get("empty"); ok {
		t.Error("empty level should be skipped")
	}
}

func TestImporterFollowsChanges(t *testing.T) {
	dir := t.TempDir()
	sink := newMemorySink()
	im, err := NewImporter(dir, sink, nil)
	if err != nil {
		t.Fatalf("NewImporter() failed: %v", err)
	}
	defer im.Close()

	handled := make(chan string, 16)
	im.OnImport = func(id string, err error) {
		if err == nil {
			handled <- id
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go im.Run(ctx)

	path := filepath.Join(dir, "castle.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	waitFor(t, handled, "castle")

	d, ok := sink.get("castle")
	if !ok {
		t.Fatal("castle was not imported")
	}
	if targets, _, _ := d.Counts(); targets != 1 {
		t.Errorf("castle targets = %d, expected 1", targets)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	waitFor(t, handled, "castle")

	if _, ok := sink.get("castle"); ok {
		t.Error("castle should be removed after its file is deleted")
	}
}

func waitFor(t *testing.T, ch <-chan string, id string) {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == id {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", id)
		}
	}
}

func TestImporterFeedsServer(t *testing.T) {
	srv, _ := newTestServer(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "dropped.json"), []byte(sampleDoc), 0o644)

	im, err := NewImporter(dir, srv, nil)
	if err != nil {
		t.Fatalf("NewImporter() failed: %v", err)
	}
	defer im.Close()

	if n, err := im.Scan(); err != nil || n != 1 {
		t.Fatalf("Scan() = %d, %v", n, err)
	}

	d, err := srv.repo.Level("dropped")
	if err != nil {
		t.Fatalf("Level() failed: %v", err)
	}
	if len(d.Blocks) != 3 {
		t.Errorf("stored %d blocks, expected 3", len(d.Blocks))
	}
}

func TestDebouncerIgnoresStaleFiring(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	d := newDebouncer(10*time.Millisecond, done)
	defer d.stop()

	path := filepath.Join("levels", "one.json")
	d.touch(path)
	time.Sleep(50 * time.Millisecond) // first timer has fired into the buffer
	d.touch(path)

	var takes int
	for i := 0; i < 2; i++ {
		select {
		case f := <-d.due:
			if d.take(f) {
				takes++
			}
		case <-time.After(time.Second):
			t.Fatalf("delivery %d never arrived", i+1)
		}
	}
	if takes != 1 {
		t.Errorf("takes = %d, expected 1", takes)
	}

	select {
	case f := <-d.due:
		t.Errorf("unexpected delivery %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerTouchSupersedes(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	d := newDebouncer(time.Hour, done)
	defer d.stop()

	d.touch("a.json")
	d.touch("a.json")

	tests := []struct {
		name string
		f    firing
		want bool
	}{
		{"superseded", firing{path: "a.json", gen: 1}, false},
		{"current", firing{path: "a.json", gen: 2}, true},
		{"already taken", firing{path: "a.json", gen: 2}, false},
		{"unknown path", firing{path: "b.json", gen: 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.take(tc.f); got != tc.want {
				t.Errorf("take(%+v) = %v, expected %v", tc.f, got, tc.want)
			}
		})
	}
}
