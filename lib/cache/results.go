// Package cache remembers diagnostics per file content so unchanged files are
// not scanned again.
package cache

import (
	"encoding/binary"
	"encoding/gob"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/zeebo/xxh3"
)

const (
	FileName = "results.bin"

	DefaultSize = 4096

	// bumped whenever the stored layout or rule output changes
	format = 1
)

type entry struct {
	Key         uint64
	Diagnostics []analyzer.Diagnostic
}

type stored struct {
	Format  int
	Entries []entry
}

// Results is safe for concurrent use. A nil *Results is a disabled cache:
// lookups miss and writes are dropped.
type Results struct {
	dir         string
	fingerprint uint64
	entries     *lru.Cache[uint64, []analyzer.Diagnostic]
}

// Open loads the cache kept in dir. fingerprint identifies the rule
// configuration; entries written under another fingerprint never hit.
func Open(dir string, size int, fingerprint uint64) (*Results, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[uint64, []analyzer.Diagnostic](size)
	if err != nil {
		return nil, err
	}

	r := &Results{dir: dir, fingerprint: fingerprint, entries: entries}
	r.load()
	return r, nil
}

func (r *Results) path() string {
	return filepath.Join(r.dir, FileName)
}

func (r *Results) load() {
	file, err := os.Open(r.path())
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("cache unreadable, starting empty", "path", r.path(), "err", err)
		}
		return
	}
	defer file.Close()

	var s stored
	if err := gob.NewDecoder(file).Decode(&s); err != nil {
		slog.Warn("cache corrupt, starting empty", "path", r.path(), "err", err)
		return
	}
	if s.Format != format {
		slog.Debug("cache format changed, starting empty", "path", r.path(), "format", s.Format)
		return
	}
	for _, e := range s.Entries {
		r.entries.Add(e.Key, e.Diagnostics)
	}
	slog.Debug("cache loaded", "path", r.path(), "entries", len(s.Entries))
}

// Key hashes content together with the configuration fingerprint.
func (r *Results) Key(content []byte) uint64 {
	var fp [8]byte
	binary.LittleEndian.PutUint64(fp[:], r.fingerprint)

	h := xxh3.New()
	h.Write(fp[:])
	h.Write(content)
	return h.Sum64()
}

func (r *Results) Get(content []byte) ([]analyzer.Diagnostic, bool) {
	if r == nil {
		return nil, false
	}
	return r.entries.Get(r.Key(content))
}

func (r *Results) Put(content []byte, diags []analyzer.Diagnostic) {
	if r == nil {
		return
	}
	r.entries.Add(r.Key(content), diags)
}

func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return r.entries.Len()
}

// Save writes the cache to disk, least recently used entries first so a
// reload keeps the recency order.
func (r *Results) Save() error {
	if r == nil {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return err
	}

	s := stored{Format: format}
	for _, k := range r.entries.Keys() {
		if diags, ok := r.entries.Peek(k); ok {
			s.Entries = append(s.Entries, entry{Key: k, Diagnostics: diags})
		}
	}

	tmp, err := os.CreateTemp(r.dir, FileName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(s); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path())
}
