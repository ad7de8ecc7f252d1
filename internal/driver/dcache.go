package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"efguard/internal/diag"
	"efguard/internal/settings"
	"efguard/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file pass results keyed by Digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
}

// DiskPayload is the cached outcome of one pass. Spans are stored as
// offsets and rebound to the current FileID on load.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Located  bool
	Start    uint32
	End      uint32
	Args     []string
	Notes    []string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or
// ~/.cache/app) on the OS filesystem.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(afero.NewOsFs(), filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir on fsys.
func NewDiskCache(fsys afero.Fs, dir string) (*DiskCache, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{fs: fsys, dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "passes", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload; the file is replaced atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := c.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	f, err := afero.TempFile(c.fs, filepath.Dir(p), "tmp-")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = c.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = c.fs.Remove(tmp)
		return err
	}
	return c.fs.Rename(tmp, p)
}

// Get reads a payload. A missing entry is (false, nil).
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := afero.ReadFile(c.fs, c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fs.RemoveAll(filepath.Join(c.dir, "passes"))
}

func toPayload(res *Result) *DiskPayload {
	items := res.Bag.Items()
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.Path,
		Diagnostics: make([]CachedDiagnostic, 0, len(items)),
	}
	for _, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Located:  d.HasLocation(),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Args:     d.Args,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, n.Msg)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

func fromPayload(payload *DiskPayload, file *source.File, max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, cd := range payload.Diagnostics {
		sp := source.NoSpan
		if cd.Located {
			sp = source.Span{File: file.ID, Start: cd.Start, End: cd.End}
		}
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  sp,
			Args:     cd.Args,
		}
		for _, n := range cd.Notes {
			d = d.WithNote(source.NoSpan, n)
		}
		bag.Add(d)
	}
	return bag
}

func loadCached(c *DiskCache, key Digest, file *source.File, doc *settings.Document, opts Options, log logrus.FieldLogger) (*Result, bool) {
	var payload DiskPayload
	ok, err := c.Get(key, &payload)
	if err != nil {
		log.WithError(err).Debug("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	log.Debug("cache hit")
	return &Result{
		Path:     file.Path,
		FileID:   file.ID,
		Settings: doc,
		Bag:      fromPayload(&payload, file, opts.MaxDiagnostics),
		Cached:   true,
	}, true
}
