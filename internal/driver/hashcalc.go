package driver

import (
	"crypto/sha256"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"efguard/internal/settings"
	"efguard/internal/source"
)

// Digest is a sha256 cache key.
type Digest [32]byte

// cacheKey: H(schema || source || settings state || config || symbols).
// The settings state distinguishes a missing document from an unreadable
// one so both keep their own cached verdict.
func cacheKey(file *source.File, doc *settings.Document, opts Options) (Digest, error) {
	cfg, err := msgpack.Marshal(opts.Config)
	if err != nil {
		return Digest{}, fmt.Errorf("encode config: %w", err)
	}
	syms, err := msgpack.Marshal(opts.Symbols)
	if err != nil {
		return Digest{}, fmt.Errorf("encode symbols: %w", err)
	}
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "efguard/%d\x00", diskCacheSchemaVersion)
	_, _ = h.Write(file.Hash[:])
	switch {
	case doc == nil:
		_, _ = h.Write([]byte{0})
	case doc.Err != nil:
		_, _ = h.Write([]byte{1})
	default:
		_, _ = h.Write([]byte{2})
		_, _ = h.Write([]byte(doc.Text))
	}
	_, _ = h.Write(cfg)
	_, _ = h.Write(syms)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}
