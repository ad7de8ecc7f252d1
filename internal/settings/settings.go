// Package settings locates the settings document among the additional
// files of a run and checks it for connection-string entries.
package settings

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Document is a loaded settings file.
type Document struct {
	Path string
	Text string
	// Err is set when the file was found but could not be read.
	Err error
}

// Verdict is the outcome of Validate.
type Verdict uint8

const (
	OK Verdict = iota
	ResourceMissing
	KeyMissing
)

func (v Verdict) String() string {
	switch v {
	case OK:
		return "ok"
	case ResourceMissing:
		return "resource-missing"
	case KeyMissing:
		return "key-missing"
	default:
		return fmt.Sprintf("Verdict(%d)", uint8(v))
	}
}

// Find picks the first candidate whose file name ends with name (ASCII
// case-insensitive) and reads it through fsys. It returns nil when no
// candidate matches; a read failure yields a Document with Err set.
func Find(fsys afero.Fs, candidates []string, name string) *Document {
	want := strings.ToLower(name)
	for _, c := range candidates {
		if !strings.HasSuffix(strings.ToLower(filepath.ToSlash(c)), want) {
			continue
		}
		data, err := afero.ReadFile(fsys, c)
		if err != nil {
			return &Document{Path: c, Err: fmt.Errorf("read settings %s: %w", c, err)}
		}
		return &Document{Path: c, Text: string(data)}
	}
	return nil
}

// Validate checks that the document mentions both the section name and the
// quoted key. The check is substring based; the JSON is not parsed.
func Validate(doc *Document, section, key string) Verdict {
	if doc == nil || doc.Err != nil {
		return ResourceMissing
	}
	if !strings.Contains(doc.Text, `"`+key+`"`) || !strings.Contains(doc.Text, section) {
		return KeyMissing
	}
	return OK
}
