// Package document reads and writes files for the editor, detecting their
// character encoding and language.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/syntax"
)

// Errors returned by document operations.
var (
	ErrNotRegular          = errors.New("not a regular file")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrDecode              = errors.New("cannot decode content")
	ErrEncode              = errors.New("cannot encode content")
)

// Detector maps a file path to a language name.
type Detector interface {
	Detect(path string) string
}

// Document is a file's decoded content.
type Document struct {
	Path       string
	Name       string
	Content    string // UTF-8, line endings normalized to \n
	Encoding   Encoding
	LineEnding buffer.LineEnding
	Language   string
	Binary     bool
}

// Load reads path, decodes it and detects its language with det. A nil
// det leaves the language as plain text.
func Load(path string, det Detector) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("open %s: %w", path, ErrNotRegular)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := FromBytes(path, raw, det)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// FromBytes builds a Document from raw file content.
func FromBytes(path string, raw []byte, det Detector) (*Document, error) {
	text, enc, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:       path,
		Name:       filepath.Base(path),
		Content:    lf(text),
		Encoding:   enc,
		LineEnding: buffer.DetectLineEnding(text),
		Language:   syntax.PlainText,
		Binary:     IsBinary(raw),
	}
	if path == "" {
		doc.Name = "Untitled"
	}
	if det != nil && path != "" {
		doc.Language = det.Detect(path)
	}
	return doc, nil
}

// Save writes content to path in enc, creating parent directories.
func Save(path, content string, enc Encoding) error {
	data, err := Encode(content, enc)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Save writes the document back in its encoding and line ending style.
func (d *Document) Save(content string) error {
	content = lf(content)
	out := content
	if d.LineEnding == buffer.LineEndingCRLF {
		out = strings.ReplaceAll(content, "\n", "\r\n")
	}
	if err := Save(d.Path, out, d.Encoding); err != nil {
		return err
	}
	d.Content = content
	return nil
}

func lf(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
