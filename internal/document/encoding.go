package document

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names a supported character encoding.
type Encoding string

const (
	// UTF8 is UTF-8 without a byte order mark (default).
	UTF8 Encoding = "utf-8"

	// UTF8BOM is UTF-8 with a byte order mark.
	UTF8BOM Encoding = "utf-8-sig"

	// UTF16LE is UTF-16 little endian with a byte order mark.
	UTF16LE Encoding = "utf-16le"

	// UTF16BE is UTF-16 big endian with a byte order mark.
	UTF16BE Encoding = "utf-16be"

	// Latin1 is ISO-8859-1. Every byte sequence decodes, so it is the
	// last resort.
	Latin1 Encoding = "latin-1"

	// Windows1252 is the Windows Western code page.
	Windows1252 Encoding = "cp1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect returns the encoding of content: a byte order mark wins, then
// valid UTF-8, then Latin-1.
func Detect(content []byte) Encoding {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(content, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(content, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(content):
		return UTF8
	default:
		return Latin1
	}
}

// codec returns the x/text encoding for enc. UTF-8 variants return nil.
func codec(enc Encoding) (encoding.Encoding, error) {
	switch enc {
	case UTF8, UTF8BOM, "":
		return nil, nil
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case Latin1:
		return charmap.ISO8859_1, nil
	case Windows1252:
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, enc)
	}
}

// Decode converts content to UTF-8 text, detecting its encoding.
func Decode(content []byte) (string, Encoding, error) {
	enc := Detect(content)
	text, err := DecodeAs(content, enc)
	return text, enc, err
}

// DecodeAs converts content in enc to UTF-8 text.
func DecodeAs(content []byte, enc Encoding) (string, error) {
	if enc == UTF8BOM {
		return string(bytes.TrimPrefix(content, bomUTF8)), nil
	}
	c, err := codec(enc)
	if err != nil {
		return "", err
	}
	if c == nil {
		if !utf8.Valid(content) {
			return "", fmt.Errorf("%w: invalid utf-8", ErrDecode)
		}
		return string(content), nil
	}
	out, _, err := transform.Bytes(c.NewDecoder(), content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 text to enc, writing a byte order mark for the
// encodings that carry one.
func Encode(text string, enc Encoding) ([]byte, error) {
	if enc == UTF8BOM {
		return append(append([]byte{}, bomUTF8...), text...), nil
	}
	c, err := codec(enc)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(c.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return out, nil
}

// IsBinary reports whether content looks like binary data: a NUL byte in
// the first 8 KiB, or more than 30% control characters there.
func IsBinary(content []byte) bool {
	sample := content
	if len(sample) > 8192 {
		sample = sample[:8192]
	}
	if len(sample) == 0 {
		return false
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	nonText := 0
	for _, b := range sample {
		switch {
		case b >= 0x20 && b != 0x7f:
		case b == 7, b == 8, b == '\t', b == '\n', b == 12, b == '\r', b == 27:
		default:
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.30
}
