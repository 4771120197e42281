package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/syntax"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    Encoding
	}{
		{"empty", nil, UTF8},
		{"ascii", []byte("hello"), UTF8},
		{"utf8", []byte("héllo"), UTF8},
		{"utf8 bom", []byte("\xEF\xBB\xBFhi"), UTF8BOM},
		{"utf16le bom", []byte{0xFF, 0xFE, 'h', 0}, UTF16LE},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'h'}, UTF16BE},
		{"latin1", []byte{'c', 'a', 'f', 0xE9}, Latin1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Detect(tt.content))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		text    string
		enc     Encoding
	}{
		{"utf8", []byte("naïve"), "naïve", UTF8},
		{"utf8 bom stripped", []byte("\xEF\xBB\xBFx = 1"), "x = 1", UTF8BOM},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", UTF16LE},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", UTF16BE},
		{"latin1", []byte{'c', 'a', 'f', 0xE9}, "café", Latin1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := Decode(tt.content)
			require.NoError(t, err)
			require.Equal(t, tt.text, text)
			require.Equal(t, tt.enc, enc)
		})
	}
}

func TestDecodeAsInvalidUTF8(t *testing.T) {
	_, err := DecodeAs([]byte{0xff}, UTF8)
	require.ErrorIs(t, err, ErrDecode)
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{UTF8, UTF8BOM, UTF16LE, UTF16BE, Latin1, Windows1252} {
		t.Run(string(enc), func(t *testing.T) {
			data, err := Encode("café\n", enc)
			require.NoError(t, err)

			text, err := DecodeAs(data, enc)
			require.NoError(t, err)
			require.Equal(t, "café\n", text)
		})
	}
}

func TestEncodeBOM(t *testing.T) {
	data, err := Encode("a", UTF16LE)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFE, 'a', 0}, data)

	data, err = Encode("a", UTF8BOM)
	require.NoError(t, err)
	require.Equal(t, []byte{0xEF, 0xBB, 0xBF, 'a'}, data)
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := Encode("x", "ebcdic")
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestIsBinary(t *testing.T) {
	require.False(t, IsBinary(nil))
	require.False(t, IsBinary([]byte("plain text\n\twith tabs\r\n")))
	require.True(t, IsBinary([]byte("abc\x00def")))
	require.True(t, IsBinary([]byte{1, 2, 3, 4, 'a'}))
}

func testRegistry(t *testing.T) *syntax.Registry {
	t.Helper()
	reg, err := syntax.NewRegistry(syntax.Builtin()...)
	require.NoError(t, err)
	return reg
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(path, []byte("def f():\r\n    pass\r\n"), 0o644))

	doc, err := Load(path, testRegistry(t))
	require.NoError(t, err)
	require.Equal(t, "main.py", doc.Name)
	require.Equal(t, "def f():\n    pass\n", doc.Content)
	require.Equal(t, UTF8, doc.Encoding)
	require.Equal(t, buffer.LineEndingCRLF, doc.LineEnding)
	require.Equal(t, "Python", doc.Language)
	require.False(t, doc.Binary)
}

func TestLoadNoDetector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.py")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	doc, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, syntax.PlainText, doc.Language)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.txt"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(dir, nil)
	require.ErrorIs(t, err, ErrNotRegular)
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

	require.NoError(t, Save(path, "hello", UTF8))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestDocumentSaveKeepsEncodingAndLineEnding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "win.txt")
	raw := []byte{0xFF, 0xFE, 'a', 0, '\r', 0, '\n', 0}
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	doc, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, UTF16LE, doc.Encoding)
	require.Equal(t, "a\n", doc.Content)

	require.NoError(t, doc.Save("a\nb\n"))
	require.Equal(t, "a\nb\n", doc.Content)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text, err := DecodeAs(data, UTF16LE)
	require.NoError(t, err)
	require.Equal(t, "a\r\nb\r\n", text)
}
