package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// TextSampleSize is how much of a file is sniffed to tell text from binary.
const TextSampleSize = 4096

// Non-printable bytes above this share of the sample mark content as binary.
const nonPrintableThresholdPercent = 30

type bom int

const (
	bomNone bom = iota
	bomUTF8
	bomUTF16LE
	bomUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z": {}, ".a": {}, ".apk": {}, ".avi": {}, ".bin": {}, ".bmp": {},
	".bz2": {}, ".class": {}, ".dll": {}, ".dmg": {}, ".doc": {}, ".docx": {},
	".dylib": {}, ".exe": {}, ".flac": {}, ".flv": {}, ".gif": {}, ".gz": {},
	".ico": {}, ".img": {}, ".iso": {}, ".jar": {}, ".jpeg": {}, ".jpg": {},
	".mkv": {}, ".mov": {}, ".mp3": {}, ".mp4": {}, ".o": {}, ".ogg": {},
	".otf": {}, ".pdf": {}, ".png": {}, ".pyc": {}, ".so": {}, ".tar": {},
	".tgz": {}, ".torrent": {}, ".ttf": {}, ".wav": {}, ".wasm": {},
	".wma": {}, ".wmv": {}, ".woff": {}, ".woff2": {}, ".xcf": {}, ".xz": {},
	".zip": {},
}

// IsTextFile reports whether content looks like text. Well-known binary
// extensions short-circuit before the content is sniffed.
func IsTextFile(path string, content []byte) bool {
	if path != "" {
		if _, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			return false
		}
	}
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > TextSampleSize {
		sample = sample[:TextSampleSize]
	}
	if detectBOM(sample) != bomNone {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isTextByte(b) {
			nonPrintable++
		}
	}
	if nonPrintable == len(sample) {
		return false
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

// ReadFileHead returns up to limit bytes from the beginning of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(io.LimitReader(f, limit))
}

// NormalizeTextContent converts BOM-prefixed UTF-8/UTF-16 content to a
// plain UTF-8 string. Content without a BOM is returned as-is.
func NormalizeTextContent(content []byte) string {
	switch detectBOM(content) {
	case bomUTF8:
		return string(content[3:])
	case bomUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case bomUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}

func detectBOM(sample []byte) bom {
	switch {
	case len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF:
		return bomUTF8
	case len(sample) >= 2 && sample[0] == 0xFF && sample[1] == 0xFE:
		return bomUTF16LE
	case len(sample) >= 2 && sample[0] == 0xFE && sample[1] == 0xFF:
		return bomUTF16BE
	default:
		return bomNone
	}
}

func isTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r' || b == 0x1B:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	default:
		return b >= 0x80
	}
}
