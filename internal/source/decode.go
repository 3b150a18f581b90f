package source

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how many leading bytes are handed to the charset detector.
const sniffLen = 64 << 10

// Decode reads r fully and returns its contents as UTF-8 text.
//
// UTF-8 input (with or without a byte order mark) passes through with the
// mark removed. Anything else is run through charset detection and decoded
// with the matching single byte code page, Windows-1252 when unsure.
func Decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (string, error) {
	enc := Detect(data)

	// BOMOverride switches to UTF-16 when a UTF-16 mark is present and
	// strips a UTF-8 mark, otherwise falling back to enc.
	dec := unicode.BOMOverride(enc.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Detect picks the encoding of data.
func Detect(data []byte) encoding.Encoding {
	if utf8.Valid(data) || hasUTF16BOM(data) {
		return unicode.UTF8
	}

	sample := data
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || res == nil {
		return charmap.Windows1252
	}
	return charsetEncoding(res.Charset)
}

// charsetEncoding maps a detector charset name to a code page.
func charsetEncoding(name string) encoding.Encoding {
	switch strings.ToLower(name) {
	case "iso-8859-1":
		return charmap.ISO8859_1
	case "windows-1251":
		return charmap.Windows1251
	case "iso-8859-5":
		return charmap.ISO8859_5
	case "koi8-r":
		return charmap.KOI8R
	case "windows-1250", "iso-8859-2":
		return charmap.Windows1250
	default:
		return charmap.Windows1252
	}
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}
