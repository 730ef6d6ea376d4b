package processing

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
)

// RepairText cleans up the encoding damage that scraped metadata tends to
// carry: raw legacy-charset bytes that never were UTF-8, and UTF-8 that was
// decoded as latin-1 somewhere upstream ("Ã©" for "é").
func RepairText(s string) string {
	if !utf8.ValidString(s) {
		return decodeLegacy(s)
	}

	// Double-encoded UTF-8: if every rune maps back to a windows-1252 byte
	// and the byte string is valid UTF-8 with fewer runes, the value went
	// through a latin-1 round trip and the re-decoded form is the original.
	if b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s)); err == nil && utf8.Valid(b) {
		if decoded := string(b); utf8.RuneCountInString(decoded) < utf8.RuneCountInString(s) {
			return decoded
		}
	}
	return s
}

// decodeLegacy re-decodes non-UTF-8 bytes using whichever single-byte
// charset the detector settles on, defaulting to windows-1252 - the charset
// scraped western metadata almost always turns out to be.
func decodeLegacy(s string) string {
	cm := charmap.Windows1252
	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest([]byte(s)); err == nil {
		if detected := charmapFor(result.Charset); detected != nil {
			cm = detected
		}
	}
	if decoded, err := cm.NewDecoder().Bytes([]byte(s)); err == nil {
		return string(decoded)
	}
	return strings.ToValidUTF8(s, "")
}

func charmapFor(charset string) *charmap.Charmap {
	switch charset {
	case "ISO-8859-1":
		return charmap.ISO8859_1
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "windows-1252":
		return charmap.Windows1252
	case "windows-1251":
		return charmap.Windows1251
	case "KOI8-R":
		return charmap.KOI8R
	default:
		return nil
	}
}
