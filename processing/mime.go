package processing

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MimeTypeError is the sentinel recorded when no decoder reported a format.
// Kept as-is for compatibility with existing manifest consumers.
const MimeTypeError = "¡ERROR!"

// MimeForFormat maps the decoder-reported format name to a mime type. The
// mapping is total: the known still-image formats get their proper type, an
// empty format maps to the error sentinel, and anything else falls through
// to an "other/" prefix.
func MimeForFormat(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	case "":
		return MimeTypeError
	default:
		return "other/" + strings.ToLower(format)
	}
}

// SniffBytes detects a mime type from raw bytes. Only used to log what an
// undecodable payload actually was; manifest records always use the
// decoder's format via MimeForFormat.
func SniffBytes(b []byte) string {
	return mimetype.Detect(b).String()
}
