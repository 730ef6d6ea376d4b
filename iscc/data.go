package iscc

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// DataID derives the data component from the raw byte payload. Any byte
// difference, anywhere in the stream, produces an unrelated digest. The
// title plays no part here.
func DataID(data []byte) string {
	sum := blake3.Sum256(data)
	return encodeComponent(headerData, binary.BigEndian.Uint64(sum[:8]))
}
