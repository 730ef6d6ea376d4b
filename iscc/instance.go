package iscc

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// instanceLeafSize is the chunk size of the two-level hash tree backing the
// instance component.
const instanceLeafSize = 64 * 1024

// InstanceID derives the instance component plus the manifest checksum from
// the raw byte payload. The digest comes from a two-level SHA-256 tree over
// fixed-size leaves, which keeps it independent from the BLAKE3-based data
// component while hashing the exact same bytes.
func InstanceID(data []byte) (string, string) {
	leaves := sha256.New()
	for offset := 0; ; offset += instanceLeafSize {
		end := offset + instanceLeafSize
		if end > len(data) {
			end = len(data)
		}
		leaf := sha256.Sum256(data[offset:end])
		leaves.Write(leaf[:])
		if end == len(data) {
			break
		}
	}

	top := leaves.Sum(nil)
	digest := binary.BigEndian.Uint64(top[:8])
	return encodeComponent(headerInstance, digest), hex.EncodeToString(top)
}
