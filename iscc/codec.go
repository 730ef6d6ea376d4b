package iscc

import (
	"encoding/binary"
	"math/big"
	"strings"
)

// Component type headers. Each identifier component carries one of these as
// its first byte so the type survives the base58 encoding.
const (
	headerMeta         byte = 0x00
	headerContentImage byte = 0x11
	headerData         byte = 0x20
	headerInstance     byte = 0x30
)

// The ISCC base58 alphabet. Not the bitcoin one: it avoids characters that
// are easily confused when the identifier is printed or read aloud.
const alphabet = "C23456789rB1ZEFGTtYiAaVvMmHUPWXKDNbcdefghLjkSnopRqsJuQwxyz"

// componentLength is the encoded size of one header byte plus a 64-bit
// digest: 58^13 comfortably covers 2^72.
const componentLength = 13

var alphabetBase = big.NewInt(int64(len(alphabet)))

// Identifier is the four-part content identifier for one image. Components
// are stored in their encoded form; String joins them the way they appear in
// the manifest.
type Identifier struct {
	Meta     string
	Content  string
	Data     string
	Instance string
}

func (id Identifier) String() string {
	return strings.Join([]string{id.Meta, id.Content, id.Data, id.Instance}, "-")
}

func encodeComponent(header byte, digest uint64) string {
	raw := make([]byte, 9)
	raw[0] = header
	binary.BigEndian.PutUint64(raw[1:], digest)

	x := new(big.Int).SetBytes(raw)
	mod := new(big.Int)
	out := make([]byte, componentLength)
	for i := componentLength - 1; i >= 0; i-- {
		x.DivMod(x, alphabetBase, mod)
		out[i] = alphabet[mod.Int64()]
	}
	return string(out)
}
