package iscc

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const metaNgramSize = 3

// MetaID derives the meta component from the image's title. An empty title
// yields the deterministic digest of the empty normalized string - a fixed
// placeholder that downstream consumers must treat as uninformative.
func MetaID(title string) string {
	normalized := normalizeText(title)
	return encodeComponent(headerMeta, similarityHash(textNgrams(normalized)))
}

// normalizeText applies NFKC, lower-cases, and collapses runs of whitespace
// so that trivially different spellings of the same title converge.
func normalizeText(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

func textNgrams(s string) [][]byte {
	runes := []rune(s)
	if len(runes) <= metaNgramSize {
		return [][]byte{[]byte(s)}
	}
	grams := make([][]byte, 0, len(runes)-metaNgramSize+1)
	for i := 0; i+metaNgramSize <= len(runes); i++ {
		grams = append(grams, []byte(string(runes[i:i+metaNgramSize])))
	}
	return grams
}

// similarityHash folds the per-ngram digests into a single 64-bit simhash:
// each output bit is the majority vote of that bit across all ngrams, so
// titles sharing most of their ngrams land on nearby hashes.
func similarityHash(ngrams [][]byte) uint64 {
	var counts [64]int
	for _, gram := range ngrams {
		sum := sha256.Sum256(gram)
		h := binary.BigEndian.Uint64(sum[:8])
		for bit := 0; bit < 64; bit++ {
			if h&(1<<uint(63-bit)) != 0 {
				counts[bit]++
			}
		}
	}

	var digest uint64
	for bit := 0; bit < 64; bit++ {
		if counts[bit]*2 >= len(ngrams) {
			digest |= 1 << uint(63-bit)
		}
	}
	return digest
}
