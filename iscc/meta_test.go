package iscc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetaID_Deterministic(t *testing.T) {
	first := MetaID("A sunset over the ocean")
	second := MetaID("A sunset over the ocean")
	assert.Equal(t, first, second)
	assert.Len(t, first, componentLength)
}

func TestMetaID_EmptyTitlePlaceholder(t *testing.T) {
	// An empty title is not an error: it maps to a fixed placeholder.
	first := MetaID("")
	second := MetaID("")
	assert.Equal(t, first, second)
	assert.Len(t, first, componentLength)
	assert.NotEqual(t, first, MetaID("A sunset over the ocean"))
}

func TestMetaID_NormalizesSpelling(t *testing.T) {
	assert.Equal(t, MetaID("Hello World"), MetaID("hello   world"))
	assert.Equal(t, MetaID("  hello world "), MetaID("HELLO WORLD"))
}

func TestMetaID_DifferentTitlesDiffer(t *testing.T) {
	assert.NotEqual(t, MetaID("A sunset over the ocean"), MetaID("Portrait of a cat"))
}

func TestMetaID_Alphabet(t *testing.T) {
	for _, c := range MetaID("whatever") {
		assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q", c)
	}
}
