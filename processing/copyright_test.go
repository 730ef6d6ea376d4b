package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseAttribution_RejectsPlaceholders(t *testing.T) {
	assert.Equal(t, "", chooseAttribution("[None]"))
	assert.Equal(t, "", chooseAttribution("Camera: [None] owner"))
	assert.Equal(t, "", chooseAttribution("x"))
	assert.Equal(t, "", chooseAttribution("  a  "))
	assert.Equal(t, "", chooseAttribution())
}

func TestChooseAttribution_AcceptsValidValue(t *testing.T) {
	assert.Equal(t, "© 2021 Jane Doe", chooseAttribution("  © 2021 Jane Doe  "))
}

func TestChooseAttribution_PrefersCopyrightOverArtist(t *testing.T) {
	assert.Equal(t, "© Studio", chooseAttribution("© Studio", "Jane Doe"))
}

func TestChooseAttribution_FallsBackToArtist(t *testing.T) {
	assert.Equal(t, "Jane Doe", chooseAttribution("[None]", "Jane Doe"))
	assert.Equal(t, "Jane Doe", chooseAttribution("", "Jane Doe"))
}

func TestExtractCopyright_NoExif(t *testing.T) {
	assert.Equal(t, "", ExtractCopyright([]byte("no exif in here at all")))
}

func TestRepairText_LeavesCleanTextAlone(t *testing.T) {
	assert.Equal(t, "Jane Doe", RepairText("Jane Doe"))
	assert.Equal(t, "© Café Münster", RepairText("© Café Münster"))
}

func TestRepairText_FixesDoubleEncodedUtf8(t *testing.T) {
	// "é" (UTF-8 bytes C3 A9) mis-decoded as latin-1 shows up as "Ã©".
	assert.Equal(t, "café", RepairText("cafÃ©"))
}

func TestRepairText_DecodesLegacyBytes(t *testing.T) {
	// Raw latin-1 bytes are not valid UTF-8.
	repaired := RepairText("Photographie par Ren\xe9 C\xf4t\xe9, tous droits r\xe9serv\xe9s")
	assert.Equal(t, "Photographie par René Côté, tous droits réservés", repaired)
}
