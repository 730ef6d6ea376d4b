package processing

import (
	"strings"
	"unicode/utf8"

	"github.com/dsoprea/go-exif/v3"
)

// Attribution tags in priority order: Copyright (0x8298), then Artist
// (0x013b).
var attributionTags = []string{"Copyright", "Artist"}

// ExtractCopyright finds embedded attribution in the image's EXIF data.
// Returns the empty string when no usable value exists; malformed EXIF
// structures count as "no copyright", never as an error.
func ExtractCopyright(data []byte) (result string) {
	// go-exif can panic on some malformed makernote structures
	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return ""
	}
	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return ""
	}

	values := make(map[string]string)
	for _, t := range tags {
		for _, name := range attributionTags {
			if t.TagName != name {
				continue
			}
			if s, ok := t.Value.(string); ok {
				values[name] = s
			} else {
				values[name] = t.FormattedFirst
			}
		}
	}

	candidates := make([]string, 0, len(attributionTags))
	for _, name := range attributionTags {
		if v, ok := values[name]; ok {
			candidates = append(candidates, v)
		}
	}
	return chooseAttribution(candidates...)
}

// chooseAttribution applies the rejection rules to the candidates in
// priority order: values shorter than two characters once trimmed, or
// carrying the "[None]" placeholder some cameras write, are skipped.
func chooseAttribution(candidates ...string) string {
	for _, value := range candidates {
		value = strings.TrimSpace(value)
		if utf8.RuneCountInString(value) < 2 {
			continue
		}
		if strings.Contains(value, "[None]") {
			continue
		}
		return RepairText(value)
	}
	return ""
}
