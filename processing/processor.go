package processing

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/creativeai/imgdoc/common/rcontext"
	"github.com/creativeai/imgdoc/iscc"
	"github.com/creativeai/imgdoc/manifest"
)

// ProcessImage derives the manifest record for a single image. A payload
// that does not decode as an image yields (nil, nil): the item is filtered
// out, not failed, and the containing archive keeps going. A timestamp of
// zero or less defaults to the current time.
func ProcessImage(ctx rcontext.RequestContext, data []byte, title string, rawUrl string, timestamp int64) (*manifest.Record, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		ctx.Log.Debugf("Skipping undecodable payload (%s, %s): %v", SniffBytes(data), humanize.Bytes(uint64(len(data))), err)
		return nil, nil
	}

	// The format tag is lost once the pixels are normalized, so capture the
	// mime type first.
	mimeType := MimeForFormat(format)

	thumb := imaging.Resize(imaging.Grayscale(img), iscc.PixelGridSize, iscc.PixelGridSize, imaging.Lanczos)
	contentId, err := iscc.ContentIDImage(lumaGrid(thumb))
	if err != nil {
		return nil, err
	}

	instanceId, checksum := iscc.InstanceID(data)
	id := iscc.Identifier{
		Meta:     iscc.MetaID(title),
		Content:  contentId,
		Data:     iscc.DataID(data),
		Instance: instanceId,
	}

	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return nil, errors.Wrap(err, "processing: invalid source url")
	}

	if timestamp <= 0 {
		timestamp = time.Now().Unix()
	}

	return &manifest.Record{
		Domain:    parsed.Host,
		Iscc:      id.String(),
		Timestamp: timestamp,
		Bytes:     len(data),
		Checksum:  checksum,
		MimeType:  mimeType,
		Copyright: ExtractCopyright(data),
	}, nil
}

// lumaGrid flattens the grayscaled thumbnail into the row-major luminance
// values the content identifier hashes. After imaging.Grayscale the three
// channels are equal, so the red channel is the luma.
func lumaGrid(img *image.NRGBA) []uint8 {
	pixels := make([]uint8, 0, iscc.PixelGridSize*iscc.PixelGridSize)
	for y := 0; y < iscc.PixelGridSize; y++ {
		for x := 0; x < iscc.PixelGridSize; x++ {
			pixels = append(pixels, img.NRGBAAt(x, y).R)
		}
	}
	return pixels
}
