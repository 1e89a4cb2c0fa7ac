// Package imaging normalises uploaded pictures: orientation fixed from EXIF,
// downscaled to a maximum edge and re-encoded as WebP.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/BruksfildServices01/champa-store/internal/httperr"
)

const (
	ContentType = "image/webp"
	Extension   = ".webp"

	defaultQuality = 82

	// DefaultMaxPixels caps width*height of an upload before it is decoded.
	DefaultMaxPixels = 40_000_000
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ErrUnsupported is returned for files that are not one of the accepted
// image formats.
var ErrUnsupported = httperr.ErrBusiness(httperr.CodeInvalidImage)

// ErrTooManyPixels is returned when the declared dimensions exceed the
// pixel cap.
var ErrTooManyPixels = httperr.ErrBusinessf(httperr.CodeFileTooLarge, "Image dimensions are too large.")

type Result struct {
	Data   []byte
	Width  int
	Height int
}

type Processor struct {
	maxDimension int
	maxPixels    int
	quality      float32
}

// NewProcessor builds a processor. maxPixels <= 0 falls back to
// DefaultMaxPixels.
func NewProcessor(maxDimension, maxPixels int) *Processor {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Processor{
		maxDimension: maxDimension,
		maxPixels:    maxPixels,
		quality:      defaultQuality,
	}
}

// AllowedFilename checks the extension of the client supplied filename.
func AllowedFilename(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Process decodes r, applies EXIF orientation, shrinks the image so that
// neither edge exceeds the configured maximum and encodes it as WebP.
func (p *Processor) Process(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	if detectFormat(data) == "" {
		return nil, ErrUnsupported
	}

	// The header is enough to size the decode buffer; reject before allocating it.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupported
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrUnsupported
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return nil, ErrTooManyPixels
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupported
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	if p.maxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > p.maxDimension || b.Dy() > p.maxDimension {
			img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	b := img.Bounds()
	return &Result{
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// readExifOrientation returns 1 when the tag is missing or unreadable.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
