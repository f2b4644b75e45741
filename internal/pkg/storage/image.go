package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Thumbnailer renders JPEG previews bounded by a fixed box.
type Thumbnailer struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

func NewThumbnailer(maxWidth, maxHeight int) *Thumbnailer {
	return &Thumbnailer{MaxWidth: maxWidth, MaxHeight: maxHeight, Quality: 80}
}

// Thumbnail decodes src (honouring EXIF orientation) and returns a JPEG that
// fits inside the configured box without upscaling.
func (t *Thumbnailer) Thumbnail(src io.Reader) ([]byte, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, t.MaxWidth, t.MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(t.Quality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
