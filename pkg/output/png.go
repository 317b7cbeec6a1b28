package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// PNGWriter collects pixels into an image and encodes it as PNG on Close
type PNGWriter struct {
	w       io.Writer
	img     *image.RGBA
	written int
}

// NewPNGWriter creates a PNG writer on top of w
func NewPNGWriter(w io.Writer) *PNGWriter {
	return &PNGWriter{w: w}
}

// WriteHeader allocates the image
func (p *PNGWriter) WriteHeader(width, height int) error {
	if p.img != nil {
		return errors.New("header already written")
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	p.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WritePixel stores the next pixel in row-major order
func (p *PNGWriter) WritePixel(c core.Vec3) error {
	if p.img == nil {
		return ErrNoHeader
	}
	bounds := p.img.Bounds()
	if p.written >= bounds.Dx()*bounds.Dy() {
		return ErrTooManyPixels
	}

	r, g, b := EncodeColor(c)
	x, y := p.written%bounds.Dx(), p.written/bounds.Dx()
	p.img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
	p.written++
	return nil
}

// Close encodes the finished image
func (p *PNGWriter) Close() error {
	if p.img == nil {
		return fmt.Errorf("%w: no header", ErrIncomplete)
	}
	bounds := p.img.Bounds()
	if total := bounds.Dx() * bounds.Dy(); p.written != total {
		return fmt.Errorf("%w: %d of %d pixels", ErrIncomplete, p.written, total)
	}
	return png.Encode(p.w, p.img)
}
