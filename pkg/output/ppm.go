package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// PixelWriter receives an image row by row, top row first
type PixelWriter interface {
	WriteHeader(width, height int) error
	WritePixel(color core.Vec3) error
	// Close finishes the image. It does not close the underlying sink.
	Close() error
}

var (
	// ErrNoHeader is returned when pixels arrive before the image dimensions
	ErrNoHeader = errors.New("pixel written before header")
	// ErrTooManyPixels is returned when more pixels arrive than the header announced
	ErrTooManyPixels = errors.New("more pixels written than the header announced")
	// ErrIncomplete is returned by Close when fewer pixels arrived than the header announced
	ErrIncomplete = errors.New("image closed before every pixel was written")
)

// PPMWriter streams a plain-text P3 image
type PPMWriter struct {
	w             *bufio.Writer
	width, height int
	written       int
	headerDone    bool
}

// NewPPMWriter creates a PPM writer on top of w
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the P3 magic, dimensions and max value
func (p *PPMWriter) WriteHeader(width, height int) error {
	if p.headerDone {
		return errors.New("header already written")
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	p.width, p.height = width, height
	p.headerDone = true
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WritePixel writes one pixel as a "r g b" line
func (p *PPMWriter) WritePixel(color core.Vec3) error {
	if !p.headerDone {
		return ErrNoHeader
	}
	if p.written >= p.width*p.height {
		return ErrTooManyPixels
	}
	r, g, b := EncodeColor(color)
	if _, err := fmt.Fprintf(p.w, "%d %d %d\n", r, g, b); err != nil {
		return err
	}
	p.written++
	return nil
}

// Close flushes buffered output and reports a short image
func (p *PPMWriter) Close() error {
	if err := p.w.Flush(); err != nil {
		return err
	}
	if !p.headerDone || p.written != p.width*p.height {
		return fmt.Errorf("%w: %d of %d pixels", ErrIncomplete, p.written, p.width*p.height)
	}
	return nil
}
