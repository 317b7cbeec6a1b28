package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Format names an image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat validates a user-supplied format name
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatPPM:
		return FormatPPM, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want ppm or png)", name)
	}
}

// FormatFromPath picks the image encoding from a file name, ignoring any
// compression suffix. Anything not ending in .png is written as PPM.
func FormatFromPath(path string) Format {
	base := strings.ToLower(path)
	base = strings.TrimSuffix(base, ".zst")
	base = strings.TrimSuffix(base, ".sz")
	if filepath.Ext(base) == ".png" {
		return FormatPNG
	}
	return FormatPPM
}

// NewPixelWriter creates the writer for format on top of w
func NewPixelWriter(format Format, w io.Writer) (PixelWriter, error) {
	switch format {
	case FormatPPM:
		return NewPPMWriter(w), nil
	case FormatPNG:
		return NewPNGWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Create opens the byte sink for path.
// "-" is standard output, a ".zst" suffix adds zstd compression and
// a ".sz" suffix adds snappy framed compression.
func Create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	sink, err := Compress(file, path)
	if err != nil {
		file.Close()
		return nil, err
	}
	return sink, nil
}

// Compress wraps w in the compressor selected by the suffix of name.
// Closing the result closes the compressor and then w.
func Compress(w io.WriteCloser, name string) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		return &layeredWriter{Writer: encoder, closers: []io.Closer{encoder, w}}, nil
	case ".sz":
		stream := snappy.NewBufferedWriter(w)
		return &layeredWriter{Writer: stream, closers: []io.Closer{stream, w}}, nil
	default:
		return w, nil
	}
}

// layeredWriter writes to the outermost stream and closes every layer in order
type layeredWriter struct {
	io.Writer
	closers []io.Closer
}

func (l *layeredWriter) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
