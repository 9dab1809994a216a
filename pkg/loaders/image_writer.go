package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for image extensions no encoder handles
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image formats known to the writer, named by file extension without the dot
const (
	FormatPPM  = "ppm"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// FormatFromFilename returns the image format implied by the file extension
func FormatFromFilename(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReplaceExtension swaps the extension of filename for the given format
func ReplaceExtension(filename, format string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "." + format
}

// WriteImage encodes the frame into filename, choosing the encoder from the extension
func WriteImage(filename string, frame *renderer.Frame) error {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := EncodeImage(file, format, frame); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return file.Close()
}

// EncodeImage writes the frame to w in the given format
func EncodeImage(w io.Writer, format string, frame *renderer.Frame) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, frame)
	case FormatPNG:
		return png.Encode(w, frame.RGBA())
	case FormatBMP:
		return bmp.Encode(w, frame.RGBA())
	case FormatTIFF:
		return tiff.Encode(w, frame.RGBA(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// EncodePPM writes the frame as a plain (P3) PPM, one image row per line
func EncodePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height)

	buf := make([]byte, 0, 12)
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			rgb := frame.At(row, col)
			buf = buf[:0]
			for i, c := range rgb {
				if i > 0 || col > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendInt(buf, int64(c), 10)
			}
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WritePreview writes a PNG copy of the frame scaled so its longer edge is at
// most maxEdge pixels. Frames already small enough are written unscaled.
func WritePreview(filename string, frame *renderer.Frame, maxEdge int) error {
	if maxEdge <= 0 {
		return fmt.Errorf("preview size must be positive, got %d", maxEdge)
	}

	src := frame.RGBA()
	width, height := previewSize(frame.Width, frame.Height, maxEdge)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if err := png.Encode(file, dst); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return file.Close()
}

// previewSize keeps the aspect ratio and never returns a zero dimension
func previewSize(width, height, maxEdge int) (int, int) {
	longest := max(width, height)
	if longest <= maxEdge {
		return width, height
	}
	scale := float64(maxEdge) / float64(longest)
	return max(1, int(float64(width)*scale+0.5)), max(1, int(float64(height)*scale+0.5))
}
