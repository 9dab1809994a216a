package loaders

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// LoadImage reads a PPM, PNG, JPEG, BMP or TIFF image into a frame, e.g. a
// reference render to compare against
func LoadImage(filename string) (*renderer.Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	magic, err := reader.Peek(2)
	if err == nil && magic[0] == 'P' && (magic[1] == '3' || magic[1] == '6') {
		frame, err := DecodePPM(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		frame.Name = filename
		return frame, nil
	}

	// Decode image (auto-detects format from file header)
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	frame := renderer.NewFrame(filename, bounds.Dx(), bounds.Dy())
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := (y*frame.Width + x) * 3
			frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2] = byte(r>>8), byte(g>>8), byte(b>>8)
		}
	}
	return frame, nil
}

// DecodePPM reads a plain (P3) or binary (P6) PPM with a maximum value of 255
func DecodePPM(r io.Reader) (*renderer.Frame, error) {
	br := bufio.NewReader(r)

	header := make([]string, 0, 4)
	for len(header) < 4 {
		token, err := ppmToken(br)
		if err != nil {
			return nil, fmt.Errorf("reading PPM header: %w", err)
		}
		header = append(header, token)
	}

	magic := header[0]
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: PPM magic %q", ErrUnsupportedFormat, magic)
	}
	width, errW := strconv.Atoi(header[1])
	height, errH := strconv.Atoi(header[2])
	maxVal, errM := strconv.Atoi(header[3])
	if errW != nil || errH != nil || errM != nil || width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid PPM header %v", header)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("%w: PPM max value %d", ErrUnsupportedFormat, maxVal)
	}

	frame := renderer.NewFrame("", width, height)
	if magic == "P6" {
		if _, err := io.ReadFull(br, frame.Pix); err != nil {
			return nil, fmt.Errorf("reading PPM pixels: %w", err)
		}
		return frame, nil
	}

	for i := range frame.Pix {
		token, err := ppmToken(br)
		if err != nil {
			return nil, fmt.Errorf("reading PPM pixel %d: %w", i/3, err)
		}
		v, err := strconv.Atoi(token)
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid PPM sample %q", token)
		}
		frame.Pix[i] = byte(v)
	}
	return frame, nil
}

// ppmToken returns the next whitespace separated token, skipping # comments.
// For P6 the single whitespace byte after the header is consumed with the token.
func ppmToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case c == '#' && sb.Len() == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(c)
		}
	}
}
