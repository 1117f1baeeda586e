// Package clipboard moves PNG images to and from the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

var (
	// ErrUnavailable is returned when no clipboard can be reached.
	ErrUnavailable = errors.New("clipboard unavailable")
	// ErrNoImage is returned when the clipboard holds no image.
	ErrNoImage = errors.New("clipboard does not contain image data")

	errNoDisplay = fmt.Errorf("%w: DISPLAY or WAYLAND_DISPLAY is not set", ErrUnavailable)
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return WritePNG(buf.Bytes())
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	data, err := ReadPNG()
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}
