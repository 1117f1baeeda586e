//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "fmt"

var errUnsupported = fmt.Errorf("%w: clipboard images are not supported on this platform", ErrUnavailable)

func WritePNG([]byte) error {
	return errUnsupported
}

func ReadPNG() ([]byte, error) {
	return nil, errUnsupported
}
