package shockwave

import (
	"errors"
	"fmt"
)

// ErrDecode matches every *DecodeError through errors.Is.
var ErrDecode = errors.New("shockwave: input is not a decodable raster")

var errEmptyRaster = errors.New("raster has no pixels")

// DecodeError reports input that is not a recognizable, intact raster image.
// It aborts a run before any stage executes.
type DecodeError struct {
	Format string // sniffed container format, empty when unknown
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s image: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
