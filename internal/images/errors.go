package images

import "errors"

var (
	ErrTooLarge          = errors.New("image file exceeds size limit")
	ErrTooManyPixels     = errors.New("image exceeds pixel limit")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrCorrupt           = errors.New("image cannot be decoded")
	ErrEmpty             = errors.New("image file is empty")
)
