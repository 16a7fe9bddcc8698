package lookup

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported lookup table format")
	ErrTableTooLarge     = errors.New("lookup table exceeds size limit")
	ErrInvalidEncoding   = errors.New("lookup table is not valid UTF-8")
	ErrColumnCount       = errors.New("lookup table row has wrong column count")
	ErrEmptyTable        = errors.New("lookup table has no entries")
	ErrNoTableFound      = errors.New("no lookup table found")
)
