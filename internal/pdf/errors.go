package pdf

import "errors"

var (
	ErrNoPages           = errors.New("document has no pages")
	ErrPageCountMismatch = errors.New("written page count does not match")
)
