package naming

import "errors"

var (
	ErrTooFewTokens           = errors.New("filename has too few tokens")
	ErrMalformedWorkspaceName = errors.New("workspace filename is malformed")
)
