package pathsafe

import "errors"

var (
	ErrEmptyPath    = errors.New("path is empty")
	ErrNullByte     = errors.New("path contains a null byte")
	ErrTraversal    = errors.New("path contains a parent directory reference")
	ErrPathTooLong  = errors.New("path exceeds maximum length")
	ErrNotExist     = errors.New("directory does not exist")
	ErrNotDirectory = errors.New("path is not a directory")
	ErrNotWritable  = errors.New("directory is not writable")
)
