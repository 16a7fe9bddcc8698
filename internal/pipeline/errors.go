package pipeline

import "errors"

var (
	ErrInputDir      = errors.New("input directory is not usable")
	ErrOutputDir     = errors.New("output directory is not usable")
	ErrSameDirectory = errors.New("output directory must differ from input directory")
)
