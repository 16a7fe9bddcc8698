package pipeline

import (
	"github.com/lehigh-university-libraries/newsbinder/internal/images"
	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
)

// DefaultLargeGroup is the page count above which loading reports per image.
const DefaultLargeGroup = 10

// DefaultWorkspaceName is the persistent workspace directory under the output.
const DefaultWorkspaceName = "renamed"

// Options configures a Pipeline.
type Options struct {
	InputDir  string
	OutputDir string

	// KeepOriginals copies sources into the workspace instead of moving them.
	KeepOriginals bool
	// KeepRenamed uses a persistent workspace under OutputDir.
	KeepRenamed   bool
	WorkspaceName string

	Extensions    []string
	CatalogPrefix string
	LargeGroup    int
	Limits        images.Limits
}

func (o Options) withDefaults() Options {
	if o.WorkspaceName == "" {
		o.WorkspaceName = DefaultWorkspaceName
	}
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	if o.CatalogPrefix == "" {
		o.CatalogPrefix = naming.DefaultPrefix
	}
	if o.LargeGroup <= 0 {
		o.LargeGroup = DefaultLargeGroup
	}
	if o.Limits.MaxFileSize == 0 && o.Limits.MaxPixels == 0 && len(o.Limits.Formats) == 0 {
		o.Limits = images.DefaultLimits()
	}
	return o
}
