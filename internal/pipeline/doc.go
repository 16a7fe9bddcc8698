// Package pipeline turns a directory of page scans into one PDF per
// publication and capture date.
//
// A run has three passes: rename every source into a workspace, group the
// workspace files by date and publication, then assemble each group into a
// document. Cancellation is polled between single file or single image
// operations and never leaves a half renamed file behind.
package pipeline
