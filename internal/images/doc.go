// Package images validates page scans and loads them for PDF assembly.
package images
