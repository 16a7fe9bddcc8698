// Package pathsafe keeps untrusted catalog and publication text from reaching
// the filesystem unchecked. Every derived filename goes through Sanitize and
// every user supplied directory through ValidateDirectory.
package pathsafe
