// Package naming parses scan filenames and derives the workspace, group and
// document names built from them.
//
// Source scans follow the convention
//
//	bib<code>_<YYYYMMDD>_<seq>_<seq>_<seq>[_extra...][(n)].jpg
//
// and are renamed into the workspace as
//
//	<YYYY-MM-DD> <PUBLICATION> bib<code> <seq>_<seq>_<seq>[(n)].jpg
//
// The workspace form is self-describing, so grouping re-parses it with
// ParseWorkspaceName instead of carrying the source Record around.
package naming
