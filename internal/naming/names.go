package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/newsbinder/internal/pathsafe"
)

// Unknown labels publications whose catalog code is missing from the lookup table.
const Unknown = "UNKNOWN"

// WorkspaceName builds the sanitized workspace filename for rec.
func WorkspaceName(rec Record, publication, ext string) string {
	raw := fmt.Sprintf("%s %s %s %s%s%s",
		rec.CaptureDate,
		strings.ToUpper(publication),
		rec.CatalogCode,
		rec.SequenceGroup,
		rec.DuplicateSuffix,
		ext,
	)
	return pathsafe.Sanitize(raw, true)
}

// Entry is what a workspace filename says about its page.
type Entry struct {
	CaptureDate string
	Publication string
	CatalogCode string
	// Sequence is the sequence group plus any duplicate suffix.
	Sequence string
}

// ParseWorkspaceName splits a workspace filename on whitespace. The first
// field is the date, the last two are catalog code and sequence, everything
// in between is the publication name.
func ParseWorkspaceName(name string) (Entry, error) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Fields(stem)
	if len(parts) < 4 {
		return Entry{}, fmt.Errorf("%w: %q has %d parts, need 4", ErrMalformedWorkspaceName, name, len(parts))
	}

	n := len(parts)
	return Entry{
		CaptureDate: parts[0],
		Publication: strings.Join(parts[1:n-2], " "),
		CatalogCode: parts[n-2],
		Sequence:    parts[n-1],
	}, nil
}

// SequenceGroup returns Sequence without the duplicate suffix.
func (e Entry) SequenceGroup() string {
	if m := duplicateSuffixPattern.FindStringSubmatch(e.Sequence); m != nil {
		return m[1]
	}
	return e.Sequence
}

// Key derives the group key. Unknown publications keep their catalog code so
// unrelated unresolved sources never merge.
func (e Entry) Key() GroupKey {
	k := GroupKey{CaptureDate: e.CaptureDate, Publication: e.Publication}
	if e.Publication == Unknown {
		k.CatalogCode = e.CatalogCode
	}
	return k
}

// GroupKey identifies one output document.
type GroupKey struct {
	CaptureDate string
	Publication string
	CatalogCode string
}

// Label is the publication part of the document name.
func (k GroupKey) Label() string {
	if k.CatalogCode != "" {
		return k.Publication + " " + k.CatalogCode
	}
	return k.Publication
}

func (k GroupKey) String() string {
	return k.CaptureDate + " " + k.Label()
}

// DocumentName is the sanitized output filename for a group with pages
// encoded pages. Long labels are shortened so the page count always survives.
func DocumentName(k GroupKey, pages int) string {
	suffix := fmt.Sprintf(" (%d sid).pdf", pages)
	name := pathsafe.Sanitize(k.CaptureDate+" "+k.Label()+suffix, true)
	if strings.HasSuffix(name, suffix) {
		return name
	}

	stem := pathsafe.Sanitize(k.CaptureDate+" "+k.Label(), false)
	return pathsafe.Truncate(stem, pathsafe.MaxComponentLength-len(suffix)) + suffix
}
