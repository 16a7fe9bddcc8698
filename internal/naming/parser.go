package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultPrefix is the literal that precedes the numeric catalog code.
	DefaultPrefix = "bib"

	// SentinelDate stands in for capture dates that cannot be parsed.
	SentinelDate = "0000-00-00"

	separator = "_"
	minTokens = 5
)

var duplicateSuffixPattern = regexp.MustCompile(`^(.*?)(\(\d+\))$`)

// Record is the metadata encoded in one source filename.
type Record struct {
	// CatalogCode is the first token exactly as it appears, e.g. "bib123".
	CatalogCode string
	// LookupKey is CatalogCode with the prefix removed, e.g. "123".
	LookupKey       string
	CaptureDate     string
	SequenceGroup   string
	DuplicateSuffix string

	// PrefixMissing and DateInvalid flag non-fatal problems the caller
	// should log.
	PrefixMissing bool
	DateInvalid   bool
}

// Parser splits source filename stems into Records.
type Parser struct {
	prefix string
}

// NewParser creates a parser for catalog codes carrying prefix.
func NewParser(prefix string) *Parser {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Parser{prefix: prefix}
}

// ParseStem parses stem with the default catalog prefix.
func ParseStem(stem string) (Record, error) {
	return NewParser(DefaultPrefix).Parse(stem)
}

// Parse turns a filename stem (no extension) into a Record. Stems with fewer
// than five "_" separated tokens are rejected with ErrTooFewTokens; tokens past
// the fifth are ignored.
func (p *Parser) Parse(stem string) (Record, error) {
	var rec Record

	stem = strings.TrimSpace(stem)
	if m := duplicateSuffixPattern.FindStringSubmatch(stem); m != nil {
		rec.DuplicateSuffix = m[2]
		stem = strings.TrimRight(m[1], "_ ")
	}

	tokens := strings.Split(stem, separator)
	if len(tokens) < minTokens {
		return Record{}, fmt.Errorf("%w: %q has %d, need %d", ErrTooFewTokens, stem, len(tokens), minTokens)
	}

	rec.CatalogCode = tokens[0]
	rec.LookupKey, rec.PrefixMissing = p.lookupKey(tokens[0])
	rec.CaptureDate, rec.DateInvalid = formatDate(tokens[1])
	rec.SequenceGroup = strings.Join(tokens[2:minTokens], separator)

	return rec, nil
}

// Key returns the lookup key for a catalog code such as "bib123".
func (p *Parser) Key(code string) string {
	key, _ := p.lookupKey(code)
	return key
}

func (p *Parser) lookupKey(token string) (string, bool) {
	n := len(p.prefix)
	if len(token) > n && strings.EqualFold(token[:n], p.prefix) {
		return token[n:], false
	}
	return token, true
}

// formatDate converts YYYYMMDD to YYYY-MM-DD. Anything that is not a real
// calendar date maps to SentinelDate.
func formatDate(token string) (string, bool) {
	if len(token) != 8 {
		return SentinelDate, true
	}
	d, err := time.Parse("20060102", token)
	if err != nil {
		return SentinelDate, true
	}
	return d.Format(time.DateOnly), false
}
