package naming

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/newsbinder/internal/pathsafe"
)

func TestWorkspaceName(t *testing.T) {
	tests := []struct {
		name        string
		stem        string
		publication string
		expected    string
	}{
		{
			name:        "resolved publication",
			stem:        "bib123_20240115_001_002_003",
			publication: "Dagens Nyheter",
			expected:    "2024-01-15 DAGENS NYHETER bib123 001_002_003.jpg",
		},
		{
			name:        "unknown publication",
			stem:        "bib123_20240115_001_002_004",
			publication: Unknown,
			expected:    "2024-01-15 UNKNOWN bib123 001_002_004.jpg",
		},
		{
			name:        "duplicate suffix",
			stem:        "bib5_20240115_001_002_003(2)",
			publication: "Svenska Dagbladet",
			expected:    "2024-01-15 SVENSKA DAGBLADET bib5 001_002_003(2).jpg",
		},
		{
			name:        "untrusted publication text",
			stem:        "bib5_20240115_001_002_003",
			publication: `Aftonbladet: "Extra"`,
			expected:    "2024-01-15 AFTONBLADET_ _EXTRA_ bib5 001_002_003.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseStem(tt.stem)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			result := WorkspaceName(rec, tt.publication, ".jpg")
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestWorkspaceNameRoundTrip(t *testing.T) {
	stems := []string{
		"bib123_20240115_001_002_003",
		"bib123_20240115_001_002_003(2)",
		"bib9_19991231_0001_0002_0003_extra",
		"bib42_20241301_1_2_3",
		"7_20240101_a_b_c",
	}
	publications := []string{"Dagens Nyheter", Unknown, "Göteborgs-Posten", "St. Paul Pioneer"}

	for _, stem := range stems {
		for _, pub := range publications {
			t.Run(stem+"/"+pub, func(t *testing.T) {
				rec, err := ParseStem(stem)
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}

				entry, err := ParseWorkspaceName(WorkspaceName(rec, pub, ".jpg"))
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}

				if entry.CatalogCode != rec.CatalogCode {
					t.Errorf("Expected catalog code %s, got %s", rec.CatalogCode, entry.CatalogCode)
				}
				if entry.CaptureDate != rec.CaptureDate {
					t.Errorf("Expected date %s, got %s", rec.CaptureDate, entry.CaptureDate)
				}
				if entry.SequenceGroup() != rec.SequenceGroup {
					t.Errorf("Expected sequence %s, got %s", rec.SequenceGroup, entry.SequenceGroup())
				}
			})
		}
	}
}

func TestParseWorkspaceNameRejectsShortNames(t *testing.T) {
	_, err := ParseWorkspaceName("2024-01-15 DN 001.jpg")
	if !errors.Is(err, ErrMalformedWorkspaceName) {
		t.Errorf("Expected ErrMalformedWorkspaceName, got %v", err)
	}
}

func TestGroupKeys(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		merged bool
	}{
		{
			name:   "same publication different catalog codes merge",
			a:      "2024-01-15 DAGENS NYHETER bib123 001_002_003.jpg",
			b:      "2024-01-15 DAGENS NYHETER bib999 001_002_004.jpg",
			merged: true,
		},
		{
			name:   "unknown publications with different codes stay apart",
			a:      "2024-01-15 UNKNOWN bib123 001_002_003.jpg",
			b:      "2024-01-15 UNKNOWN bib456 001_002_003.jpg",
			merged: false,
		},
		{
			name:   "unknown publications with the same code merge",
			a:      "2024-01-15 UNKNOWN bib123 001_002_003.jpg",
			b:      "2024-01-15 UNKNOWN bib123 001_002_004.jpg",
			merged: true,
		},
		{
			name:   "different dates stay apart",
			a:      "2024-01-15 DAGENS NYHETER bib123 001_002_003.jpg",
			b:      "2024-01-16 DAGENS NYHETER bib123 001_002_003.jpg",
			merged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseWorkspaceName(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := ParseWorkspaceName(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if (a.Key() == b.Key()) != tt.merged {
				t.Errorf("Expected merged=%v for %v and %v", tt.merged, a.Key(), b.Key())
			}
		})
	}
}

func TestDocumentName(t *testing.T) {
	tests := []struct {
		name     string
		key      GroupKey
		pages    int
		expected string
	}{
		{
			name:     "resolved",
			key:      GroupKey{CaptureDate: "2024-01-15", Publication: "DAGENS NYHETER"},
			pages:    2,
			expected: "2024-01-15 DAGENS NYHETER (2 sid).pdf",
		},
		{
			name:     "unknown keeps catalog code",
			key:      GroupKey{CaptureDate: "2024-01-15", Publication: Unknown, CatalogCode: "bib123"},
			pages:    2,
			expected: "2024-01-15 UNKNOWN bib123 (2 sid).pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DocumentName(tt.key, tt.pages)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestDocumentNameKeepsPageCountForLongLabels(t *testing.T) {
	key := GroupKey{
		CaptureDate: "2024-01-15",
		Publication: strings.Repeat("TIDNING ", 40) + "ÖSTGÖTA",
	}

	result := DocumentName(key, 12)
	if !strings.HasSuffix(result, " (12 sid).pdf") {
		t.Errorf("Expected page count suffix, got %q", result)
	}
	if len(result) > pathsafe.MaxComponentLength {
		t.Errorf("Expected at most %d bytes, got %d", pathsafe.MaxComponentLength, len(result))
	}
	if !utf8.ValidString(result) {
		t.Errorf("Expected valid UTF-8, got %q", result)
	}
	if !strings.HasPrefix(result, "2024-01-15 TIDNING TIDNING") {
		t.Errorf("Expected date and label at the start, got %q", result)
	}
}
