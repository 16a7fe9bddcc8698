package naming

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		stem     string
		expected Record
	}{
		{
			name: "standard stem",
			stem: "bib123_20240115_001_002_003",
			expected: Record{
				CatalogCode:   "bib123",
				LookupKey:     "123",
				CaptureDate:   "2024-01-15",
				SequenceGroup: "001_002_003",
			},
		},
		{
			name: "duplicate suffix preserved",
			stem: "bib123_20240115_001_002_003(2)",
			expected: Record{
				CatalogCode:     "bib123",
				LookupKey:       "123",
				CaptureDate:     "2024-01-15",
				SequenceGroup:   "001_002_003",
				DuplicateSuffix: "(2)",
			},
		},
		{
			name: "duplicate suffix after separator",
			stem: "bib123_20240115_001_002_003_ (12)",
			expected: Record{
				CatalogCode:     "bib123",
				LookupKey:       "123",
				CaptureDate:     "2024-01-15",
				SequenceGroup:   "001_002_003",
				DuplicateSuffix: "(12)",
			},
		},
		{
			name: "extra tokens ignored",
			stem: "bib77_19991231_01_02_03_scanner4_v2",
			expected: Record{
				CatalogCode:   "bib77",
				LookupKey:     "77",
				CaptureDate:   "1999-12-31",
				SequenceGroup: "01_02_03",
			},
		},
		{
			name: "missing prefix uses whole token",
			stem: "123_20240115_001_002_003",
			expected: Record{
				CatalogCode:   "123",
				LookupKey:     "123",
				CaptureDate:   "2024-01-15",
				SequenceGroup: "001_002_003",
				PrefixMissing: true,
			},
		},
		{
			name: "prefix is case insensitive",
			stem: "BIB9_20240115_001_002_003",
			expected: Record{
				CatalogCode:   "BIB9",
				LookupKey:     "9",
				CaptureDate:   "2024-01-15",
				SequenceGroup: "001_002_003",
			},
		},
		{
			name: "short date falls back to sentinel",
			stem: "bib123_2024011_001_002_003",
			expected: Record{
				CatalogCode:   "bib123",
				LookupKey:     "123",
				CaptureDate:   SentinelDate,
				SequenceGroup: "001_002_003",
				DateInvalid:   true,
			},
		},
		{
			name: "impossible calendar date falls back to sentinel",
			stem: "bib123_20230230_001_002_003",
			expected: Record{
				CatalogCode:   "bib123",
				LookupKey:     "123",
				CaptureDate:   SentinelDate,
				SequenceGroup: "001_002_003",
				DateInvalid:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseStem(tt.stem)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if result != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestParseRejectsShortStems(t *testing.T) {
	stems := []string{
		"bib123_20240115_001",
		"bib123_20240115_001_002",
		"",
		"(3)",
	}

	for _, stem := range stems {
		t.Run(stem, func(t *testing.T) {
			_, err := ParseStem(stem)
			if !errors.Is(err, ErrTooFewTokens) {
				t.Errorf("Expected ErrTooFewTokens, got %v", err)
			}
		})
	}
}

func TestParserCustomPrefix(t *testing.T) {
	p := NewParser("kb")

	result, err := p.Parse("kb42_20240115_001_002_003")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.LookupKey != "42" || result.PrefixMissing {
		t.Errorf("Expected lookup key 42 without warning, got %+v", result)
	}
}
