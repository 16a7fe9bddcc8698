package lookup

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// MaxTableSize bounds the lookup files we are willing to read.
const MaxTableSize = 10 * 1024 * 1024

// strictRows is how many leading rows must have exactly two columns. Bad
// rows after them are skipped with a warning.
const strictRows = 6

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one publication entry as stored in parquet and YAML tables.
type Row struct {
	Name string `parquet:"name" yaml:"name"`
	Code string `parquet:"code" yaml:"code"`
}

// Loader reads a lookup table from disk
type Loader struct {
	tablePath string
}

// NewLoader creates a new lookup table loader
func NewLoader(tablePath string) *Loader {
	return &Loader{
		tablePath: tablePath,
	}
}

// Load reads the table, choosing the format from the file extension.
func (l *Loader) Load() (*Table, error) {
	info, err := os.Stat(l.tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat lookup table: %w", err)
	}
	if info.Size() > MaxTableSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTableTooLarge, l.tablePath, info.Size())
	}

	var table *Table
	ext := strings.ToLower(filepath.Ext(l.tablePath))
	switch ext {
	case ".csv":
		table, err = l.loadCSV()
	case ".parquet":
		table, err = l.loadParquet(info.Size())
	case ".yaml", ".yml":
		table, err = l.loadYAML()
	default:
		return nil, fmt.Errorf("%w: %s (supported: .csv, .parquet, .yaml)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, l.tablePath)
	}
	table.source = l.tablePath

	slog.Debug("Loaded lookup table", "path", l.tablePath, "entries", table.Len())
	return table, nil
}

// loadCSV reads a two column (name, code) CSV file. A header row is
// tolerated; blank rows are skipped. A wrong column count in the first
// strictRows rows rejects the file.
func (l *Loader) loadCSV() (*Table, error) {
	data, err := os.ReadFile(l.tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup table: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, l.tablePath)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table := NewTable(nil)
	line := 0
	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		line++

		if isBlank(record) {
			continue
		}
		rows++
		if len(record) != 2 {
			if rows <= strictRows {
				return nil, fmt.Errorf("%w: line %d has %d columns, need 2", ErrColumnCount, line, len(record))
			}
			slog.Warn("Skipping lookup row with wrong column count", "path", l.tablePath, "line", line, "columns", len(record))
			continue
		}
		if line == 1 && looksLikeHeader(record) {
			continue
		}
		if strings.TrimSpace(record[0]) == "" || strings.TrimSpace(record[1]) == "" {
			slog.Warn("Skipping incomplete lookup row", "path", l.tablePath, "line", line)
			continue
		}

		table.Set(record[1], record[0])
	}

	return table, nil
}

// loadParquet reads rows with "name" and "code" columns
func (l *Loader) loadParquet(size int64) (*Table, error) {
	file, err := os.Open(l.tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	pf, err := parquet.OpenFile(file, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet lookup opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	table := NewTable(nil)
	rows := make([]Row, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			table.Set(row.Code, row.Name)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return table, nil
}

// loadYAML reads either a code -> name mapping or a list of rows.
func (l *Loader) loadYAML() (*Table, error) {
	data, err := os.ReadFile(l.tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup table: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	table := NewTable(nil)
	if len(doc.Content) == 0 {
		return table, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			table.Set(root.Content[i].Value, root.Content[i+1].Value)
		}
	case yaml.SequenceNode:
		var rows []Row
		if err := root.Decode(&rows); err != nil {
			return nil, fmt.Errorf("failed to decode YAML rows: %w", err)
		}
		for _, row := range rows {
			table.Set(row.Code, row.Name)
		}
	default:
		return nil, fmt.Errorf("%w: YAML root must be a mapping or a list", ErrUnsupportedFormat)
	}

	return table, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func looksLikeHeader(record []string) bool {
	name := strings.ToLower(strings.TrimSpace(record[0]))
	code := strings.ToLower(strings.TrimSpace(record[1]))
	return (name == "name" || name == "title" || name == "titel" || name == "tidning") &&
		(code == "code" || code == "bibid" || code == "bib")
}
