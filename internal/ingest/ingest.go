// Package ingest reads match spreadsheets (CSV or JSON, optionally gzip or
// zstd compressed) into normalized rows.
package ingest

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-lol-draftstats/internal/model"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format is the decoded file type.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
)

// Dataset is a loaded file.
type Dataset struct {
	Path string
	Hash string // sha256 of the raw file bytes
	Rows []model.Row
}

// Load reads and decodes the file at path.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sum := sha256.Sum256(raw)

	body, name, err := decompress(raw, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	var rows []model.Row
	switch detectFormat(name) {
	case FormatCSV:
		rows, err = ParseCSV(bytes.NewReader(body))
	case FormatJSON:
		rows, err = ParseJSON(bytes.NewReader(body))
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &Dataset{
		Path: path,
		Hash: hex.EncodeToString(sum[:]),
		Rows: rows,
	}, nil
}

// decompress strips a .gz or .zst suffix and returns the inner bytes and name.
func decompress(raw []byte, name string) ([]byte, string, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zst"):
		dec, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, "", fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		out, err := io.ReadAll(dec)
		if err != nil {
			return nil, "", fmt.Errorf("zstd: %w", err)
		}
		return out, strings.TrimSuffix(lower, ".zst"), nil
	case strings.HasSuffix(lower, ".gz"):
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, "", fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		out, err := io.ReadAll(gz)
		if err != nil {
			return nil, "", fmt.Errorf("gzip: %w", err)
		}
		return out, strings.TrimSuffix(lower, ".gz"), nil
	}
	return raw, lower, nil
}

func detectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	}
	return FormatUnknown
}

// ParseCSV decodes a CSV stream with a header row. Keys are lower-cased and
// trimmed, and empty cells are omitted. Cells stay strings; model.Row coerces
// numbers on read so long ids keep their exact digits.
func ParseCSV(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = normalizeKey(h)
	}

	var rows []model.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(model.Row, len(keys))
		for i, cell := range rec {
			if i >= len(keys) || keys[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) != "" {
				row[keys[i]] = cell
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ParseJSON decodes a JSON array of objects, lower-casing every key. Numbers
// are kept as json.Number.
func ParseJSON(r io.Reader) ([]model.Row, error) {
	var raw []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return NormalizeRows(raw), nil
}

// NormalizeRows lower-cases the keys of rows built elsewhere.
func NormalizeRows(in []map[string]any) []model.Row {
	rows := make([]model.Row, 0, len(in))
	for _, obj := range in {
		row := make(model.Row, len(obj))
		for k, v := range obj {
			row[normalizeKey(k)] = v
		}
		rows = append(rows, row)
	}
	return rows
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(k, "\ufeff")))
}
