package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one source row: the mandatory ticket fields plus the remaining
// columns keyed by their header name. Values are raw strings; typing them
// against the tracker schema is the importer's job.
type Record struct {
	Title       string
	Description string
	Priority    string
	Fields      map[string]string
}

// Header aliases for the mandatory columns. Matching is case-insensitive on
// the trimmed header.
var (
	titleHeaders       = []string{"Titulo", "Título", "Title"}
	descriptionHeaders = []string{"Descripción", "Descripcion", "Descripción de la Novedad", "Description"}
	priorityHeaders    = []string{"Prioridad", "Priority"}
)

// evidencePrefix groups evidence/attachment link columns that a source may
// split across several headers (Evidencias, Evidencia 2, ...).
const evidencePrefix = "evidencia"

// evidenceField is the logical field name merged evidence columns land in.
const evidenceField = "Evidencias"

// Load reads records from a CSV file.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// Parse reads CSV content: one header row, then one row per ticket. Values
// are trimmed; quoted commas and doubled quotes follow standard CSV rules.
// Rows whose title duplicates an earlier row's title (case-insensitive,
// trimmed) are dropped, keeping the first occurrence.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []Record
	seenTitles := make(map[string]bool)

	for _, row := range rows[1:] {
		rec := fromRow(headers, row)
		if rec.Title == "" && len(rec.Fields) == 0 {
			continue
		}

		titleKey := strings.ToLower(strings.TrimSpace(rec.Title))
		if titleKey != "" && seenTitles[titleKey] {
			continue
		}
		seenTitles[titleKey] = true

		records = append(records, rec)
	}

	return records, nil
}

// fromRow maps one data row onto a Record using the header names.
func fromRow(headers []string, row []string) Record {
	rec := Record{Fields: make(map[string]string)}

	for i, header := range headers {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}

		switch {
		case matchesHeader(header, titleHeaders):
			if rec.Title == "" {
				rec.Title = value
			}
		case matchesHeader(header, descriptionHeaders):
			if rec.Description == "" {
				rec.Description = value
			}
		case matchesHeader(header, priorityHeaders):
			if rec.Priority == "" {
				rec.Priority = value
			}
		case strings.HasPrefix(strings.ToLower(header), evidencePrefix):
			appendField(rec.Fields, evidenceField, value)
		default:
			appendField(rec.Fields, header, value)
		}
	}

	return rec
}

// appendField sets a field value, joining with ", " when the same logical
// column appears more than once in the header row.
func appendField(fields map[string]string, name, value string) {
	if existing, ok := fields[name]; ok {
		fields[name] = existing + ", " + value
		return
	}
	fields[name] = value
}

func matchesHeader(header string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.EqualFold(header, alias) {
			return true
		}
	}
	return false
}
