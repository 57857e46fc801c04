// Package importer provides CSV, Excel and DXF import functionality for pipe
// lists. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Pipes    []model.Pipe
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	External int
	Internal int
	Length   int
	Quantity int
	Weight   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "pipe", "description", "desc", "item", "type"},
	"external": {"external", "external diameter", "od", "outer diameter", "outside diameter", "ext", "de", "d ext"},
	"internal": {"internal", "internal diameter", "id", "inner diameter", "inside diameter", "int", "di", "d int"},
	"length":   {"length", "len", "l", "standard length", "unit length", "length (cm)"},
	"quantity": {"quantity", "qty", "meters", "metres", "quantity (m)", "total length", "m"},
	"weight":   {"weight", "kg/m", "weight per meter", "weight per metre", "weight/m", "weight (kg/m)"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, External: -1, Internal: -1, Length: -1, Quantity: -1, Weight: -1}
	roles := map[string]*int{
		"label":    &mapping.Label,
		"external": &mapping.External,
		"internal": &mapping.Internal,
		"length":   &mapping.Length,
		"quantity": &mapping.Quantity,
		"weight":   &mapping.Weight,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := roles[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional: Label, External, Internal, Length, Quantity, Weight
		return ColumnMapping{Label: 0, External: 1, Internal: 2, Length: 3, Quantity: 4, Weight: 5}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts both "12.5" and "12,5".
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// parseRow extracts a Pipe from a row using the given column mapping.
// Returns the pipe, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, pipeCount int) (model.Pipe, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Pipe %d", pipeCount+1)
	}

	cols := []struct {
		name string
		idx  int
	}{
		{"external diameter", mapping.External},
		{"internal diameter", mapping.Internal},
		{"length", mapping.Length},
		{"quantity", mapping.Quantity},
	}
	values := make([]float64, len(cols))
	for k, col := range cols {
		raw := getCell(row, col.idx)
		if raw == "" {
			return model.Pipe{}, fmt.Sprintf("%s: Missing %s value", rowLabel, col.name), ""
		}
		v, err := parseNumber(raw)
		if err != nil {
			return model.Pipe{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, col.name, raw), ""
		}
		values[k] = v
	}
	external, internal, length, quantity := values[0], values[1], values[2], values[3]

	var warning string
	weight := 0.0
	if raw := getCell(row, mapping.Weight); raw != "" {
		v, err := parseNumber(raw)
		if err != nil {
			return model.Pipe{}, fmt.Sprintf("%s: Invalid weight '%s'", rowLabel, raw), ""
		}
		weight = v
	} else {
		warning = fmt.Sprintf("%s: No weight per meter, weight limits will ignore '%s'", rowLabel, label)
	}

	pipe := model.NewPipe(label, external, internal, length, quantity, weight)
	if err := pipe.Validate(); err != nil {
		return model.Pipe{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	return pipe, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports pipes from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports pipes from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pipes from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into pipes.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.External == -1 {
			missing = append(missing, "External")
		}
		if mapping.Internal == -1 {
			missing = append(missing, "Internal")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 5 {
		if _, err := parseNumber(strings.TrimSpace(rows[0][1])); err != nil {
			// Unrecognised header; skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pipe, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Pipes))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Pipes = append(result.Pipes, pipe)
	}

	return result
}
