// Package importer provides CSV and Excel import functionality for item lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.Item
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Width    int
	Height   int
	Depth    int
	Quantity int
	Size     int // combined "WxHxD" column, used when a side column is missing
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "item", "item name", "description", "desc", "sku", "box"},
	"width":    {"width", "w", "x", "length", "len"},
	"height":   {"height", "h", "y", "tall"},
	"depth":    {"depth", "d", "z", "deep"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"size":     {"size", "dimensions", "dims", "whd"},
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
// mapping (Label, Width, Height, Depth, Quantity) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:    -1,
		Width:    -1,
		Height:   -1,
		Depth:    -1,
		Quantity: -1,
		Size:     -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					setOnce(&mapping.Label, i)
				case "width":
					setOnce(&mapping.Width, i)
				case "height":
					setOnce(&mapping.Height, i)
				case "depth":
					setOnce(&mapping.Depth, i)
				case "quantity":
					setOnce(&mapping.Quantity, i)
				case "size":
					setOnce(&mapping.Size, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:    0,
			Width:    1,
			Height:   2,
			Depth:    3,
			Quantity: 4,
			Size:     -1,
		}, false
	}

	return mapping, true
}

func setOnce(field *int, i int) {
	if *field == -1 {
		*field = i
	}
}

// hasSides reports whether all three side columns are mapped.
func (m ColumnMapping) hasSides() bool {
	return m.Width >= 0 && m.Height >= 0 && m.Depth >= 0
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseSide(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts an Item from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.Item, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Item %d", itemCount+1)
	}

	var dims model.Dimensions
	if mapping.hasSides() {
		var errMsg string
		if dims.Width, errMsg = parseSide(row, mapping.Width, "width", rowLabel); errMsg != "" {
			return model.Item{}, errMsg, ""
		}
		if dims.Height, errMsg = parseSide(row, mapping.Height, "height", rowLabel); errMsg != "" {
			return model.Item{}, errMsg, ""
		}
		if dims.Depth, errMsg = parseSide(row, mapping.Depth, "depth", rowLabel); errMsg != "" {
			return model.Item{}, errMsg, ""
		}
	} else {
		sizeStr := getCell(row, mapping.Size)
		if sizeStr == "" {
			return model.Item{}, fmt.Sprintf("%s: Missing size value", rowLabel), ""
		}
		d, err := model.ParseDimensions(sizeStr)
		if err != nil {
			return model.Item{}, fmt.Sprintf("%s: Invalid size '%s'", rowLabel, sizeStr), ""
		}
		dims = d
	}

	var warning string
	qty := 1
	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		if mapping.Quantity >= 0 {
			warning = fmt.Sprintf("%s: Missing quantity, defaulting to 1", rowLabel)
		}
	} else {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.Item{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		qty = n
	}

	if !dims.Valid() || qty <= 0 {
		return model.Item{}, fmt.Sprintf("%s: Width, height, depth, and quantity must be positive", rowLabel), ""
	}

	return model.NewItem(label, dims.Width, dims.Height, dims.Depth, qty), "", warning
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

// ImportCSV imports items from a CSV file.
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

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports items from a CSV reader with a specific delimiter.
// This is useful for HTTP uploads or when the delimiter is already known.
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

// ImportExcel imports items from an Excel (.xlsx) file.
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

// ImportFile dispatches on the file extension: .xlsx goes to ImportExcel,
// .dxf to ImportDXF with dxfHeight as the item height, anything else is
// read as CSV.
func ImportFile(path string, dxfHeight float64) ImportResult {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return ImportExcel(path)
	case strings.HasSuffix(lower, ".dxf"):
		return ImportDXF(path, dxfHeight)
	default:
		return ImportCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into items.
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

		if !mapping.hasSides() && mapping.Size == -1 {
			missing := []string{}
			if mapping.Width == -1 {
				missing = append(missing, "Width")
			}
			if mapping.Height == -1 {
				missing = append(missing, "Height")
			}
			if mapping.Depth == -1 {
				missing = append(missing, "Depth")
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header: skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Items))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}
