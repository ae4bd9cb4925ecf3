package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/yigit/campustrack/internal/pkg/logger"
)

// Format is the tabular encoding of an upload
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DetectFormat picks the parser from the upload's file name, then its content type.
// Anything that is not a spreadsheet is read as delimited text.
func DetectFormat(filename, contentType string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return FormatXLSX
	}
	if strings.HasPrefix(strings.ToLower(contentType), xlsxContentType) {
		return FormatXLSX
	}
	return FormatCSV
}

// Parse reads every data row of the upload, in file order. Failures are *ParseError.
func Parse(data []byte, format Format) ([]Row, error) {
	switch format {
	case FormatXLSX:
		return parseXLSX(data)
	default:
		return parseCSV(data)
	}
}

func parseCSV(data []byte) ([]Row, error) {
	if !utf8.Valid(data) {
		return nil, &ParseError{Err: errors.New("file is not valid UTF-8 text")}
	}
	text := strings.TrimPrefix(string(data), byteOrderMark)

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	// A stray quote inside an unquoted field is kept as data, e.g. Dwayne "Rock" J
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	rows := make([]Row, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if isBlankRecord(record) {
			line, _ := reader.FieldPos(0)
			logSkippedRecord(line)
			continue
		}
		rows = append(rows, buildRow(header, record))
	}
	return rows, nil
}

func parseXLSX(data []byte) ([]Row, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("failed to open spreadsheet: %w", err)}
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Err: errors.New("spreadsheet has no sheets")}
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)}
	}

	rows := make([]Row, 0, len(records))
	if len(records) == 0 {
		return rows, nil
	}
	header := records[0]
	for i, record := range records[1:] {
		if isBlankRecord(record) {
			logSkippedRecord(i + 2)
			continue
		}
		rows = append(rows, buildRow(header, record))
	}
	return rows, nil
}

// buildRow pairs record fields with header columns. Fields past the header are dropped;
// columns past the record are absent.
func buildRow(header, record []string) Row {
	raw := make(map[string]string, len(header))
	for i, column := range header {
		if i >= len(record) {
			break
		}
		raw[column] = record[i]
	}
	return NormalizeRow(raw)
}

// logSkippedRecord notes a blank or comma-only line; such lines are not counted in the batch
func logSkippedRecord(line int) {
	logger.Debug().Int("line", line).Msg("Skipping blank roster record")
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if normalizeValue(field) != "" {
			return false
		}
	}
	return true
}
