package utils

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"transferregistry/internal/services"
)

// headerAliases maps legacy spreadsheet column names onto the canonical ones
// used by the importer.
var headerAliases = map[string]string{
	"partner":     "company",
	"devicetype":  "device_type",
	"datatype":    "data_type",
	"dataset":     "data_set",
	"datagoingto": "data_going_to",
}

func normalizeHeader(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := headerAliases[key]; ok {
		return canonical
	}
	return key
}

func buildRows(records [][]string) ([]services.Row, error) {
	if len(records) == 0 {
		return nil, services.NewIngestFailure("file has no header row", nil)
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = normalizeHeader(name)
	}

	rows := make([]services.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		empty := true
		row := services.Row{}
		for i, value := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			value = strings.TrimSpace(value)
			row[header[i]] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RowsFromCSV reads a CSV stream whose first record is the header. A
// structurally unreadable file fails wholesale with an IngestFailure.
func RowsFromCSV(r io.Reader) ([]services.Row, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, services.NewIngestFailure("failed to parse CSV file", err)
	}
	return buildRows(records)
}

// RowsFromXLSX reads the first sheet of an XLSX workbook, first row as
// header.
func RowsFromXLSX(r io.Reader) ([]services.Row, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, services.NewIngestFailure("failed to open XLSX file", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, services.NewIngestFailure("workbook has no sheets", nil)
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, services.NewIngestFailure("failed to read XLSX rows", err)
	}
	return buildRows(records)
}
