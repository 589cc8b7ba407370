// Package tabular reads CSV and Excel sources and groups them into the
// (category-tuple, variable, sample) triples the computation core expects.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"cmplot/internal"
	"cmplot/ports"
)

var _ ports.DatasetReaderPort = (*DataReader)(nil)

// Table is an in-memory tabular source: a header row plus string cells
type Table struct {
	Columns []string
	Rows    [][]string
}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	log      *internal.Logger

	table *Table // cached after the first read
}

// NewDataReader creates a reader that handles both Excel and CSV files,
// picking the format from the file extension
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, log: internal.DefaultLogger}
}

// ReadTable loads the source into memory. The result is cached; repeated
// calls return the same table.
func (r *DataReader) ReadTable() (*Table, error) {
	if r.table != nil {
		return r.table, nil
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		table *Table
		err   error
	)
	switch r.fileType {
	case "csv":
		table, err = r.readCSV()
	case "xlsx":
		table, err = r.readExcel()
	default:
		err = fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	r.log.Debug("read %s: %d columns, %d rows", r.filePath, len(table.Columns), len(table.Rows))
	r.table = table
	return table, nil
}

// readCSV reads the whole CSV file, first record as header
func (r *DataReader) readCSV() (*Table, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty: %s", r.filePath)
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// readExcel reads the first sheet of an XLSX workbook
func (r *DataReader) readExcel() (*Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets: %s", r.filePath)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}
	return &Table{Columns: rows[0], Rows: rows[1:]}, nil
}

// Columns lists the column names of the source, in table order
func (r *DataReader) Columns(_ context.Context) ([]string, error) {
	table, err := r.ReadTable()
	if err != nil {
		return nil, err
	}
	return table.Columns, nil
}
