// internal/tabular/reader.go
package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Table is an already-parsed spreadsheet: the first row as headers, the rest
// as data rows. Rows may be ragged; consumers treat missing cells as empty.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ReadWorkbook parses the first sheet of an xlsx workbook into a Table.
// An empty sheet yields an empty table, not an error.
func ReadWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	table := &Table{}
	if len(rows) > 0 {
		table.Headers = rows[0]
		table.Rows = rows[1:]
	}
	return table, nil
}
