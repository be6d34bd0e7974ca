// internal/tabular/reader_test.go
package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadWorkbook(t *testing.T) {
	buf := workbookBytes(t, [][]interface{}{
		{"No", "Name", "Qty"},
		{1, "rope", 10},
		{2, "paint"},
	})

	table, err := ReadWorkbook(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"No", "Name", "Qty"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "rope", "10"}, table.Rows[0])
	assert.Equal(t, []string{"2", "paint"}, table.Rows[1], "ragged rows pass through")
}

func TestReadWorkbookEmptySheet(t *testing.T) {
	buf := workbookBytes(t, nil)

	table, err := ReadWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestReadWorkbookGarbage(t *testing.T) {
	_, err := ReadWorkbook(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}
