// internal/engine/mapping.go
package engine

import "iter"

// TargetSchema is the fixed, ordered quotation line-item schema. The field
// names are part of the wire contract.
var TargetSchema = []string{
	"Item No",
	"Item",
	"Customer Remarks",
	"Quantity",
	"Unit",
	"Unit Rate",
	"Total",
	"Internal Remark",
}

// LineItem is one quotation row shaped exactly as TargetSchema. A closed
// record rather than a map, so projection and validation stay exhaustive.
type LineItem struct {
	ItemNo          string `json:"Item No"`
	Item            string `json:"Item"`
	CustomerRemarks string `json:"Customer Remarks"`
	Quantity        string `json:"Quantity"`
	Unit            string `json:"Unit"`
	UnitRate        string `json:"Unit Rate"`
	Total           string `json:"Total"`
	InternalRemark  string `json:"Internal Remark"`
}

// ColumnMapping assigns each target field at most one source column header.
// An empty header means unmapped. The same source header may back several
// target fields; spreadsheets in the wild are that sloppy.
type ColumnMapping struct {
	ItemNo          string `json:"Item No"`
	Item            string `json:"Item"`
	CustomerRemarks string `json:"Customer Remarks"`
	Quantity        string `json:"Quantity"`
	Unit            string `json:"Unit"`
	UnitRate        string `json:"Unit Rate"`
	Total           string `json:"Total"`
	InternalRemark  string `json:"Internal Remark"`
}

// Project shapes one source row by the target schema. Unmapped fields,
// headers absent from the source and cells beyond the row's length all
// degrade to an empty value; untrusted spreadsheet input is never an error
// here. On duplicate source headers the first occurrence wins.
func (m ColumnMapping) Project(headers []string, row []string) LineItem {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	pick := func(source string) string {
		if source == "" {
			return ""
		}
		i, ok := index[source]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	return LineItem{
		ItemNo:          pick(m.ItemNo),
		Item:            pick(m.Item),
		CustomerRemarks: pick(m.CustomerRemarks),
		Quantity:        pick(m.Quantity),
		Unit:            pick(m.Unit),
		UnitRate:        pick(m.UnitRate),
		Total:           pick(m.Total),
		InternalRemark:  pick(m.InternalRemark),
	}
}

// ProjectAll lazily projects every source row, preserving order and length.
// The sequence is restartable; projection is pure.
func (m ColumnMapping) ProjectAll(headers []string, rows [][]string) iter.Seq[LineItem] {
	return func(yield func(LineItem) bool) {
		for _, row := range rows {
			if !yield(m.Project(headers, row)) {
				return
			}
		}
	}
}
