// internal/engine/mapping_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectMappedAndUnmapped(t *testing.T) {
	mapping := ColumnMapping{Item: "B", Quantity: "Z"}
	headers := []string{"A", "B"}
	row := []string{"x", "y"}

	item := mapping.Project(headers, row)
	assert.Equal(t, "y", item.Item)
	assert.Equal(t, "", item.Quantity, "header absent from source degrades to empty")
	assert.Equal(t, "", item.ItemNo, "unmapped field degrades to empty")
}

func TestProjectDuplicateHeadersFirstWins(t *testing.T) {
	mapping := ColumnMapping{Item: "Desc", CustomerRemarks: "Desc"}
	headers := []string{"Desc", "Qty", "Desc"}
	row := []string{"first", "3", "second"}

	item := mapping.Project(headers, row)
	assert.Equal(t, "first", item.Item)
	assert.Equal(t, "first", item.CustomerRemarks, "a source header may back several target fields")
}

func TestProjectShortRow(t *testing.T) {
	mapping := ColumnMapping{Item: "Name", Quantity: "Qty", Unit: "Unit"}
	headers := []string{"Name", "Qty", "Unit"}

	item := mapping.Project(headers, []string{"rope"})
	assert.Equal(t, "rope", item.Item)
	assert.Equal(t, "", item.Quantity)
	assert.Equal(t, "", item.Unit)
}

func TestProjectEmptyHeaders(t *testing.T) {
	mapping := ColumnMapping{Item: "Name", Quantity: "Qty"}

	item := mapping.Project(nil, []string{"a", "b", "c"})
	assert.Equal(t, LineItem{}, item)
}

func TestProjectAllPreservesOrderAndLength(t *testing.T) {
	mapping := ColumnMapping{ItemNo: "No", Item: "Name"}
	headers := []string{"No", "Name"}
	rows := [][]string{{"1", "rope"}, {"2", "paint"}, {"3", "rice"}}

	var items []LineItem
	for item := range mapping.ProjectAll(headers, rows) {
		items = append(items, item)
	}
	require.Len(t, items, 3)
	assert.Equal(t, "rope", items[0].Item)
	assert.Equal(t, "paint", items[1].Item)
	assert.Equal(t, "rice", items[2].Item)
}

func TestProjectAllEmptyRows(t *testing.T) {
	mapping := ColumnMapping{Item: "Name"}
	count := 0
	for range mapping.ProjectAll([]string{"Name"}, nil) {
		count++
	}
	assert.Zero(t, count)
}

func TestProjectAllIdempotent(t *testing.T) {
	mapping := ColumnMapping{ItemNo: "No", Item: "Name", Quantity: "Qty"}
	headers := []string{"No", "Name", "Qty"}
	rows := [][]string{{"1", "rope", "10"}, {"2", "paint"}}

	run := func() []LineItem {
		var items []LineItem
		for item := range mapping.ProjectAll(headers, rows) {
			items = append(items, item)
		}
		return items
	}
	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestProjectAllRestartable(t *testing.T) {
	mapping := ColumnMapping{Item: "Name"}
	seq := mapping.ProjectAll([]string{"Name"}, [][]string{{"rope"}, {"paint"}})

	for item := range seq {
		assert.Equal(t, "rope", item.Item)
		break
	}
	var items []LineItem
	for item := range seq {
		items = append(items, item)
	}
	require.Len(t, items, 2)
}
