package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Page(t *testing.T) {
	table := loadSample(t)

	tests := []struct {
		name     string
		page     int
		size     int
		wantRows int
		wantPage int
	}{
		{name: "first page", page: 1, size: 4, wantRows: 4, wantPage: 1},
		{name: "last partial page", page: 3, size: 4, wantRows: 2, wantPage: 3},
		{name: "past the end", page: 9, size: 4, wantRows: 0, wantPage: 9},
		{name: "page below one is clamped", page: 0, size: 100, wantRows: 10, wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := table.Page(tt.page, tt.size)
			assert.Len(t, page.Rows, tt.wantRows)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, 10, page.TotalRows)
			assert.Equal(t, table.Columns(), page.Columns)
		})
	}

	first := table.Page(1, 1)
	assert.Equal(t, []string{"2024-01-05", "71410", "Gare du Nord", "Navigo", "500", "Janvier"}, first.Rows[0])
}

func TestTable_HasMonth(t *testing.T) {
	table := loadSample(t)

	assert.True(t, table.HasMonth("Janvier"))
	assert.True(t, table.HasMonth("Février"))
	assert.False(t, table.HasMonth("janvier"))
	assert.False(t, table.HasMonth(""))
}

func TestTable_MonthsIsACopy(t *testing.T) {
	table := loadSample(t)

	months := table.Months()
	months[0] = "changed"
	assert.Equal(t, "Février", table.Months()[0])
}

func TestTable_Categories(t *testing.T) {
	table := loadSample(t)
	assert.Equal(t, []string{"Amethyste", "Imagine R", "Navigo"}, table.Categories())
}
