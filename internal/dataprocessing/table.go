package dataprocessing

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"ratpdash/pkg/contracts/domain"
)

// Table is a read-only view over a loaded validations export.
// Methods never modify the underlying dataframe, so a Table can be shared
// between concurrent renders.
type Table struct {
	df     dataframe.DataFrame
	months []string
}

func newTable(df dataframe.DataFrame) *Table {
	return &Table{df: df, months: distinct(df.Col(domain.ColumnMonth).Records())}
}

func distinct(values []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.df.Nrow()
}

// Columns returns the column names in file order
func (t *Table) Columns() []string {
	return t.df.Names()
}

// Months returns the distinct month labels, sorted
func (t *Table) Months() []string {
	out := make([]string, len(t.months))
	copy(out, t.months)
	return out
}

// Categories returns the distinct ticket categories, sorted
func (t *Table) Categories() []string {
	return distinct(t.df.Col(domain.ColumnCategory).Records())
}

// HasMonth reports whether month occurs in the table
func (t *Table) HasMonth(month string) bool {
	i := sort.SearchStrings(t.months, month)
	return i < len(t.months) && t.months[i] == month
}

// Rows returns every row as text, without the header
func (t *Table) Rows() [][]string {
	if t.Len() == 0 {
		return [][]string{}
	}
	return t.df.Records()[1:]
}

// Page returns one page of rows. page is 1-based; pages past the end are empty.
func (t *Table) Page(page, pageSize int) domain.TablePage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	result := domain.TablePage{
		Columns:   t.Columns(),
		Rows:      [][]string{},
		Page:      page,
		PageSize:  pageSize,
		TotalRows: t.Len(),
	}

	start := (page - 1) * pageSize
	if start >= t.Len() {
		return result
	}
	end := start + pageSize
	if end > t.Len() {
		end = t.Len()
	}

	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, i)
	}
	result.Rows = t.df.Subset(indexes).Records()[1:]
	return result
}
