package domain

// DashboardFilter carries the interactive selection of a page load
type DashboardFilter struct {
	Month    string `json:"month"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// TablePage is one page of the filtered raw table
type TablePage struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	TotalRows int        `json:"total_rows"`
}

// PageCount returns the number of pages needed for TotalRows
func (p TablePage) PageCount() int {
	if p.PageSize <= 0 || p.TotalRows == 0 {
		return 1
	}
	return (p.TotalRows + p.PageSize - 1) / p.PageSize
}

// HasPrev reports whether a previous page exists
func (p TablePage) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists
func (p TablePage) HasNext() bool {
	return p.Page < p.PageCount()
}

// DashboardView is everything the dashboard page displays for one render
type DashboardView struct {
	Title         string          `json:"title"`
	Metrics       HeadlineMetrics `json:"metrics"`
	Months        []string        `json:"months"`
	SelectedMonth string          `json:"selected_month"`
	Table         TablePage       `json:"table"`
	Days          []DayTotal      `json:"days"`
	Shares        []CategoryShare `json:"shares"`
	TopStops      []StopTotal     `json:"top_stops"`
}
