package dataprocessing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"ratpdash/pkg/contracts/domain"
)

// DefaultTopStops is the number of stops kept in the ranking
const DefaultTopStops = 10

// aggregatedName is the column name gota gives an aggregated column
func aggregatedName(column string, typ dataframe.AggregationType) string {
	return fmt.Sprintf("%s_%s", column, typ)
}

var sumColumn = aggregatedName(domain.ColumnCount, dataframe.Aggregation_SUM)

// labelCodes swaps label values for opaque codes around a GroupBy. gota joins
// multi-column keys with "_" and reloads every group with its default missing
// markers ("NA", "NaN", "<nil>"), so raw labels are not safe group keys.
type labelCodes struct {
	labels []string
	codes  map[string]string
}

func newLabelCodes() *labelCodes {
	return &labelCodes{codes: make(map[string]string)}
}

func (c *labelCodes) encode(label string) string {
	if code, ok := c.codes[label]; ok {
		return code
	}
	code := "k" + strconv.Itoa(len(c.labels))
	c.codes[label] = code
	c.labels = append(c.labels, label)
	return code
}

func (c *labelCodes) decode(code string) (string, error) {
	i, err := strconv.Atoi(strings.TrimPrefix(code, "k"))
	if err != nil || i < 0 || i >= len(c.labels) {
		return "", fmt.Errorf("unknown group key %q", code)
	}
	return c.labels[i], nil
}

// groupSum is the validation total of one group, keys in column order
type groupSum struct {
	keys  []string
	count int64
}

// sumBy groups the frame by the given columns and sums the validation counts.
func sumBy(df dataframe.DataFrame, columns ...string) ([]groupSum, error) {
	if df.Nrow() == 0 {
		return []groupSum{}, nil
	}

	codes := newLabelCodes()
	cols := make([]series.Series, 0, len(columns)+1)
	for _, column := range columns {
		values := df.Col(column).Records()
		encoded := make([]string, len(values))
		for i, v := range values {
			encoded[i] = codes.encode(v)
		}
		cols = append(cols, series.New(encoded, series.String, column))
	}
	cols = append(cols, df.Col(domain.ColumnCount))

	frame := dataframe.New(cols...)
	if frame.Err != nil {
		return nil, fmt.Errorf("encode %v: %w", columns, frame.Err)
	}

	groups := frame.GroupBy(columns...)
	if groups.Err != nil {
		return nil, fmt.Errorf("group by %v: %w", columns, groups.Err)
	}
	agg := groups.Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_SUM},
		[]string{domain.ColumnCount},
	)
	if agg.Err != nil {
		return nil, fmt.Errorf("group by %v: %w", columns, agg.Err)
	}

	keyed := make([][]string, len(columns))
	for i, column := range columns {
		keyed[i] = agg.Col(column).Records()
	}
	sums := agg.Col(sumColumn).Float()

	out := make([]groupSum, len(sums))
	for row := range sums {
		keys := make([]string, len(columns))
		for i := range columns {
			label, err := codes.decode(keyed[i][row])
			if err != nil {
				return nil, err
			}
			keys[i] = label
		}
		out[row] = groupSum{keys: keys, count: int64(math.Round(sums[row]))}
	}
	return out, nil
}

// Summarize computes the headline metrics over the full table
func Summarize(t *Table) domain.HeadlineMetrics {
	stops := make(map[string]struct{})
	for _, s := range t.df.Col(domain.ColumnStop).Records() {
		stops[s] = struct{}{}
	}

	return domain.HeadlineMetrics{
		StationCount:     len(stops),
		TotalValidations: totalCount(t.df),
	}
}

func totalCount(df dataframe.DataFrame) int64 {
	counts, err := df.Col(domain.ColumnCount).Int()
	if err != nil {
		return int64(math.Round(df.Col(domain.ColumnCount).Sum()))
	}
	var total int64
	for _, c := range counts {
		total += int64(c)
	}
	return total
}

// FilterByMonth returns the rows whose month equals month.
func FilterByMonth(t *Table, month string) (*Table, error) {
	if !t.HasMonth(month) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMonth, month)
	}

	filtered := t.df.Filter(dataframe.F{
		Colname:    domain.ColumnMonth,
		Comparator: series.Eq,
		Comparando: month,
	})
	if filtered.Err != nil {
		return nil, fmt.Errorf("filter month %q: %w", month, filtered.Err)
	}
	return newTable(filtered), nil
}

// TotalsByDay sums validations per day, ascending by day
func TotalsByDay(t *Table) ([]domain.DayTotal, error) {
	groups, err := sumBy(t.df, domain.ColumnDay)
	if err != nil {
		return nil, err
	}

	totals := make([]domain.DayTotal, len(groups))
	for i, g := range groups {
		day, err := time.Parse(DayLayout, g.keys[0])
		if err != nil {
			return nil, fmt.Errorf("aggregated day %q: %w", g.keys[0], err)
		}
		totals[i] = domain.DayTotal{Day: day, Count: g.count}
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Day.Before(totals[j].Day)
	})
	return totals, nil
}

// CategorySharesByMonth sums validations per month and category, then expresses
// each category as a percentage of its month's total. Shares are relative to the
// month, so each month sums to 100. A month totalling zero yields zero shares.
func CategorySharesByMonth(t *Table) ([]domain.CategoryShare, error) {
	groups, err := sumBy(t.df, domain.ColumnMonth, domain.ColumnCategory)
	if err != nil {
		return nil, err
	}

	monthTotals := make(map[string]int64)
	for _, g := range groups {
		monthTotals[g.keys[0]] += g.count
	}

	shares := make([]domain.CategoryShare, len(groups))
	for i, g := range groups {
		shares[i] = domain.CategoryShare{
			Month:    g.keys[0],
			Category: g.keys[1],
			Count:    g.count,
		}
		if total := monthTotals[g.keys[0]]; total > 0 {
			shares[i].Percent = float64(g.count) / float64(total) * 100
		}
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Month != shares[j].Month {
			return shares[i].Month < shares[j].Month
		}
		return shares[i].Category < shares[j].Category
	})
	return shares, nil
}

// TopStops sums validations per stop and returns the n busiest, descending.
// Equal totals are ordered by stop label.
func TopStops(t *Table, n int) ([]domain.StopTotal, error) {
	if n <= 0 {
		return []domain.StopTotal{}, nil
	}

	groups, err := sumBy(t.df, domain.ColumnStop)
	if err != nil {
		return nil, err
	}

	totals := make([]domain.StopTotal, len(groups))
	for i, g := range groups {
		totals[i] = domain.StopTotal{Stop: g.keys[0], Count: g.count}
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count > totals[j].Count
		}
		return totals[i].Stop < totals[j].Stop
	})

	if len(totals) > n {
		totals = totals[:n]
	}
	return totals, nil
}
