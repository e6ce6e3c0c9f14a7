package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ratpdash/pkg/contracts/domain"
)

// Name identifies one of the dashboard charts
type Name string

const (
	Days       Name = "days"
	Categories Name = "categories"
	Stops      Name = "stops"
)

// Chart titles as shown on the dashboard
const (
	TitleDays       = "Évolution des validations par jour"
	TitleCategories = "Répartition en % des validations par mois et par catégorie"
	TitleStops      = "Top 10 des arrêts les plus validés"
)

const (
	defaultWidth  = 1024
	defaultHeight = 400
)

var (
	// ErrNoData is returned when a chart has nothing to plot
	ErrNoData = errors.New("no data to chart")
	// ErrUnknownChart is returned by ParseName for names outside Days, Categories, Stops
	ErrUnknownChart = errors.New("unknown chart")
)

// All lists the charts in page order
var All = []Name{Days, Categories, Stops}

// ParseName validates a chart name
func ParseName(s string) (Name, error) {
	switch n := Name(s); n {
	case Days, Categories, Stops:
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
}

// Title returns the display title of the chart
func (n Name) Title() string {
	switch n {
	case Days:
		return TitleDays
	case Categories:
		return TitleCategories
	case Stops:
		return TitleStops
	}
	return string(n)
}

// Render writes the named chart for view as SVG
func Render(w io.Writer, name Name, view *domain.DashboardView) error {
	if view == nil {
		return ErrNoData
	}
	switch name {
	case Days:
		return DaysLine(w, view.Days)
	case Categories:
		return CategoryStacked(w, view.Shares)
	case Stops:
		return TopStopsBar(w, view.TopStops)
	}
	return fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

// DaysLine draws validations per day as a line with point markers
func DaysLine(w io.Writer, days []domain.DayTotal) error {
	if len(days) == 0 {
		return ErrNoData
	}

	xs := make([]time.Time, len(days))
	ys := make([]float64, len(days))
	var maxY float64
	for i, d := range days {
		xs[i] = d.Day
		ys[i] = float64(d.Count)
		maxY = math.Max(maxY, ys[i])
	}

	// a single day would give the x axis a zero-width range
	minX, maxX := chart.TimeToFloat64(xs[0]), chart.TimeToFloat64(xs[len(xs)-1])
	if minX == maxX {
		pad := chart.TimeToFloat64(xs[0].Add(24*time.Hour)) - minX
		minX, maxX = minX-pad, maxX+pad
	}

	graph := chart.Chart{
		Title:  TitleDays,
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           "jour",
			ValueFormatter: chart.TimeValueFormatterWithFormat("02/01"),
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name:           "nb_vald",
			Range:          &chart.ContinuousRange{Min: 0, Max: math.Max(maxY*1.1, 1)},
			ValueFormatter: countFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "nb_vald",
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render days chart: %w", err)
	}
	return nil
}

// CategoryStacked draws one 100% bar per month, each segment a category labeled with its share
func CategoryStacked(w io.Writer, shares []domain.CategoryShare) error {
	if len(shares) == 0 {
		return ErrNoData
	}

	graph := chart.StackedBarChart{
		Title:      TitleCategories,
		Width:      defaultWidth,
		Height:     defaultHeight,
		BarSpacing: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		Bars: stackedBars(shares),
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render categories chart: %w", err)
	}
	return nil
}

// stackedBars groups shares into one bar per month, in the order months first appear
func stackedBars(shares []domain.CategoryShare) []chart.StackedBar {
	categories := make([]string, 0, len(shares))
	for _, s := range shares {
		categories = append(categories, s.Category)
	}
	colors := categoryColors(categories)

	var bars []chart.StackedBar
	index := make(map[string]int)
	for _, s := range shares {
		i, ok := index[s.Month]
		if !ok {
			i = len(bars)
			index[s.Month] = i
			bars = append(bars, chart.StackedBar{Name: s.Month})
		}
		if s.Percent <= 0 {
			continue
		}
		bars[i].Values = append(bars[i].Values, chart.Value{
			Label: fmt.Sprintf("%.1f%%", s.Percent),
			Value: s.Percent,
			Style: chart.Style{
				FillColor:   colors[s.Category],
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontColor:   drawing.ColorWhite,
			},
		})
	}

	// a month with no validations still gets its slot on the axis
	for i := range bars {
		if len(bars[i].Values) == 0 {
			bars[i].Values = []chart.Value{{
				Value: 1,
				Style: chart.Style{FillColor: drawing.ColorWhite, StrokeColor: drawing.ColorWhite},
			}}
		}
	}

	return bars
}

// TopStopsBar draws the busiest stops, darker fill for larger totals
func TopStopsBar(w io.Writer, stops []domain.StopTotal) error {
	if len(stops) == 0 {
		return ErrNoData
	}

	bars, maxC := stopBars(stops)
	graph := chart.BarChart{
		Title:      TitleStops,
		Width:      defaultWidth,
		Height:     defaultHeight,
		BarWidth:   60,
		BarSpacing: 20,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: math.Max(float64(maxC)*1.1, 1)},
			ValueFormatter: countFormatter,
		},
		Bars: bars,
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render stops chart: %w", err)
	}
	return nil
}

// stopBars colors each stop on the Blues scale between the smallest and largest total
func stopBars(stops []domain.StopTotal) ([]chart.Value, int64) {
	var minC, maxC int64 = stops[0].Count, stops[0].Count
	for _, s := range stops {
		if s.Count < minC {
			minC = s.Count
		}
		if s.Count > maxC {
			maxC = s.Count
		}
	}

	bars := make([]chart.Value, len(stops))
	for i, s := range stops {
		ratio := 1.0
		if maxC > minC {
			ratio = float64(s.Count-minC) / float64(maxC-minC)
		}
		fill := Blues(ratio)
		bars[i] = chart.Value{
			Label: s.Stop,
			Value: float64(s.Count),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	return bars, maxC
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.Comma(int64(math.Round(f)))
	}
	return fmt.Sprint(v)
}
