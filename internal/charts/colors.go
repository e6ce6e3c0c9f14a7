package charts

import (
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	bluesLow  = drawing.Color{R: 198, G: 219, B: 239, A: 255}
	bluesHigh = drawing.Color{R: 8, G: 48, B: 107, A: 255}
	lineColor = drawing.Color{R: 31, G: 119, B: 180, A: 255}
)

// palette colors categories in sorted order
var palette = []drawing.Color{
	{R: 99, G: 110, B: 250, A: 255},
	{R: 239, G: 85, B: 59, A: 255},
	{R: 0, G: 204, B: 150, A: 255},
	{R: 171, G: 99, B: 250, A: 255},
	{R: 255, G: 161, B: 90, A: 255},
	{R: 25, G: 211, B: 243, A: 255},
	{R: 255, G: 102, B: 146, A: 255},
	{R: 182, G: 232, B: 128, A: 255},
	{R: 255, G: 151, B: 255, A: 255},
	{R: 254, G: 203, B: 82, A: 255},
}

// Blues maps ratio in [0,1] onto a light-to-dark blue ramp
func Blues(ratio float64) drawing.Color {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*ratio + 0.5)
	}
	return drawing.Color{
		R: lerp(bluesLow.R, bluesHigh.R),
		G: lerp(bluesLow.G, bluesHigh.G),
		B: lerp(bluesLow.B, bluesHigh.B),
		A: 255,
	}
}

// LegendEntry pairs a category with its chart color
type LegendEntry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// CategoryLegend returns the color of each category, in the order used by CategoryStacked
func CategoryLegend(categories []string) []LegendEntry {
	sorted := distinctSorted(categories)
	legend := make([]LegendEntry, len(sorted))
	for i, c := range sorted {
		legend[i] = LegendEntry{Category: c, Color: hex(palette[i%len(palette)])}
	}
	return legend
}

func categoryColors(categories []string) map[string]drawing.Color {
	sorted := distinctSorted(categories)
	colors := make(map[string]drawing.Color, len(sorted))
	for i, c := range sorted {
		colors[c] = palette[i%len(palette)]
	}
	return colors
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
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

func hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
