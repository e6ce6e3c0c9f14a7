// Package charts renders the three dashboard charts as SVG with go-chart.
//
//   - DaysLine: validations per day, a line with point markers
//   - CategoryStacked: per-month category shares, one stacked bar per month
//     with each segment labeled to one decimal place
//   - TopStopsBar: the busiest stops, bar fill on a Blues scale by magnitude
//
// Renderers take the projections computed by the dataprocessing package and
// never touch the table themselves.
package charts
