package core

import "strconv"

// maxChartSeries is how many numeric columns a chart plots.
const maxChartSeries = 2

// ChartSeries is one plotted column. Missing cells are reported in Present.
type ChartSeries struct {
	Name    string    `json:"name"`
	Values  []float64 `json:"values"`
	Present []bool    `json:"present"`
}

// Chart is bar chart data: one group per row, one bar per series.
type Chart struct {
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// Empty reports whether there is nothing to plot.
func (c Chart) Empty() bool {
	return len(c.Series) == 0 || len(c.Labels) == 0
}

// Max returns the largest present value across series, or 0.
func (c Chart) Max() float64 {
	var m float64
	for _, s := range c.Series {
		for i, v := range s.Values {
			if s.Present[i] && v > m {
				m = v
			}
		}
	}
	return m
}

// Min returns the smallest present value across series, or 0.
func (c Chart) Min() float64 {
	var m float64
	for _, s := range c.Series {
		for i, v := range s.Values {
			if s.Present[i] && v < m {
				m = v
			}
		}
	}
	return m
}

// BuildChart plots the first two numeric columns of t, labelled by row
// position. The table is not modified. A table without numeric columns
// yields an empty chart.
func BuildChart(t *Table) Chart {
	numeric := t.NumericColumns()
	if len(numeric) > maxChartSeries {
		numeric = numeric[:maxChartSeries]
	}
	if len(numeric) == 0 {
		return Chart{}
	}

	labels := make([]string, t.NumRows())
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}

	series := make([]ChartSeries, len(numeric))
	for i, col := range numeric {
		s := ChartSeries{
			Name:    col.Name,
			Values:  make([]float64, len(col.Cells)),
			Present: make([]bool, len(col.Cells)),
		}
		for r, cell := range col.Cells {
			if cell.Kind == CellNumber {
				s.Values[r] = cell.Num
				s.Present[r] = true
			}
		}
		series[i] = s
	}
	return Chart{Labels: labels, Series: series}
}
