package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Catppuccin Mocha subset.
const (
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorPeach    lipgloss.Color = "#fab387"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorPink     lipgloss.Color = "#f5c2e7"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	infoStyle    = lipgloss.NewStyle().Foreground(colorTeal)
	metaStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	missingStyle = cellStyle.Foreground(colorSubtext0).Italic(true)
	trackStyle   = lipgloss.NewStyle().Foreground(colorSurface1)
	fillStyle    = lipgloss.NewStyle().Foreground(colorGreen)

	seriesStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(colorBlue),
		lipgloss.NewStyle().Foreground(colorPeach),
	}
)

// Terminal chart geometry in cells.
const (
	barWidth      = 40
	progressWidth = 30
	maxChartRows  = 30
)

// renderPreview draws a file summary and its first rows.
func renderPreview(p core.Preview) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.FileName) + "\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("File Size: %s · %d rows · %d duplicate rows", p.Size, p.TotalRows, p.Duplicates)) + "\n")

	headers := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		h := c.Name + " (" + c.Type
		if c.Missing > 0 {
			h += fmt.Sprintf(", %d missing", c.Missing)
		}
		headers[i] = h + ")"
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSurface1)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(p.Head) && col < len(p.Head[row]) && p.Head[row][col] == "" {
				return missingStyle
			}
			return cellStyle
		})
	for _, row := range p.Head {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == "" {
				v = "NaN"
			}
			cells[i] = v
		}
		t.Row(cells...)
	}
	b.WriteString(t.Render() + "\n")
	return b.String()
}

// renderChart draws a horizontal bar chart, one line per row and series.
// Bars scale to the largest absolute value; negative values are marked.
func renderChart(c core.Chart) string {
	if c.Empty() {
		return metaStyle.Render("No numeric columns to chart.") + "\n"
	}

	scale := math.Max(math.Abs(c.Max()), math.Abs(c.Min()))
	if scale == 0 {
		scale = 1
	}

	labelWidth := 0
	for _, s := range c.Series {
		labelWidth = max(labelWidth, len(s.Name))
	}

	var b strings.Builder
	rows := min(len(c.Labels), maxChartRows)
	for i := 0; i < rows; i++ {
		for si, s := range c.Series {
			style := seriesStyles[si%len(seriesStyles)]
			label := fmt.Sprintf("%-4s %-*s ", c.Labels[i], labelWidth, s.Name)
			if !s.Present[i] {
				b.WriteString(label + metaStyle.Render("missing") + "\n")
				continue
			}
			v := s.Values[i]
			n := int(math.Round(math.Abs(v) / scale * barWidth))
			bar := strings.Repeat("█", n)
			if v < 0 {
				bar = "-" + bar
			}
			b.WriteString(label + style.Render(bar) + " " + formatValue(v) + "\n")
		}
	}
	if len(c.Labels) > rows {
		b.WriteString(metaStyle.Render(fmt.Sprintf("… %d more rows", len(c.Labels)-rows)) + "\n")
	}
	return b.String()
}

// renderProgress draws the XP bar.
func renderProgress(xp int, progress float64) string {
	filled := int(math.Round(progress * progressWidth))
	return fmt.Sprintf("🌟 Your XP: %d %s%s %d%%",
		xp,
		fillStyle.Render(strings.Repeat("█", filled)),
		trackStyle.Render(strings.Repeat("░", progressWidth-filled)),
		int(math.Round(progress*100)),
	)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}
