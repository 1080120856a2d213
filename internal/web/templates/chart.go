package templates

import (
	"context"
	"math"
	"strconv"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/a-h/templ"
)

// Chart geometry in SVG user units.
const (
	chartWidth   = 640
	chartHeight  = 240
	chartPadding = 24
	maxBars      = 200
)

var seriesColors = []string{"#2f80ed", "#f2994a"}

// BarChart renders chart data as an inline SVG grouped bar chart.
// Rows beyond maxBars are not drawn.
func BarChart(c core.Chart) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		if c.Empty() {
			h.raw(`<p class="meta">No numeric columns to chart.</p>`)
			return
		}

		groups := len(c.Labels)
		if groups > maxBars {
			groups = maxBars
		}
		top, bottom := c.Max(), c.Min()
		span := top - bottom
		if span == 0 {
			span = 1
		}

		plotW := float64(chartWidth - 2*chartPadding)
		plotH := float64(chartHeight - 2*chartPadding)
		groupW := plotW / float64(groups)
		barW := groupW / float64(len(c.Series)+1)
		zeroY := chartPadding + plotH*(top/span)

		h.rawf(`<svg class="chart" viewBox="0 0 %d %d" width="100%%" role="img">`, chartWidth, chartHeight)
		h.rawf(`<line x1="%d" y1="%s" x2="%d" y2="%s" stroke="#9aa5b1"/>`,
			chartPadding, ftoa(zeroY), chartWidth-chartPadding, ftoa(zeroY))

		for si, s := range c.Series {
			color := seriesColors[si%len(seriesColors)]
			for i := 0; i < groups; i++ {
				if !s.Present[i] {
					continue
				}
				v := s.Values[i]
				hgt := plotH * math.Abs(v) / span
				y := zeroY - hgt
				if v < 0 {
					y = zeroY
				}
				x := chartPadding + float64(i)*groupW + float64(si)*barW + barW/2
				h.rawf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s">`,
					ftoa(x), ftoa(y), ftoa(barW), ftoa(hgt), color)
				h.raw("<title>")
				h.text(s.Name + " [" + c.Labels[i] + "]: " + strconv.FormatFloat(v, 'f', -1, 64))
				h.raw("</title></rect>")
			}
		}

		for si, s := range c.Series {
			y := 14 + si*14
			h.rawf(`<rect x="%d" y="%d" width="10" height="10" fill="%s"/>`,
				chartWidth-160, y-9, seriesColors[si%len(seriesColors)])
			h.rawf(`<text x="%d" y="%d" font-size="11">`, chartWidth-144, y)
			h.text(s.Name)
			h.raw("</text>")
		}
		h.raw("</svg>")
	})
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
