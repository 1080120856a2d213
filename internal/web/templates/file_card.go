package templates

import (
	"context"
	"slices"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/a-h/templ"
)

// FileCard renders one loaded file: summary, preview, cleaning, insight,
// column selection, chart and conversion controls.
func FileCard(f core.FileView, formats []core.Format, notices []core.Notice) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		p := f.Preview
		h.raw(`<section class="card"`)
		h.attr("id", "file-"+f.ID)
		h.raw("><h2>")
		h.text(f.Name)
		h.raw("</h2>")
		h.raw(`<p class="meta"><em>File Size:</em> `)
		h.text(p.Size)
		h.rawf(" · %d rows · %d duplicate rows · ", p.TotalRows, p.Duplicates)
		h.text(f.Source)
		h.raw("</p>")

		h.component(ctx, Notices(notices, f.ID))

		h.raw("<h3>Preview The Head of The Data Frame</h3>")
		h.component(ctx, PreviewTable(p))

		h.raw(`<h3>Data Cleaning Options</h3><div class="actions">`)
		h.component(ctx, actionButton(f.ID, "dedupe", "Remove Duplicates from "+f.Name))
		h.component(ctx, actionButton(f.ID, "fill-missing", "Fill Missing Values for "+f.Name))
		h.raw("</div>")

		h.raw(`<h3>AI Smart Insights</h3><div class="actions">`)
		h.component(ctx, actionButton(f.ID, "insight", "Get AI Insights for "+f.Name))
		h.raw("</div>")

		h.raw("<h3>Select Columns To Convert</h3>")
		h.component(ctx, ColumnSelect(f))

		h.raw(`<h3>Data Visualization</h3><div class="actions">`)
		h.component(ctx, actionButton(f.ID, "visualize", "Visualize "+f.Name))
		h.raw("</div>")
		if f.Chart != nil {
			h.component(ctx, BarChart(*f.Chart))
		}

		h.raw("<h3>Conversion Option</h3>")
		h.component(ctx, ConvertForm(f, formats))

		h.raw(`<form method="post"`)
		h.attr("action", actionURL(f.ID, "remove"))
		h.raw(`><button class="secondary" type="submit">Remove file</button></form>`)
		h.raw("</section>")
	})
}

// PreviewTable renders the first rows of a file with column summaries.
func PreviewTable(p core.Preview) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<table class="preview"><thead><tr>`)
		for _, c := range p.Columns {
			h.raw("<th>")
			h.text(c.Name)
			h.raw(`<br><span class="meta">`)
			h.text(c.Type)
			if c.Missing > 0 {
				h.rawf(", %d missing", c.Missing)
			}
			h.raw("</span></th>")
		}
		h.raw("</tr></thead><tbody>")
		for _, row := range p.Head {
			h.raw("<tr>")
			for _, v := range row {
				if v == "" {
					h.raw(`<td class="missing">NaN</td>`)
					continue
				}
				h.raw("<td>")
				h.text(v)
				h.raw("</td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	})
}

// ColumnSelect renders a checkbox per column. Submitting with nothing
// checked clears the selection.
func ColumnSelect(f core.FileView) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<form method="post"`)
		h.attr("action", actionURL(f.ID, "columns"))
		h.raw("><fieldset><legend>Select Columns For ")
		h.text(f.Name)
		h.raw("</legend>")
		for _, c := range f.Columns {
			h.raw(`<label><input type="checkbox" name="columns"`)
			h.attr("value", c)
			if slices.Contains(f.Selected, c) {
				h.raw(" checked")
			}
			h.raw("> ")
			h.text(c)
			h.raw("</label> ")
		}
		h.raw(`</fieldset><button type="submit">Apply selection</button></form>`)
	})
}

// ConvertForm offers each writable format and downloads the converted file.
func ConvertForm(f core.FileView, formats []core.Format) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<form method="get"`)
		h.attr("action", "/files/"+f.ID+"/download")
		h.raw("><fieldset><legend>Convert ")
		h.text(f.Name)
		h.raw(" to</legend>")
		for i, fm := range formats {
			if fm.Encode == nil {
				continue
			}
			h.raw(`<label><input type="radio" name="format"`)
			h.attr("value", fm.Key)
			if i == 0 {
				h.raw(" checked")
			}
			h.raw("> ")
			h.text(fm.Label)
			h.raw("</label> ")
		}
		h.raw("</fieldset><button type=\"submit\">Convert and download ")
		h.text(f.Name)
		h.raw("</button></form>")
	})
}

func actionButton(fileID, action, label string) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<form method="post"`)
		h.attr("action", actionURL(fileID, action))
		h.raw(`><button type="submit">`)
		h.text(label)
		h.raw("</button></form>")
	})
}
