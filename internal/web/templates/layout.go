package templates

import (
	"context"

	"github.com/a-h/templ"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f7fa;color:#1f2933}
main{max-width:960px;margin:0 auto;padding:2rem 1rem}
h1{margin-bottom:.25rem}
.sub{color:#52606d;margin-top:0}
.card{background:#fff;border-radius:8px;box-shadow:0 1px 3px rgba(0,0,0,.1);padding:1rem 1.25rem;margin:1rem 0}
.card h2{margin-top:0;font-size:1.15rem}
.meta{color:#52606d;font-size:.9rem}
table.preview{border-collapse:collapse;width:100%;font-size:.85rem;margin:.5rem 0;overflow-x:auto;display:block}
table.preview th,table.preview td{border:1px solid #d9e2ec;padding:.25rem .5rem;text-align:left;white-space:nowrap}
table.preview td.missing{color:#9aa5b1;font-style:italic}
.actions{display:flex;flex-wrap:wrap;gap:.5rem;margin:.75rem 0}
.actions form{margin:0}
button{background:#2f80ed;color:#fff;border:0;border-radius:4px;padding:.4rem .8rem;cursor:pointer}
button.secondary{background:#9aa5b1}
fieldset{border:1px solid #d9e2ec;border-radius:4px;margin:.5rem 0}
.notice{padding:.5rem .75rem;border-radius:4px;margin:.25rem 0}
.notice.success{background:#e3f9e5;color:#207227}
.notice.info{background:#e6f6ff;color:#035388}
.notice.error{background:#ffe3e3;color:#8a041a}
.progress{background:#d9e2ec;border-radius:999px;height:14px;overflow:hidden}
.progress span{display:block;height:100%;background:#27ab83}
.done{font-weight:600;color:#207227}
`

// Page wraps body in the document shell.
func Page(title string, body templ.Component) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title><style>" + stylesheet + "</style></head><body><main>")
		h.component(ctx, body)
		h.raw("</main></body></html>")
	})
}

// ErrorPage is a standalone page for errors outside the dashboard.
func ErrorPage(message, action, code string) templ.Component {
	return Page("Error", ErrorAlert(message, action, code))
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="notice error" role="alert"><strong>`)
		h.text(message)
		h.raw("</strong>")
		if action != "" {
			h.raw(" ")
			h.text(action)
		}
		if code != "" {
			h.raw(` <span class="meta">(Code: `)
			h.text(code)
			h.raw(")</span>")
		}
		h.raw("</div>")
	})
}
