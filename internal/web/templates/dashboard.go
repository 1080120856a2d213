package templates

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/a-h/templ"
)

// DashboardData is everything the main page needs.
type DashboardData struct {
	View       core.SessionView
	Formats    []core.Format
	Extensions []string
	MaxFiles   int
}

// Dashboard renders the full main page.
func Dashboard(d DashboardData) templ.Component {
	return Page("Data Sweeper", DashboardBody(d))
}

// DashboardBody renders the page content without the document shell.
func DashboardBody(d DashboardData) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1>Data Sweeper: Growth Edition 🚀</h1>")
		h.raw(`<p class="sub">Transform your files while developing a growth mindset. Earn XP for every action!</p>`)
		h.rawf("<p>🌟 Your XP: <strong id=\"xp\">%d</strong></p>", d.View.XP)

		h.component(ctx, UploadForm(d.Extensions, d.MaxFiles))
		h.component(ctx, Notices(d.View.Notices, ""))

		for _, f := range d.View.Files {
			h.component(ctx, FileCard(f, d.Formats, noticesFor(d.View.Notices, f.ID)))
		}

		if len(d.View.Files) > 0 {
			h.raw(`<p class="done">All files processed! Keep growing your skills! 🚀</p>`)
			h.component(ctx, ProgressBar(d.View.XP, d.View.Progress))
			h.raw(`<form method="post" action="/session/reset"><button class="secondary" type="submit">Start over</button></form>`)
			h.component(ctx, Community())
		}
	})
}

// UploadForm renders the multi-file upload control.
func UploadForm(extensions []string, maxFiles int) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<form class="card" method="post" action="/files" enctype="multipart/form-data">`)
		h.raw(`<label for="files">Upload Your Files (`)
		h.text(strings.Join(extensions, ", "))
		h.raw(")</label> ")
		h.raw(`<input id="files" type="file" name="files" multiple required`)
		h.attr("accept", strings.Join(extensions, ","))
		h.raw(">")
		if maxFiles > 0 {
			h.rawf(` <span class="meta">up to %d files</span>`, maxFiles)
		}
		h.raw(` <button type="submit">Upload</button></form>`)
	})
}

// Community renders the community invitation.
func Community() templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="card" id="community"><h2>Join the Growth Mindset Community</h2>`)
		h.raw(`<p>Want to learn and grow with others? Join our community!</p>`)
		h.raw(`<form method="post" action="/community"><button type="submit">Join Now 💡</button></form></section>`)
	})
}

// ProgressBar renders XP progress toward the first 100 points.
func ProgressBar(xp int, progress float64) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		pct := int(progress*100 + 0.5)
		h.rawf(`<div class="progress" role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="%d" title="%d XP">`, pct, xp)
		h.rawf(`<span style="width:%d%%"></span></div>`, pct)
	})
}

// Notices renders queued messages. A non-empty fileID limits output to that
// file; an empty one shows only session-wide notices.
func Notices(notices []core.Notice, fileID string) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		for _, n := range notices {
			if n.FileID != fileID {
				continue
			}
			h.rawf(`<div class="notice %s">`, levelClass(n.Level))
			h.text(n.Text)
			h.raw("</div>")
		}
	})
}

func noticesFor(notices []core.Notice, fileID string) []core.Notice {
	var out []core.Notice
	for _, n := range notices {
		if n.FileID == fileID {
			out = append(out, n)
		}
	}
	return out
}

func levelClass(l core.NoticeLevel) string {
	switch l {
	case core.NoticeSuccess, core.NoticeInfo, core.NoticeError:
		return string(l)
	}
	return "info"
}

func actionURL(fileID, action string) string {
	return fmt.Sprintf("/files/%s/%s", fileID, action)
}
