// Package templates renders the sweeper's HTML as templ components.
//
// Components are built with templ.ComponentFunc and write through htmlWriter,
// which escapes every dynamic value with templ.EscapeString.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can write
// sequentially and check once at the end.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes an escaped value.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// rawf formats trusted markup. Every argument must already be safe.
func (h *htmlWriter) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// attr writes name="escaped value".
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// component runs a nested component into the same writer.
func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// render adapts a write function into a templ.Component.
func render(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}
