package web

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/JonMunkholm/sweeper/internal/web/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// handleDashboard renders the main page and clears queued notices.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	view := s.service.View(sess, true)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	err := templates.Dashboard(templates.DashboardData{
		View:       view,
		Formats:    core.Formats(),
		Extensions: core.SupportedExtensions(),
		MaxFiles:   s.cfg.Upload.MaxFiles,
	}).Render(r.Context(), w)
	if err != nil {
		slog.ErrorContext(r.Context(), "render dashboard", "error", err)
	}
}

// handleUploadForm loads the submitted files and returns to the dashboard.
// Per-file failures appear there as notices.
func (s *Server) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	files, err := s.readUploads(w, r)
	if err != nil {
		s.notifyError(sess, "", err)
		redirectHome(w, r, "")
		return
	}

	s.service.Upload(r.Context(), sess, files)
	redirectHome(w, r, "")
}

// handleActionForm runs a dashboard button. Convert streams the file back;
// every other action returns to the file's card.
func (s *Server) handleActionForm(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	fileID := chi.URLParam(r, "fileID")

	action, err := core.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.notifyError(sess, fileID, err)
		redirectHome(w, r, fileID)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if action == core.ActionConvert {
		s.convertAndServe(w, r, sess, fileID, r.PostForm.Get("format"))
		return
	}

	var p core.Params
	if action == core.ActionSelectColumns {
		req := ColumnsRequest{Columns: r.PostForm["columns"]}
		if err := s.validate.Struct(req); err != nil {
			s.notifyError(sess, fileID, err)
			redirectHome(w, r, fileID)
			return
		}
		p.Columns = req.Columns
	}

	if _, err := s.service.Do(r.Context(), sess, fileID, action, p); err != nil {
		s.notifyError(sess, fileID, err)
	}
	redirectHome(w, r, fileID)
}

// handleDownload converts a file to the requested format and serves it.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	s.convertAndServe(w, r, sess, chi.URLParam(r, "fileID"), r.URL.Query().Get("format"))
}

// handleRemoveForm drops a file from the session.
func (s *Server) handleRemoveForm(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.service.RemoveFile(sess, chi.URLParam(r, "fileID")); err != nil {
		s.notifyError(sess, "", err)
	}
	redirectHome(w, r, "")
}

// handleResetSession discards the session and starts a fresh one.
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	s.service.EndSession(sess.ID)

	fresh := s.service.NewSession()
	s.setSessionCookie(w, fresh.ID)
	w.Header().Set(SessionHeader, fresh.ID)
	slog.InfoContext(r.Context(), "session reset", "new_session_id", fresh.ID)
	redirectHome(w, r, "")
}

// handleJoinCommunity queues the welcome notice.
func (s *Server) handleJoinCommunity(w http.ResponseWriter, r *http.Request) {
	s.service.JoinCommunity(sessionFrom(r.Context()))
	redirectHome(w, r, "")
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":   "ok",
		"sessions": s.service.SessionCount(),
	})
}

// handleUploadQueueStatus returns the current state of the upload limiter.
// Used for monitoring and to check if the system can accept more uploads.
func (s *Server) handleUploadQueueStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.service.UploadLimiterStatus())
}

// convertAndServe runs the convert action and writes the result as an
// attachment. Points are awarded only when the file was produced.
func (s *Server) convertAndServe(w http.ResponseWriter, r *http.Request, sess *core.Session, fileID, format string) {
	req := ConvertRequest{Format: format}
	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	f, ok := core.FormatByKey(req.Format)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, req.Format), http.StatusBadRequest)
		return
	}

	res, err := s.service.Do(r.Context(), sess, fileID, core.ActionConvert, core.Params{Format: f})
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	s.serveExport(w, r, res.Export)
}

// serveExport writes a converted file with download headers.
func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, exp *core.ExportResult) {
	w.Header().Set("Content-Type", exp.MIME)
	w.Header().Set("Content-Disposition", contentDisposition(exp.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(exp.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(exp.Data); err != nil {
		slog.WarnContext(r.Context(), "write download", "file", exp.FileName, "error", err)
		return
	}
	if s.metrics != nil {
		s.metrics.ExportServed(exp.Format.Key)
	}
}

// contentDisposition builds an attachment header. Non-ASCII names are sent
// in the RFC 2231 filename* form.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

// notifyError queues err for the next dashboard render. Errors about a file
// that no longer exists are shown at the top of the page.
func (s *Server) notifyError(sess *core.Session, fileID string, err error) {
	if errors.Is(err, core.ErrFileNotFound) {
		fileID = ""
	}
	text := userMessage(err)
	sess.With(func(st *core.SessionState) error {
		st.Notify(core.NoticeError, fileID, fmt.Sprintf("%s (Code: %s). %s", text.Message, text.Code, text.Action))
		return nil
	})
}

// redirectHome sends the browser back to the dashboard after a form post,
// anchored at a file's card when fileID is set.
func redirectHome(w http.ResponseWriter, r *http.Request, fileID string) {
	target := "/"
	if fileID != "" {
		target = "/#file-" + fileID
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
