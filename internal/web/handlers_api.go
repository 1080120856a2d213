package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// handleAPISession returns the session snapshot and drains its notices.
func (s *Server) handleAPISession(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.service.View(sessionFrom(r.Context()), true))
}

// handleAPIEndSession discards the caller's session.
func (s *Server) handleAPIEndSession(w http.ResponseWriter, r *http.Request) {
	s.service.EndSession(sessionFrom(r.Context()).ID)
	render.NoContent(w, r)
}

// handleAPIJoinCommunity returns the community welcome.
func (s *Server) handleAPIJoinCommunity(w http.ResponseWriter, r *http.Request) {
	msg := s.service.JoinCommunity(sessionFrom(r.Context()))
	render.JSON(w, r, CommunityResponse{Message: msg})
}

// handleAPIUpload loads a multipart batch and reports every file's outcome.
// The response is 200 even when some files fail; a batch where every file
// fails is 422.
func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	files, err := s.readUploads(w, r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	outcomes := s.service.Upload(r.Context(), sess, files)

	resp := UploadResponse{Files: make([]UploadFileResult, 0, len(outcomes))}
	loaded := 0
	for _, o := range outcomes {
		res := UploadFileResult{FileName: o.FileName, FileID: o.FileID, Preview: o.Preview}
		if o.Err != nil {
			msg := userMessage(o.Err)
			res.Error = &ErrorResponse{Error: o.Err.Error(), Message: msg.Message, Action: msg.Action, Code: msg.Code}
		} else {
			loaded++
		}
		resp.Files = append(resp.Files, res)
	}
	resp.XP = s.service.View(sess, false).XP

	if loaded == 0 {
		render.Status(r, http.StatusUnprocessableEntity)
	}
	render.JSON(w, r, resp)
}

// handleAPIRemoveFile drops a file from the session.
func (s *Server) handleAPIRemoveFile(w http.ResponseWriter, r *http.Request) {
	if err := s.service.RemoveFile(sessionFrom(r.Context()), chi.URLParam(r, "fileID")); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	render.NoContent(w, r)
}

// handleAPIAction runs one action. Convert responds with the file itself;
// other actions respond with an ActionResponse.
func (s *Server) handleAPIAction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	fileID := chi.URLParam(r, "fileID")

	action, err := core.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	var p core.Params
	switch action {
	case core.ActionSelectColumns:
		var req ColumnsRequest
		if err := s.decode(r, &req); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		p.Columns = req.Columns

	case core.ActionConvert:
		var req ConvertRequest
		if err := s.decode(r, &req); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		s.convertAndServe(w, r, sess, fileID, req.Format)
		return
	}

	res, err := s.service.Do(r.Context(), sess, fileID, action, p)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	resp := ActionResponse{
		Action:      res.Action,
		Points:      res.Points,
		Messages:    res.Messages,
		Insight:     res.Insight,
		Chart:       res.Chart,
		EarnMessage: res.EarnMessage,
		XP:          res.XP,
		Progress:    res.Progress,
	}
	for _, f := range s.service.View(sess, false).Files {
		if f.ID == fileID {
			resp.File = &f
			break
		}
	}
	render.JSON(w, r, resp)
}

// decode reads an optional JSON body into v and validates it. A missing
// body validates the zero value. Query parameters fill in "format" for
// clients that prefer links over bodies.
func (s *Server) decode(r *http.Request, v any) error {
	if r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, v); err != nil && !errors.Is(err, io.EOF) {
			return validationError{problems: []string{"body must be valid JSON"}}
		}
	}
	if req, ok := v.(*ConvertRequest); ok && req.Format == "" {
		req.Format = r.URL.Query().Get("format")
	}
	return s.validate.Struct(v)
}
