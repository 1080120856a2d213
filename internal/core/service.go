package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service provides the core business logic for interactive sessions.
type Service struct {
	sessions    *SessionStore
	limiter     *UploadLimiter
	parse       ParseOptions
	choose      Chooser
	maxFileSize int64
	rec         Recorder
}

// NewService creates a new Service instance.
func NewService(opts Options) *Service {
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	choose := opts.Chooser
	if choose == nil {
		choose = RandomChooser
	}
	return &Service{
		sessions:    NewSessionStore(opts.SessionIdleTimeout),
		limiter:     NewUploadLimiter(opts.MaxConcurrentUploads, opts.MaxUploadWait),
		parse:       opts.Parse,
		choose:      choose,
		maxFileSize: opts.MaxFileSize,
		rec:         rec,
	}
}

// NewSession starts a session with zero XP and no files.
func (s *Service) NewSession() *Session {
	return s.sessions.Create()
}

// Session returns a live session by id.
func (s *Service) Session(id string) (*Session, error) {
	return s.sessions.Get(id)
}

// EndSession discards a session and everything it holds.
func (s *Service) EndSession(id string) {
	s.sessions.Delete(id)
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	return s.sessions.Len()
}

// Upload loads each file into the session. Files are processed in order and
// independently: a failure is reported in that file's outcome and does not
// stop the rest of the batch.
func (s *Service) Upload(ctx context.Context, sess *Session, files []UploadedFile) []UploadOutcome {
	outcomes := make([]UploadOutcome, 0, len(files))
	for _, file := range files {
		out := UploadOutcome{FileName: file.Name}

		state, err := s.load(ctx, file)
		if err != nil {
			out.Err = err
			slog.WarnContext(ctx, "file load failed", "file", file.Name, "error", err)
		} else {
			preview := BuildPreview(file, state.Table)
			out.FileID = state.ID
			out.Preview = &preview
			slog.InfoContext(ctx, "file loaded",
				"file", file.Name,
				"format", state.Source.Key,
				"rows", state.Table.NumRows(),
				"columns", state.Table.NumCols(),
			)
		}

		sess.With(func(st *SessionState) error {
			if out.Err != nil {
				st.Notify(NoticeError, "", FormatUserError(out.Err))
				return nil
			}
			st.Files = append(st.Files, state)
			return nil
		})
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (s *Service) load(ctx context.Context, file UploadedFile) (*FileState, error) {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		err := &LoadError{FileName: file.Name, Err: fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, file.Size, s.maxFileSize)}
		s.rec.FileLoaded("", err)
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	t, format, err := Load(file, s.parse)
	s.rec.FileLoaded(format.Key, err)
	if err != nil {
		return nil, err
	}

	return &FileState{
		ID:       uuid.New().String(),
		Name:     file.Name,
		Size:     file.Size,
		Source:   format,
		Table:    t,
		LoadedAt: time.Now(),
	}, nil
}

// Do runs an action on one of the session's files and commits its points.
// Cleaning actions replace the file's table; column selection replaces the
// file's selection; visualize and convert operate on the selected columns.
// On error nothing in the session changes.
func (s *Service) Do(ctx context.Context, sess *Session, fileID string, action Action, p Params) (Result, error) {
	var res Result
	err := sess.With(func(st *SessionState) error {
		f, err := st.File(fileID)
		if err != nil {
			return err
		}
		p.FileName = f.Name

		input := f.Table
		if action == ActionVisualize || action == ActionConvert {
			if input, err = f.Working(); err != nil {
				return err
			}
		}

		out, ev, err := Apply(input, action, p, s.choose)
		if err != nil {
			return err
		}
		if p.Deliver != nil {
			if err := p.Deliver(ev); err != nil {
				return err
			}
		}

		msg, err := st.Commit(ev)
		if err != nil {
			return err
		}

		switch action {
		case ActionRemoveDuplicates, ActionFillMissing:
			f.Table = out
		case ActionSelectColumns:
			f.Selected = out.Names()
			if len(p.Columns) == 0 {
				f.Selected = nil
			}
		case ActionVisualize:
			f.Chart = ev.Chart
		}

		for _, m := range ev.Messages {
			st.Notify(NoticeSuccess, f.ID, m)
		}
		if msg != "" {
			st.Notify(NoticeInfo, f.ID, msg)
		}

		res = Result{
			Event:       ev,
			EarnMessage: msg,
			XP:          st.Rewards.XP(),
			Progress:    st.Rewards.Progress(),
		}
		return nil
	})

	s.rec.ActionApplied(action, res.Points, err)
	if err != nil {
		slog.WarnContext(ctx, "action failed", "action", action, "file_id", fileID, "error", err)
		return Result{}, err
	}
	slog.DebugContext(ctx, "action applied", "action", action, "file_id", fileID, "points", res.Points, "xp", res.XP)
	return res, nil
}

// JoinCommunity queues the community welcome for the session.
func (s *Service) JoinCommunity(sess *Session) string {
	sess.With(func(st *SessionState) error {
		st.Notify(NoticeSuccess, "", CommunityWelcome)
		return nil
	})
	return CommunityWelcome
}

// RemoveFile drops a file from the session. XP is unchanged.
func (s *Service) RemoveFile(sess *Session, fileID string) error {
	return sess.With(func(st *SessionState) error {
		return st.RemoveFile(fileID)
	})
}

// View returns a snapshot of the session. When drain is set, queued notices
// are included and cleared.
func (s *Service) View(sess *Session, drain bool) SessionView {
	v := SessionView{ID: sess.ID}
	sess.With(func(st *SessionState) error {
		v.XP = st.Rewards.XP()
		v.Progress = st.Rewards.Progress()
		for _, f := range st.Files {
			v.Files = append(v.Files, FileView{
				ID:             f.ID,
				Name:           f.Name,
				Source:         f.Source.Label,
				Preview:        BuildPreview(f.Upload(), f.Table),
				Columns:        f.Table.Names(),
				Selected:       append([]string(nil), f.Selected...),
				NumericColumns: len(f.Table.NumericColumns()),
				Chart:          f.Chart,
			})
		}
		if drain {
			v.Notices = st.DrainNotices()
		}
		return nil
	})
	return v
}

// UploadLimiterStatus returns the decode limiter's current state.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight decodes finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
