package core

import "time"

// Recorder receives operational events from the service.
// The metrics package provides a Prometheus implementation.
type Recorder interface {
	FileLoaded(format string, err error)
	ActionApplied(action Action, points int, err error)
	SessionsExpired(n int)
}

type nopRecorder struct{}

func (nopRecorder) FileLoaded(string, error) {}
func (nopRecorder) ActionApplied(Action, int, error) {}
func (nopRecorder) SessionsExpired(int) {}

// Options configures a Service. Zero values select defaults.
type Options struct {
	MaxFileSize          int64         // Bytes per file; 0 means unlimited
	MaxConcurrentUploads int           // Simultaneous decodes
	MaxUploadWait        time.Duration // How long a decode waits for a slot
	SessionIdleTimeout   time.Duration // Idle sessions are swept after this
	Parse                ParseOptions
	Chooser              Chooser  // Picks insights and encouragements; random when nil
	Recorder             Recorder // Nil disables recording
}

// UploadOutcome is the per-file result of an upload batch.
type UploadOutcome struct {
	FileName string
	FileID   string   // Empty when Err is set
	Preview  *Preview // Nil when Err is set
	Err      error
}

// Result is the outcome of a committed action.
type Result struct {
	Event
	EarnMessage string // Empty for actions worth no points
	XP          int
	Progress    float64
}

// FileView is a read-only snapshot of a loaded file.
type FileView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Source         string   `json:"source"`
	Preview        Preview  `json:"preview"`
	Columns        []string `json:"columns"`
	Selected       []string `json:"selected"`
	NumericColumns int      `json:"numericColumns"`
	Chart          *Chart   `json:"chart,omitempty"`
}

// SessionView is a read-only snapshot of a session.
type SessionView struct {
	ID       string     `json:"id"`
	XP       int        `json:"xp"`
	Progress float64    `json:"progress"`
	Files    []FileView `json:"files"`
	Notices  []Notice   `json:"notices,omitempty"`
}
