package core

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// NoticeLevel classifies a user-visible message.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message queued for the next page render.
type Notice struct {
	Level  NoticeLevel `json:"level"`
	FileID string      `json:"fileId,omitempty"`
	Text   string      `json:"text"`
}

// FileState is one loaded file within a session.
type FileState struct {
	ID       string
	Name     string
	Size     int64
	Source   Format
	Table    *Table   // Current table, replaced by cleaning actions
	Selected []string // Column selection applied to visualize and convert
	Chart    *Chart   // Last visualization, if any
	LoadedAt time.Time
}

// Upload returns the file's identity as originally received, without content.
func (f *FileState) Upload() UploadedFile {
	return UploadedFile{Name: f.Name, Size: f.Size}
}

// Working returns the table with the current column selection applied.
func (f *FileState) Working() (*Table, error) {
	return SelectColumns(f.Table, f.Selected)
}

// SessionState is everything one interactive session owns.
// It is mutated only while the owning Session's lock is held.
type SessionState struct {
	Rewards RewardCounter
	Files   []*FileState
	Notices []Notice
}

// File returns the file with the given id.
func (st *SessionState) File(id string) (*FileState, error) {
	for _, f := range st.Files {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFileNotFound, id)
}

// RemoveFile drops a file from the session.
func (st *SessionState) RemoveFile(id string) error {
	for i, f := range st.Files {
		if f.ID == id {
			st.Files = append(st.Files[:i], st.Files[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrFileNotFound, id)
}

// Commit awards the event's points. Events worth nothing are a no-op and
// return an empty message.
func (st *SessionState) Commit(ev Event) (string, error) {
	if ev.Points == 0 {
		return "", nil
	}
	return st.Rewards.Earn(ev.Points)
}

// maxNotices bounds the queue for clients that never drain it.
const maxNotices = 50

// Notify queues a notice for display. Past maxNotices the oldest is dropped.
func (st *SessionState) Notify(level NoticeLevel, fileID, text string) {
	st.Notices = append(st.Notices, Notice{Level: level, FileID: fileID, Text: text})
	if over := len(st.Notices) - maxNotices; over > 0 {
		st.Notices = append([]Notice(nil), st.Notices[over:]...)
	}
}

// DrainNotices returns and clears the queued notices.
func (st *SessionState) DrainNotices() []Notice {
	n := st.Notices
	st.Notices = nil
	return n
}

// Session is a single user's interactive run. State is held in memory only
// and discarded when the session ends or expires.
type Session struct {
	ID        string
	CreatedAt time.Time

	lastSeen atomic.Int64 // unix nanos

	mu    sync.Mutex
	state SessionState
}

// With runs fn with exclusive access to the session state.
// Actions within a session therefore run one at a time.
func (s *Session) With(fn func(st *SessionState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// SessionStore holds live sessions keyed by id.
type SessionStore struct {
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates a store that expires sessions idle longer than idleTimeout.
// A non-positive timeout disables expiry.
func NewSessionStore(idleTimeout time.Duration) *SessionStore {
	return &SessionStore{
		idleTimeout: idleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// Create starts a new session with zero XP.
func (st *SessionStore) Create() *Session {
	now := st.now()
	s := &Session{ID: uuid.New().String(), CreatedAt: now}
	s.touch(now)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a live session and marks it as used.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	now := st.now()
	if st.expired(s, now) {
		st.Delete(id)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.touch(now)
	return s, nil
}

// Delete ends a session.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes idle sessions and returns how many were removed.
func (st *SessionStore) Sweep() int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *SessionStore) expired(s *Session, now time.Time) bool {
	return st.idleTimeout > 0 && now.Sub(s.LastSeen()) > st.idleTimeout
}
