package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/pipeline"
)

// Event is a single input change.
type Event struct {
	Input  Input              `json:"input"`
	Genres []string           `json:"genres,omitempty"`
	Years  pipeline.YearRange `json:"years"`
	Movie  string             `json:"movie,omitempty"`
	Mode   string             `json:"mode,omitempty"`
}

// Update is what a session returns after applying an event.
type Update struct {
	State      State          `json:"state"`
	Visibility Visibility     `json:"visibility"`
	Figures    []chart.Figure `json:"figures"`
}

// Session holds one user's selection. Events are applied one at a time; each
// runs to completion before the next is processed.
type Session struct {
	ID string

	mu       sync.Mutex
	ctrl     *Controller
	state    State
	lastSeen time.Time
}

// NewSession returns a session in the neutral mode with nothing selected.
func (c *Controller) NewSession(id string) *Session {
	return &Session{ID: id, ctrl: c, lastSeen: time.Now()}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Selection.Genres = append([]string(nil), st.Selection.Genres...)
	return st
}

// Apply validates ev against ds, updates the selection and recomputes the
// charts that depend on the changed input. An invalid event leaves the state
// untouched.
func (s *Session) Apply(ds *dataset.Dataset, ev Event) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	next := s.state
	switch ev.Input {
	case InputGenres:
		next.Selection.Genres = append([]string(nil), ev.Genres...)
	case InputYears:
		next.Selection.Years = completeYears(ds, ev.Years)
	case InputMovie:
		next.Selection.Movie = ev.Movie
	case InputMode:
		m, err := ParseMode(ev.Mode)
		if err != nil {
			return Update{}, err
		}
		next = next.Toggle(m)
	default:
		return Update{}, fmt.Errorf("%w: %q", ErrUnknownInput, ev.Input)
	}
	if err := Validate(ds, next.Selection); err != nil {
		return Update{}, err
	}
	s.state = next

	return Update{
		State:      next,
		Visibility: next.Mode.Visibility(),
		Figures:    s.ctrl.render(ds, next.Selection, s.ctrl.Dependents(ev.Input)),
	}, nil
}

// completeYears fills a missing bound of a half-open range from the dataset.
// A range with neither bound stays zero and means the full range.
func completeYears(ds *dataset.Dataset, y pipeline.YearRange) pipeline.YearRange {
	if y.IsZero() {
		return y
	}
	lo, hi := ds.YearRange()
	if y.From == 0 {
		y.From = lo
	}
	if y.To == 0 {
		y.To = hi
	}
	return y
}

// Snapshot recomputes every chart for the current state.
func (s *Session) Snapshot(ds *dataset.Dataset) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return Update{
		State:      s.state,
		Visibility: s.state.Mode.Visibility(),
		Figures:    s.ctrl.Render(ds, s.state.Selection),
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Sessions is a concurrency-safe set of sessions keyed by id.
type Sessions struct {
	mu   sync.Mutex
	ctrl *Controller
	byID map[string]*Session
}

// NewSessions returns an empty session set backed by ctrl.
func NewSessions(ctrl *Controller) *Sessions {
	return &Sessions{ctrl: ctrl, byID: make(map[string]*Session)}
}

// Get returns the session with id, or a new session with a fresh id when id
// is empty or unknown. created reports whether a new session was made.
func (ss *Sessions) Get(id string) (s *Session, created bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if s, ok := ss.byID[id]; ok && id != "" {
		return s, false
	}
	s = ss.ctrl.NewSession(uuid.NewString())
	ss.byID[s.ID] = s
	return s, true
}

// Len returns the number of live sessions.
func (ss *Sessions) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.byID)
}

// Prune drops sessions idle for longer than maxIdle and returns how many were
// removed.
func (ss *Sessions) Prune(now time.Time, maxIdle time.Duration) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	n := 0
	for id, s := range ss.byID {
		if now.Sub(s.idleSince()) > maxIdle {
			delete(ss.byID, id)
			n++
		}
	}
	return n
}
