package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/davetashner/filmdash/internal/chart"
	"github.com/davetashner/filmdash/internal/dashboard"
	"github.com/davetashner/filmdash/internal/dataset"
	"github.com/davetashner/filmdash/internal/output"
	"github.com/davetashner/filmdash/internal/pipeline"
)

const maxEventBytes = 64 << 10

// OptionsResponse lists the selector choices for the loaded dataset.
type OptionsResponse struct {
	Genres []string           `json:"genres"`
	Titles []string           `json:"titles"`
	Years  pipeline.YearRange `json:"years"`
	Movies int                `json:"movies"`
}

// FiguresResponse is the stateless recomputation result.
type FiguresResponse struct {
	Selection pipeline.Selection `json:"selection"`
	Figures   []chart.Figure     `json:"figures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func optionsFor(ds *dataset.Dataset) OptionsResponse {
	lo, hi := ds.YearRange()
	return OptionsResponse{
		Genres: ds.Genres(),
		Titles: ds.Titles(),
		Years:  pipeline.YearRange{From: lo, To: hi},
		Movies: ds.Len(),
	}
}

type pageData struct {
	OptionsResponse
	ScriptURL string
	ChartIDs  []string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		OptionsResponse: optionsFor(s.handle.Load()),
		ScriptURL:       output.ScriptURL(s.opts.AssetsHost),
		ChartIDs:        s.ctrl.Charts(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.l.Error("render page", slog.String("error", err.Error()))
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, optionsFor(s.handle.Load()))
}

func (s *Server) handleFigures(w http.ResponseWriter, r *http.Request) {
	ds := s.handle.Load()
	sel, err := selectionFromQuery(ds, r)
	if err == nil {
		err = dashboard.Validate(ds, sel)
	}
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, FiguresResponse{Selection: sel, Figures: s.ctrl.Render(ds, sel)})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeJSON(w, r, http.StatusOK, sess.Snapshot(s.handle.Load()))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, err)
		return
	}
	var ev dashboard.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode event: %w", err))
		return
	}

	sess := s.session(w, r)
	up, err := sess.Apply(s.handle.Load(), ev)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, up)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"movies":   s.handle.Load().Len(),
		"sessions": s.sessions.Len(),
	})
}

// session resolves the caller's session, issuing a cookie for a new one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *dashboard.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	sess, created := s.sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// selectionFromQuery reads genre (repeatable), from, to and movie. When only
// one year bound is given the other comes from the dataset.
func selectionFromQuery(ds *dataset.Dataset, r *http.Request) (pipeline.Selection, error) {
	q := r.URL.Query()
	sel := pipeline.Selection{Genres: q["genre"], Movie: q.Get("movie")}

	from, to := q.Get("from"), q.Get("to")
	if from == "" && to == "" {
		return sel, nil
	}
	lo, hi := ds.YearRange()
	var err error
	if sel.Years.From, err = yearParam("from", from, lo); err != nil {
		return sel, err
	}
	if sel.Years.To, err = yearParam("to", to, hi); err != nil {
		return sel, err
	}
	return sel, nil
}

func yearParam(name, v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a year", dashboard.ErrYearRange, name, v)
	}
	return n, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.l.Error("encode response", slog.String("request_id", RequestIDFrom(r.Context())),
			slog.String("error", err.Error()))
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	} else if status == http.StatusRequestEntityTooLarge {
		status = http.StatusBadRequest
	}
	s.l.Debug("rejected request", slog.String("request_id", RequestIDFrom(r.Context())),
		slog.String("error", err.Error()))
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
