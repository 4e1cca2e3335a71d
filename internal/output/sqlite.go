// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // database/sql driver "sqlite"

	"github.com/davetashner/filmdash/internal/pipeline"
)

func init() {
	RegisterFormatter(NewSQLiteFormatter())
}

const sqliteSchema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE movies (
	title    TEXT NOT NULL,
	director TEXT NOT NULL,
	year     INTEGER NOT NULL,
	rating   REAL NOT NULL,
	gross    REAL,
	votes    INTEGER NOT NULL,
	genres   TEXT NOT NULL
);
CREATE TABLE popularity (
	bin   TEXT NOT NULL,
	genre TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (bin, genre)
);
CREATE TABLE revenue (
	series TEXT NOT NULL,
	role   TEXT NOT NULL,
	rating REAL NOT NULL,
	gross  REAL,
	votes  REAL NOT NULL,
	count  INTEGER NOT NULL
);
CREATE TABLE ratings (
	position INTEGER PRIMARY KEY,
	label    TEXT NOT NULL,
	count    INTEGER NOT NULL
);
CREATE INDEX idx_movies_year ON movies(year);
`

// SQLiteFormatter writes the filtered movies and every aggregate table to a
// SQLite database.
type SQLiteFormatter struct {
	nowFunc func() time.Time
}

var (
	_ Formatter     = (*SQLiteFormatter)(nil)
	_ FileFormatter = (*SQLiteFormatter)(nil)
)

// NewSQLiteFormatter returns a new SQLiteFormatter.
func NewSQLiteFormatter() *SQLiteFormatter {
	return &SQLiteFormatter{}
}

// Name returns the format name.
func (f *SQLiteFormatter) Name() string {
	return "sqlite"
}

// Format builds the database in a temporary file and copies it to w.
func (f *SQLiteFormatter) Format(e *Export, w io.Writer) error {
	dir, err := os.MkdirTemp("", "filmdash-export-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir) //nolint:errcheck // best-effort cleanup

	path := filepath.Join(dir, "export.sqlite3")
	if err := f.FormatFile(e, path); err != nil {
		return err
	}
	src, err := os.Open(path) //nolint:gosec // path is our own temp file
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer src.Close() //nolint:errcheck // read-only
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}

// FormatFile writes the database to path, replacing any existing file.
func (f *SQLiteFormatter) FormatFile(e *Export, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	dbClosed := false
	defer func() {
		if !dbClosed {
			db.Close() //nolint:errcheck,gosec // closed on error paths only
		}
	}()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	steps := []struct {
		name string
		fn   func(*sql.Tx, *Export) error
	}{
		{"meta", f.insertMeta},
		{"movies", insertMovies},
		{"popularity", insertPopularity},
		{"revenue", insertRevenue},
		{"ratings", insertRatings},
	}
	for _, s := range steps {
		if err := s.fn(tx, e); err != nil {
			return fmt.Errorf("insert %s: %w", s.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	dbClosed = true
	return nil
}

func (f *SQLiteFormatter) insertMeta(tx *sql.Tx, e *Export) error {
	s := e.Snapshot
	meta := map[string]string{
		"dataset":      e.Source,
		"generated_at": timestamp(f.nowFunc),
		"genres":       strings.Join(s.Selection.Genres, ","),
		"years":        fmt.Sprintf("%d-%d", s.Years.From, s.Years.To),
		"movie":        s.Selection.Movie,
		"matched":      fmt.Sprint(s.Matched),
	}
	stmt, err := tx.Prepare(`INSERT INTO meta (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck // statement close
	for k, v := range meta {
		if _, err := stmt.Exec(k, v); err != nil {
			return err
		}
	}
	return nil
}

func insertMovies(tx *sql.Tx, e *Export) error {
	stmt, err := tx.Prepare(`INSERT INTO movies (title, director, year, rating, gross, votes, genres) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck // statement close
	for _, m := range e.Snapshot.Rows {
		var genres []string
		for i, on := range m.Genres {
			if on && i < len(e.Genres) {
				genres = append(genres, e.Genres[i])
			}
		}
		if _, err := stmt.Exec(m.Title, m.Director, m.Year, m.Rating, nullFloat(m.Gross), m.Votes, strings.Join(genres, ",")); err != nil {
			return err
		}
	}
	return nil
}

func insertPopularity(tx *sql.Tx, e *Export) error {
	stmt, err := tx.Prepare(`INSERT INTO popularity (bin, genre, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck // statement close
	for _, r := range e.Snapshot.Popularity.Rows {
		if _, err := stmt.Exec(r.Bin, r.Genre, r.Count); err != nil {
			return err
		}
	}
	return nil
}

func insertRevenue(tx *sql.Tx, e *Export) error {
	stmt, err := tx.Prepare(`INSERT INTO revenue (series, role, rating, gross, votes, count) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck // statement close

	r := e.Snapshot.Revenue
	series := []pipeline.RevenueSeries{r.Average}
	if r.Selected != nil {
		series = append(series, *r.Selected)
	}
	for _, s := range series {
		for _, p := range s.Points {
			if _, err := stmt.Exec(s.Label, string(s.Role), p.Rating, nullFloat(p.Gross), p.Votes, p.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertRatings(tx *sql.Tx, e *Export) error {
	stmt, err := tx.Prepare(`INSERT INTO ratings (position, label, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck // statement close
	for i, s := range e.Snapshot.Ratings.Slices {
		if _, err := stmt.Exec(i, s.Label, s.Count); err != nil {
			return err
		}
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
