package output

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/filmdash/internal/pipeline"
)

func openExport(t *testing.T, sel pipeline.Selection) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.sqlite3")
	f := &SQLiteFormatter{nowFunc: fixedNow}
	require.NoError(t, f.FormatFile(sampleExport(sel), path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestSQLiteFormatter_Tables(t *testing.T) {
	db := openExport(t, sciFi())

	assert.Equal(t, 3, count(t, db, `SELECT COUNT(*) FROM movies`))
	assert.Equal(t, 3, count(t, db, `SELECT COUNT(*) FROM popularity`))
	assert.Equal(t, 3, count(t, db, `SELECT COUNT(*) FROM revenue WHERE role = 'average'`))
	assert.Equal(t, 3, count(t, db, `SELECT COUNT(*) FROM ratings`))
	assert.Equal(t, 1, count(t, db, `SELECT count FROM popularity WHERE bin = ? AND genre = ?`, "2008-2010", "Sci-Fi"))

	var genres string
	require.NoError(t, db.QueryRow(`SELECT genres FROM movies WHERE title = 'Inception'`).Scan(&genres))
	assert.Equal(t, "Action,Sci-Fi", genres)

	var generated string
	require.NoError(t, db.QueryRow(`SELECT value FROM meta WHERE key = 'generated_at'`).Scan(&generated))
	assert.Equal(t, "2026-01-02T03:04:05Z", generated)
}

func TestSQLiteFormatter_NullGross(t *testing.T) {
	db := openExport(t, pipeline.Selection{})
	assert.Equal(t, 10, count(t, db, `SELECT COUNT(*) FROM movies`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM movies WHERE gross IS NULL`))
}

func TestSQLiteFormatter_SelectedSeries(t *testing.T) {
	db := openExport(t, pipeline.Selection{Movie: "Heat"})
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM revenue WHERE role = 'selected' AND series = 'Heat'`))
}

func TestSQLiteFormatter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite3")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))
	require.NoError(t, NewSQLiteFormatter().FormatFile(sampleExport(sciFi()), path))
}

func TestSQLiteFormatter_Stream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSQLiteFormatter().Format(sampleExport(sciFi()), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("SQLite format 3\x00")))
}
