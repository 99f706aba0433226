// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists courses, reviews and generated learning paths in
// SQLite and answers keyword queries through an FTS5 index.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

const (
	catalogDir = "catalog"
	indexDir   = "index"
	dbFile     = "curriculum.db"

	defaultMaxResults = 200
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the database at dataDir/index/curriculum.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dataDir: cfg.DataDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS courses (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			platform TEXT,
			category TEXT,
			difficulty TEXT,
			status TEXT,
			language TEXT,
			is_free INTEGER,
			price REAL,
			average_rating REAL,
			search_text TEXT,
			data TEXT NOT NULL,
			source_file TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_difficulty ON courses(difficulty)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_source ON courses(source_file)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			course_id TEXT NOT NULL,
			user_id TEXT,
			rating INTEGER,
			review_date TEXT,
			data TEXT NOT NULL,
			source_file TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_course_id ON reviews(course_id)`,
		`CREATE TABLE IF NOT EXISTS learning_paths (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			skill_goal TEXT,
			generated_at TEXT,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table kept in sync by triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='courses_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE courses_fts USING fts5(search_text, content=courses, content_rowid=rowid)`,
			`CREATE TRIGGER courses_ai AFTER INSERT ON courses BEGIN
				INSERT INTO courses_fts(rowid, search_text) VALUES (new.rowid, new.search_text);
			END`,
			`CREATE TRIGGER courses_ad AFTER DELETE ON courses BEGIN
				INSERT INTO courses_fts(courses_fts, rowid, search_text) VALUES('delete', old.rowid, old.search_text);
			END`,
			`CREATE TRIGGER courses_au AFTER UPDATE ON courses BEGIN
				INSERT INTO courses_fts(courses_fts, rowid, search_text) VALUES('delete', old.rowid, old.search_text);
				INSERT INTO courses_fts(rowid, search_text) VALUES (new.rowid, new.search_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// searchText is the text indexed for keyword matching.
func searchText(c types.Course) string {
	parts := append([]string{c.Title, c.Category}, c.Tags...)
	return strings.Join(parts, " ")
}

// upsertCourse inserts or replaces a course row inside tx.
func upsertCourse(ctx context.Context, tx *sql.Tx, c types.Course, source string) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding course %s: %w", c.ID, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO courses (id, title, platform, category, difficulty, status, language,
			is_free, price, average_rating, search_text, data, source_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, platform=excluded.platform, category=excluded.category,
			difficulty=excluded.difficulty, status=excluded.status, language=excluded.language,
			is_free=excluded.is_free, price=excluded.price, average_rating=excluded.average_rating,
			search_text=excluded.search_text, data=excluded.data, source_file=excluded.source_file`,
		c.ID, c.Title, c.Platform, c.Category, string(c.Difficulty), string(c.Status), c.Language,
		c.Pricing.IsFree, c.Pricing.Price, c.AverageRating, searchText(c), string(data), source,
	)
	if err != nil {
		return fmt.Errorf("upserting course %s: %w", c.ID, err)
	}
	return nil
}

func upsertReview(ctx context.Context, tx *sql.Tx, r types.Review, source string) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding review %s: %w", r.ID, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO reviews (id, course_id, user_id, rating, review_date, data, source_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			course_id=excluded.course_id, user_id=excluded.user_id, rating=excluded.rating,
			review_date=excluded.review_date, data=excluded.data, source_file=excluded.source_file`,
		r.ID, r.CourseID, r.UserID, r.Rating, r.ReviewDate.UTC().Format(time.RFC3339), string(data), source,
	)
	if err != nil {
		return fmt.Errorf("upserting review %s: %w", r.ID, err)
	}
	return nil
}
