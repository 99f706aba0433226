// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// ftsQuery turns keywords into an FTS5 expression matching any of them as a phrase.
func ftsQuery(keywords []string) string {
	var terms []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(kw, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " OR ")
}

// FindCourses returns courses matching q. Keyword queries are ordered by FTS
// relevance, others by course ID. Status is not filtered here.
func (s *Store) FindCourses(ctx context.Context, q types.CatalogQuery) ([]types.Course, error) {
	maxResults := q.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb    strings.Builder
		args  []any
		match = ftsQuery(q.Keywords)
	)
	if match != "" {
		qb.WriteString(`SELECT c.data FROM courses_fts
			JOIN courses c ON c.rowid = courses_fts.rowid
			WHERE courses_fts MATCH ?`)
		args = append(args, match)
	} else {
		qb.WriteString(`SELECT c.data FROM courses c WHERE 1=1`)
	}

	if q.Difficulty != "" {
		qb.WriteString(` AND c.difficulty = ?`)
		args = append(args, string(q.Difficulty))
	}
	if q.Language != "" {
		qb.WriteString(` AND lower(c.language) = lower(?)`)
		args = append(args, q.Language)
	}

	if match != "" {
		qb.WriteString(` ORDER BY courses_fts.rank, c.id`)
	} else {
		qb.WriteString(` ORDER BY c.id`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var out []types.Course
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		var c types.Course
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("decoding course: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CoursesByID returns the courses with the given IDs in the order requested.
// Unknown IDs are skipped.
func (s *Store) CoursesByID(ctx context.Context, ids []string) ([]types.Course, error) {
	var out []types.Course
	for _, id := range ids {
		var data string
		err := s.db.QueryRowContext(ctx, `SELECT data FROM courses WHERE id = ?`, id).Scan(&data)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("looking up course %s: %w", id, err)
		}
		var c types.Course
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("decoding course %s: %w", id, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ReviewsForCourse returns a course's reviews, oldest first.
func (s *Store) ReviewsForCourse(ctx context.Context, courseID string) ([]types.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM reviews WHERE course_id = ? ORDER BY review_date, id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	var out []types.Review
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		var r types.Review
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("decoding review: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SavePath stores p, replacing any path with the same ID.
func (s *Store) SavePath(ctx context.Context, p *types.LearningPath) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("learning path id is required")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding learning path: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO learning_paths (id, user_id, skill_goal, generated_at, data)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			user_id=excluded.user_id, skill_goal=excluded.skill_goal,
			generated_at=excluded.generated_at, data=excluded.data`,
		p.ID, p.UserID, p.SkillGoal, p.Metadata.GeneratedAt.UTC().Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		return fmt.Errorf("saving learning path %s: %w", p.ID, err)
	}
	return nil
}

// Path loads a stored learning path.
func (s *Store) Path(ctx context.Context, id string) (*types.LearningPath, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM learning_paths WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("learning path %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading learning path %s: %w", id, err)
	}
	var p types.LearningPath
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decoding learning path %s: %w", id, err)
	}
	return &p, nil
}
