// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// File is the layout of a catalog YAML file.
type File struct {
	Courses []types.Course `json:"courses" yaml:"courses"`
	Reviews []types.Review `json:"reviews,omitempty" yaml:"reviews,omitempty"`
}

// IngestSummary holds counts from a catalog ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int

	Courses int
	Reviews int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed to ingest.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest reads catalog YAML files from dataDir/catalog/ into the database.
// Files whose modification time is unchanged since the last run are skipped;
// changed files replace every course and review they previously contributed.
// On any change export.yaml is rewritten.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	dir := filepath.Join(s.dataDir, catalogDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	var summary IngestSummary
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE file = ?`, name,
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		file, err := readFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, name, file, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		summary.Courses += len(file.Courses)
		summary.Reviews += len(file.Reviews)
		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d courses, %d reviews)\n", name, len(file.Courses), len(file.Reviews))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d courses, %d reviews)\n", name, len(file.Courses), len(file.Reviews))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if _, err := s.ExportYAML(ctx, types.CatalogQuery{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}
	return summary, nil
}

// readFile parses and validates one catalog file. Courses without a status
// are treated as ACTIVE. Reviews without an ID get one derived from the file
// name and position, so re-ingesting the same file keeps the same IDs.
func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	for i := range f.Courses {
		c := &f.Courses[i]
		if c.ID == "" || c.Title == "" {
			return nil, fmt.Errorf("course %d: id and title are required", i)
		}
		if c.Status == "" {
			c.Status = types.StatusActive
		}
		if !c.Status.Valid() {
			return nil, fmt.Errorf("course %s: unknown status %q", c.ID, c.Status)
		}
		if c.Difficulty != "" && !c.Difficulty.Valid() {
			return nil, fmt.Errorf("course %s: unknown difficulty %q", c.ID, c.Difficulty)
		}
		if c.Pricing.Price < 0 {
			return nil, fmt.Errorf("course %s: negative price", c.ID)
		}
	}

	base := filepath.Base(path)
	for i := range f.Reviews {
		r := &f.Reviews[i]
		if r.CourseID == "" {
			return nil, fmt.Errorf("review %d: course_id is required", i)
		}
		if r.Rating < 1 || r.Rating > 5 {
			return nil, fmt.Errorf("review %d: rating %d outside 1-5", i, r.Rating)
		}
		if r.ID == "" {
			r.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(base+"#"+strconv.Itoa(i))).String()
		}
	}
	return &f, nil
}

func (s *Store) ingestFile(ctx context.Context, name string, f *File, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE source_file = ?`, name); err != nil {
		return fmt.Errorf("deleting old courses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE source_file = ?`, name); err != nil {
		return fmt.Errorf("deleting old reviews: %w", err)
	}

	for _, c := range f.Courses {
		if err := upsertCourse(ctx, tx, c, name); err != nil {
			return err
		}
	}
	for _, r := range f.Reviews {
		if err := upsertReview(ctx, tx, r, name); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		name, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}
	return tx.Commit()
}
