// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the courses matching q, with their reviews, to
// dataDir/index/export.yaml in the catalog file layout, so the export can be
// ingested again. It returns the path written.
func (s *Store) ExportYAML(ctx context.Context, q types.CatalogQuery) (string, error) {
	f, err := s.exportFile(ctx, q)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dataDir, indexDir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the same content as ExportYAML to dataDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context, q types.CatalogQuery) (string, error) {
	f, err := s.exportFile(ctx, q)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dataDir, indexDir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportFile(ctx context.Context, q types.CatalogQuery) (*File, error) {
	q.MaxResults = exportLimit
	courses, err := s.FindCourses(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	f := &File{Courses: courses}
	for _, c := range courses {
		reviews, err := s.ReviewsForCourse(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("querying reviews for export: %w", err)
		}
		f.Reviews = append(f.Reviews, reviews...)
	}
	return f, nil
}
