// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, catalogDir), 0o755); err != nil {
		t.Fatal(err)
	}
	store, err := NewStore(types.CatalogConfig{DataDir: tmpDir, MaxResults: 50})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, tmpDir
}

func writeCatalog(t *testing.T, tmpDir, name string, f File) string {
	t.Helper()
	data, err := yaml.Marshal(&f)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, catalogDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleFile() File {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return File{
		Courses: []types.Course{
			{
				ID: "go-101", Title: "Introduction to Go", Platform: "YouTube", Category: "programming",
				Tags: []string{"go", "syntax"}, Difficulty: types.DifficultyBeginner, Language: "English",
				Pricing: types.Pricing{IsFree: true}, TotalDuration: 120,
			},
			{
				ID: "go-201", Title: "Go Concurrency in Depth", Platform: "Udemy", Category: "programming",
				Tags: []string{"go", "concurrency"}, Difficulty: types.DifficultyIntermediate, Language: "English",
				Pricing: types.Pricing{Price: 19.99}, AverageRating: 4.6, TotalReviews: 2,
				Modules: []types.Module{{Title: "m", Lessons: []types.Lesson{{Title: "l", Duration: 10, QualityScore: 0.9}}}},
			},
			{
				ID: "k8s-301", Title: "Advanced Kubernetes Mastery", Platform: "Pluralsight", Category: "devops",
				Tags: []string{"kubernetes"}, Difficulty: types.DifficultyAdvanced, Language: "english",
				Pricing: types.Pricing{Price: 49}, Status: types.StatusDeprecated,
			},
		},
		Reviews: []types.Review{
			{ID: "r2", CourseID: "go-201", UserID: "u2", Rating: 4, Text: "Clear and useful", ReviewDate: day.AddDate(0, 0, 1)},
			{CourseID: "go-201", UserID: "u1", Rating: 5, Text: "Great course", ReviewDate: day},
		},
	}
}

// --- tests ---

func TestIngestAndFind(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeCatalog(t, tmpDir, "sample.yaml", sampleFile())
	ctx := context.Background()

	var buf bytes.Buffer
	summary, err := store.Ingest(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)
	assert.Equal(t, 3, summary.Courses)
	assert.Equal(t, 2, summary.Reviews)
	assert.False(t, summary.HasFailures())
	assert.Contains(t, buf.String(), "indexing sample.yaml (3 courses, 2 reviews)")

	all, err := store.FindCourses(ctx, types.CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "go-101", all[0].ID)
	assert.Equal(t, types.StatusActive, all[0].Status, "missing status defaults to ACTIVE")
	assert.Equal(t, types.StatusDeprecated, all[2].Status)
	assert.Equal(t, 0.9, all[1].Modules[0].Lessons[0].QualityScore)

	goCourses, err := store.FindCourses(ctx, types.CatalogQuery{Keywords: []string{"go"}})
	require.NoError(t, err)
	assert.Len(t, goCourses, 2)

	beginner, err := store.FindCourses(ctx, types.CatalogQuery{Keywords: []string{"go"}, Difficulty: types.DifficultyBeginner})
	require.NoError(t, err)
	require.Len(t, beginner, 1)
	assert.Equal(t, "go-101", beginner[0].ID)

	k8s, err := store.FindCourses(ctx, types.CatalogQuery{Keywords: []string{"", "Kubernetes", "rust"}, Language: "ENGLISH"})
	require.NoError(t, err)
	require.Len(t, k8s, 1)
	assert.Equal(t, "k8s-301", k8s[0].ID)

	limited, err := store.FindCourses(ctx, types.CatalogQuery{MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFindCoursesPhraseAndQuotes(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeCatalog(t, tmpDir, "sample.yaml", sampleFile())
	ctx := context.Background()
	_, err := store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)

	got, err := store.FindCourses(ctx, types.CatalogQuery{Keywords: []string{`go "concurrency"`}})
	require.NoError(t, err, "embedded quotes are escaped")
	require.Len(t, got, 1)
	assert.Equal(t, "go-201", got[0].ID)

	got, err = store.FindCourses(ctx, types.CatalogQuery{Keywords: []string{"concurrency go"}})
	require.NoError(t, err)
	assert.Empty(t, got, "phrase must match adjacent tokens in order")
}

func TestIngestSkipsUnchangedAndUpdatesChanged(t *testing.T) {
	store, tmpDir := testSetup(t)
	path := writeCatalog(t, tmpDir, "sample.yaml", sampleFile())
	ctx := context.Background()

	_, err := store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)

	summary, err := store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)

	f := sampleFile()
	f.Courses = f.Courses[:1]
	f.Reviews = nil
	writeCatalog(t, tmpDir, "sample.yaml", f)
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	summary, err = store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	all, err := store.FindCourses(ctx, types.CatalogQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "courses dropped from the file are removed")

	reviews, err := store.ReviewsForCourse(ctx, "go-201")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestIngestInvalidFiles(t *testing.T) {
	store, tmpDir := testSetup(t)
	dir := filepath.Join(tmpDir, catalogDir)
	files := map[string]string{
		"broken.yaml":     "courses: [unclosed",
		"no-id.yaml":      "courses:\n  - title: Untitled\n",
		"bad-rating.yaml": "reviews:\n  - course_id: x\n    rating: 9\n",
		"bad-status.yml":  "courses:\n  - id: a\n    title: A\n    status: RETIRED\n",
		"notes.txt":       "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	var buf bytes.Buffer
	summary, err := store.Ingest(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Failed)
	assert.Equal(t, 4, summary.Total())
	assert.True(t, summary.HasFailures())
	assert.Equal(t, 4, strings.Count(buf.String(), "failed  "))
}

func TestIngestMissingDirectory(t *testing.T) {
	store, err := NewStore(types.CatalogConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()
	_, err = store.Ingest(context.Background(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestReviewsForCourse(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeCatalog(t, tmpDir, "sample.yaml", sampleFile())
	ctx := context.Background()
	_, err := store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)

	reviews, err := store.ReviewsForCourse(ctx, "go-201")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "u1", reviews[0].UserID, "oldest review first")
	assert.Regexp(t, `^[0-9a-f-]{36}$`, reviews[0].ID)
	assert.Equal(t, "r2", reviews[1].ID)

	firstID := reviews[0].ID
	path := filepath.Join(tmpDir, catalogDir, "sample.yaml")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
	_, err = store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)

	reviews, err = store.ReviewsForCourse(ctx, "go-201")
	require.NoError(t, err)
	assert.Equal(t, firstID, reviews[0].ID, "generated IDs are stable across ingests")
}

func TestCoursesByID(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeCatalog(t, tmpDir, "sample.yaml", sampleFile())
	ctx := context.Background()
	_, err := store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)

	got, err := store.CoursesByID(ctx, []string{"k8s-301", "missing", "go-101"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "k8s-301", got[0].ID)
	assert.Equal(t, "go-101", got[1].ID)
}

func TestSavePath(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	p := &types.LearningPath{
		ID:        "path-1",
		UserID:    "u1",
		SkillGoal: "Go",
		Steps:     []types.LearningPathStep{{StepNumber: 1, Title: "Foundation", CourseIDs: []string{"go-101"}}},
		Metadata:  types.GenerationMetadata{GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, store.SavePath(ctx, p))

	p.Title = "renamed"
	require.NoError(t, store.SavePath(ctx, p))

	got, err := store.Path(ctx, "path-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, p.Steps, got.Steps)

	_, err = store.Path(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, store.SavePath(ctx, &types.LearningPath{}))
}

func TestExport(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeCatalog(t, tmpDir, "sample.yaml", sampleFile())
	ctx := context.Background()
	_, err := store.Ingest(ctx, &bytes.Buffer{})
	require.NoError(t, err)

	yamlPath := filepath.Join(tmpDir, indexDir, "export.yaml")
	_, err = os.Stat(yamlPath)
	require.NoError(t, err, "ingest writes export.yaml")

	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var f File
	require.NoError(t, yaml.Unmarshal(data, &f))
	assert.Len(t, f.Courses, 3)
	assert.Len(t, f.Reviews, 2)

	jsonPath, err := store.ExportJSON(ctx, types.CatalogQuery{Keywords: []string{"kubernetes"}})
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"k8s-301"`)
	assert.NotContains(t, string(data), `"go-101"`)
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"go" OR "go basics"`, ftsQuery([]string{"go", " ", "go basics "}))
	assert.Equal(t, `"say ""hi"""`, ftsQuery([]string{`say "hi"`}))
	assert.Empty(t, ftsQuery(nil))
}
