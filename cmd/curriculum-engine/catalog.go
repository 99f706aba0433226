// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-engine/internal/catalog"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the course catalog (ingest, export)",
	Long: `Catalog manages the local SQLite course catalog built from YAML files
of courses and reviews. Use subcommands to index files or export the catalog.`,
}

// --- ingest subcommand ---

var catalogIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest course and review files into the catalog",
	Long: `Ingest reads YAML files from <data-dir>/catalog/, stores their courses and
reviews in a SQLite database with an FTS5 course index, and writes an export
file. Unchanged files are skipped on subsequent runs.`,
	RunE: runCatalogIngest,
}

func runCatalogIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	log.Info("catalog ingest finished",
		"files", summary.Total(), "courses", summary.Courses, "reviews", summary.Reviews)
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export [keywords...]",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or the courses matching the given keywords and
filters) with their reviews to <data-dir>/index/export.yaml or export.json.
The YAML export uses the ingest file layout.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	level, _ := cmd.Flags().GetString("level")
	language, _ := cmd.Flags().GetString("language")

	q := types.CatalogQuery{Keywords: args, Language: language}
	if level != "" {
		d, err := types.ParseDifficulty(level)
		if err != nil {
			return err
		}
		q.Difficulty = d
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), q)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), q)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

func init() {
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("level", "", "filter by difficulty: BEGINNER, INTERMEDIATE, ADVANCED, EXPERT")
	catalogExportCmd.Flags().String("language", "", "filter by course language")

	catalogCmd.AddCommand(catalogIngestCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
