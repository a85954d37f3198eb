// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-collector/internal/library"
	"github.com/pdiddy/paper-collector/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the paper library (store, list, show, export)",
	Long: `Library manages a local SQLite index of ingested papers and their
analyses. Use subcommands to index paper records, list or search them,
inspect a single paper, or export the library.`,
}

// --- store subcommand ---

var libraryStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Index ingested paper records into the library",
	Long: `Store reads paper YAML records from papers/metadata/, indexes them
into a SQLite database with FTS5 search over titles and abstracts, and
writes an export file. Unchanged records are skipped on subsequent runs.`,
	RunE: runLibraryStore,
}

func runLibraryStore(cmd *cobra.Command, args []string) error {
	store, papersDir, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(context.Background(), papersDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List or search papers in the library",
	Long: `List shows library papers, newest first. An optional query argument
runs FTS5 full-text search over titles and abstracts; --tag filters by
thematic tag from stored analyses.`,
	RunE: runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, _, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd, args)
	results, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(results, jsonOutput)
}

func formatListOutput(results []library.PaperSummary, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-50s  %-8s  %-8s  %s\n",
		"Slug", "Title", "Sections", "Analyses", "Ingested")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		slug := r.Slug
		if len(slug) > 30 {
			slug = slug[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-50s  %-8d  %-8d  %s\n",
			slug, title, r.SectionCount, r.AnalysisCount, r.IngestedAt)
	}

	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(results))
	return nil
}

// --- show subcommand ---

var libraryShowCmd = &cobra.Command{
	Use:   "show <slug-or-id>",
	Short: "Show a paper record with its stored analyses",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	store, _, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Show(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library to YAML or JSON",
	Long: `Export writes the full library (or a filtered subset) to
library/index/export.yaml or export.json. Supports the same filter
flags as list for partial exports.`,
	RunE: runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, _, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to library/index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to library/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openLibrary(cmd *cobra.Command) (*library.Store, string, error) {
	libraryDir, _ := cmd.Flags().GetString("library-dir")
	if libraryDir == "" {
		libraryDir = "library"
	}
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	if papersDir == "" {
		papersDir = "papers"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	store, err := library.NewStore(types.LibraryConfig{
		LibraryDir: libraryDir,
		MaxResults: maxResults,
	})
	return store, papersDir, err
}

func listOptsFromFlags(cmd *cobra.Command, args []string) library.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	tag, _ := cmd.Flags().GetString("tag")
	limit, _ := cmd.Flags().GetInt("limit")

	return library.QueryOptions{
		Query:      queryText,
		Tag:        tag,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	libraryCmd.PersistentFlags().String("library-dir", "library", "base directory for the library (contains index/)")
	libraryCmd.PersistentFlags().String("papers-dir", "papers", "base directory for papers (contains metadata/)")
	libraryCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// List flags.
	libraryListCmd.Flags().String("query", "", "full-text search query over titles and abstracts")
	libraryListCmd.Flags().String("tag", "", "filter by thematic tag")
	libraryListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	libraryListCmd.Flags().Bool("json", false, "output results as JSON")

	// Show flags.
	libraryShowCmd.Flags().Bool("json", false, "output the record as JSON")

	// Export flags.
	libraryExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	libraryExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	libraryExportCmd.Flags().String("tag", "", "filter by thematic tag for partial export")
	libraryExportCmd.Flags().Int("limit", 0, "maximum papers to export (0 = all)")

	// Wire subcommands.
	libraryCmd.AddCommand(libraryStoreCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryExportCmd)

	rootCmd.AddCommand(libraryCmd)
}
