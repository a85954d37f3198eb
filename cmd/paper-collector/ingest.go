// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-collector/internal/ingest"
	"github.com/pdiddy/paper-collector/internal/structure"
	"github.com/pdiddy/paper-collector/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file-or-url...]",
	Short: "Parse PDFs into structured paper records",
	Long: `Ingest extracts text from academic PDFs, segments it into typed
sections (abstract, introduction, methodology, ...), and writes a
structured YAML record to papers/metadata/. Sources may be local files
or URLs; URLs are downloaded into papers/raw/ first.

Metadata flags apply to every source in the invocation, so pass
--title and --authors only when ingesting a single paper.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := ingestConfig(cmd)
	meta := metadataFromFlags(cmd)

	client := &http.Client{Timeout: cfg.Timeout}
	ctx := context.Background()

	var failed int
	for _, source := range args {
		var (
			paper *types.Paper
			err   error
		)
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			paper, err = ingest.FromURL(ctx, client, source, meta, cfg, os.Stdout)
		} else {
			m := meta
			m.SourceFile = source
			paper, err = ingest.FromFile(source, m, os.Stdout)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", source, err)
			failed++
			continue
		}

		path, err := ingest.WriteMetadata(paper, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", source, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d source(s) failed ingestion", failed)
	}
	return nil
}

func ingestConfig(cmd *cobra.Command) types.IngestConfig {
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	return types.IngestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		PapersDir: papersDir,
	}
}

func metadataFromFlags(cmd *cobra.Command) structure.Metadata {
	title, _ := cmd.Flags().GetString("title")
	authors, _ := cmd.Flags().GetString("authors")
	doi, _ := cmd.Flags().GetString("doi")

	return structure.Metadata{
		Title:        title,
		AuthorString: authors,
		DOI:          doi,
	}
}

func init() {
	ingestCmd.Flags().String("title", "", "paper title (overrides PDF document info)")
	ingestCmd.Flags().String("authors", "", "author names separated by commas, semicolons, or \"and\"")
	ingestCmd.Flags().String("doi", "", "DOI to record on the paper")
	ingestCmd.Flags().String("papers-dir", "papers", "base directory for papers (contains raw/, metadata/)")
	ingestCmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout for URL sources")
	ingestCmd.Flags().String("user-agent", "paper-collector/0.1", "User-Agent header for URL sources")

	rootCmd.AddCommand(ingestCmd)
}
