// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-collector/internal/analysis"
	"github.com/pdiddy/paper-collector/internal/library"
	"github.com/pdiddy/paper-collector/internal/nlp"
	"github.com/pdiddy/paper-collector/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paper...]",
	Short: "Produce structured academic analyses of ingested papers",
	Long: `Analyze runs each paper through a tiered analysis chain: a remote
model when an API key is configured, local NLP heuristics, and finally
deterministic templates. A tier failure falls through to the next tier,
so analyze always produces a result; a degraded tier shows up as a lower
analysis_confidence in the output.

Papers are named by metadata slug (resolved against papers/metadata/)
or by a direct path to a paper YAML record. Analyses are written to
the analyses directory as YAML.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := analysisConfig(cmd)
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	store, _ := cmd.Flags().GetBool("store")

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	var proc *nlp.Processor
	if cfg.EnableNLP {
		proc = nlp.NewProcessor()
	}
	orch := analysis.NewOrchestrator(cfg, proc, logger)
	fmt.Fprintf(os.Stderr, "analysis tiers: %v\n", orch.Tiers())

	var libStore *library.Store
	if store {
		libraryDir, _ := cmd.Flags().GetString("library-dir")
		libStore, err = library.NewStore(types.LibraryConfig{LibraryDir: libraryDir})
		if err != nil {
			return err
		}
		defer libStore.Close()
	}

	ctx := context.Background()

	var failed int
	for _, arg := range args {
		slug, paper, err := loadPaper(papersDir, arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", arg, err)
			failed++
			continue
		}

		result, tier := orch.Analyze(ctx, paper)

		path, err := writeAnalysis(cfg.AnalysesDir, slug, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", arg, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "analyzed %s (tier: %s, confidence: %s)\nwrote %s\n",
			slug, tier, result.AnalysisConfidence, path)

		if libStore != nil {
			paperID, err := libStore.SavePaper(ctx, slug, paper)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed  %s: %v\n", arg, err)
				failed++
				continue
			}
			if _, err := libStore.SaveAnalysis(ctx, paperID, tier, result); err != nil {
				fmt.Fprintf(os.Stderr, "failed  %s: %v\n", arg, err)
				failed++
				continue
			}
			fmt.Fprintf(os.Stdout, "stored %s in library\n", slug)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d paper(s) failed analysis", failed)
	}
	return nil
}

// loadPaper resolves arg as a direct YAML path or a metadata slug under
// papersDir/metadata/ and parses the paper record.
func loadPaper(papersDir, arg string) (string, *types.Paper, error) {
	path := arg
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(papersDir, "metadata", arg+".yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading paper record: %w", err)
	}

	var paper types.Paper
	if err := yaml.Unmarshal(data, &paper); err != nil {
		return "", nil, fmt.Errorf("parsing paper record: %w", err)
	}

	slug := filepath.Base(path)
	slug = slug[:len(slug)-len(filepath.Ext(slug))]
	return slug, &paper, nil
}

func writeAnalysis(analysesDir, slug string, result *types.AcademicAnalysis) (string, error) {
	if err := os.MkdirAll(analysesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating analyses directory: %w", err)
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshaling analysis: %w", err)
	}

	path := filepath.Join(analysesDir, slug+"-analysis.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing analysis: %w", err)
	}
	return path, nil
}

func analysisConfig(cmd *cobra.Command) types.AnalysisConfig {
	model, _ := cmd.Flags().GetString("model")
	baseURL, _ := cmd.Flags().GetString("base-url")
	apiKey, _ := cmd.Flags().GetString("api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	enableNLP, _ := cmd.Flags().GetBool("nlp")
	analysesDir, _ := cmd.Flags().GetString("analyses-dir")

	apiKey = secretDefault("deepseek-api-key", apiKey)
	apiKey = secretDefault("openai-api-key", apiKey)

	return types.AnalysisConfig{
		AIConfig: types.AIConfig{
			Model:   model,
			BaseURL: baseURL,
			APIKey:  apiKey,
			Timeout: timeout,
		},
		EnableNLP:   enableNLP,
		AnalysesDir: analysesDir,
	}
}

func init() {
	analyzeCmd.Flags().String("model", "", "AI model identifier for remote analysis (default: deepseek-chat)")
	analyzeCmd.Flags().String("base-url", "https://api.deepseek.com", "OpenAI-compatible endpoint base URL")
	analyzeCmd.Flags().String("api-key", "", "API key for remote analysis (default: from .secrets/)")
	analyzeCmd.Flags().Duration("timeout", 120*time.Second, "remote analysis request timeout")
	analyzeCmd.Flags().Bool("nlp", true, "enable the local NLP analysis tier")
	analyzeCmd.Flags().String("papers-dir", "papers", "base directory for papers (contains metadata/)")
	analyzeCmd.Flags().String("analyses-dir", "analyses", "output directory for analysis YAML files")
	analyzeCmd.Flags().Bool("store", false, "also store the paper and analysis in the library")
	analyzeCmd.Flags().String("library-dir", "library", "base directory for the library (with --store)")

	rootCmd.AddCommand(analyzeCmd)
}
