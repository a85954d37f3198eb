// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-collector/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// IngestConfig holds settings for the ingestion stage.
type IngestConfig struct {
	HTTPConfig `yaml:",inline"`

	// PapersDir is the base directory for papers (contains raw/, metadata/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "deepseek-chat").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the OpenAI-compatible endpoint base URL. Empty selects
	// the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout bounds a single analysis request (default 120s). On timeout
	// the remote tier is abandoned, never blocked on.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// AnalysisConfig holds settings for the analysis stage.
type AnalysisConfig struct {
	AIConfig `yaml:",inline"`

	// EnableNLP controls whether the local NLP tier is available.
	// Computed once at startup and threaded through constructors.
	EnableNLP bool `json:"enable_nlp" yaml:"enable_nlp"`

	// AnalysesDir is the output directory for analysis artifacts.
	AnalysesDir string `json:"analyses_dir" yaml:"analyses_dir"`
}

// LibraryConfig holds settings for the paper library.
type LibraryConfig struct {
	// LibraryDir is the base directory for the library (contains index/).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Ingest   IngestConfig   `json:"ingest" yaml:"ingest"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Library  LibraryConfig  `json:"library" yaml:"library"`
}
