// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/pdiddy/paper-collector/pkg/types"
)

const (
	defaultModel   = "deepseek-chat"
	defaultTimeout = 120 * time.Second

	// Lower temperature keeps the analysis focused and factual.
	analysisTemperature = 0.3
	analysisMaxTokens   = 4000
)

// RemoteAnalyzer is the first tier: it sends the serialized paper to an
// OpenAI-compatible chat-completions endpoint and parses the JSON
// response into an AcademicAnalysis. A single attempt only: transport
// errors, malformed JSON, or a missing required field abandon the tier so
// control falls to local analysis.
type RemoteAnalyzer struct {
	client openai.Client
	model  string
}

// NewRemoteAnalyzer builds the completion client. The base URL selects
// the provider (the default points at the OpenAI API; DeepSeek and
// compatible services work by overriding it). Requests are bounded by the
// configured timeout and never retried.
func NewRemoteAnalyzer(cfg types.AIConfig) *RemoteAnalyzer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &RemoteAnalyzer{client: openai.NewClient(opts...), model: model}
}

// Name identifies the tier in logs.
func (r *RemoteAnalyzer) Name() string { return "remote" }

// Analyze serializes the paper into the analysis prompt, requests a JSON
// object response, and validates the parsed analysis against the field
// contract.
func (r *RemoteAnalyzer) Analyze(ctx context.Context, paper *types.Paper) (*types.AcademicAnalysis, error) {
	prompt, err := renderPrompt(paper)
	if err != nil {
		return nil, fmt.Errorf("rendering analysis prompt: %w", err)
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(r.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(analysisSystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(analysisTemperature),
		MaxTokens:   openai.Int(analysisMaxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("calling completion API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("completion API returned no choices")
	}

	var analysis types.AcademicAnalysis
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("parsing analysis JSON: %w", err)
	}
	if err := validateAnalysis(&analysis); err != nil {
		return nil, fmt.Errorf("incomplete analysis response: %w", err)
	}

	analysis.PaperTitle = paper.Title
	analysis.PaperDOI = paper.DOI
	if analysis.MissingInformation == nil {
		analysis.MissingInformation = missingInformation(paper)
	}
	return &analysis, nil
}

// validateAnalysis checks the required fields of the response contract.
// A response missing any of them fails the remote tier.
func validateAnalysis(a *types.AcademicAnalysis) error {
	switch {
	case a.TechnicalSummary == "":
		return errors.New("missing technical_summary")
	case a.ResearchProblem.ProblemStatement == "":
		return errors.New("missing research_problem.problem_statement")
	case len(a.MainContributions) == 0:
		return errors.New("missing main_contributions")
	case a.CitationSummary == "":
		return errors.New("missing citation_summary")
	}

	switch a.AnalysisConfidence {
	case types.ConfidenceLow, types.ConfidenceMedium, types.ConfidenceHigh:
	case "":
		a.AnalysisConfidence = types.ConfidenceMedium
	default:
		return fmt.Errorf("invalid analysis_confidence %q", a.AnalysisConfidence)
	}

	return nil
}
