// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis produces structured academic analyses of parsed
// papers. An Orchestrator runs an ordered chain of analysis strategies
// (remote model, local NLP, deterministic templates), falling through on
// failure. The template tier is dependency-free and always succeeds, so
// the orchestrator never surfaces an error: the only user-visible failure
// mode is a degraded analysis confidence.
package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-collector/internal/nlp"
	"github.com/pdiddy/paper-collector/pkg/types"
)

// Analyzer is the contract every tier implements. A tier either returns a
// complete analysis or an error that sends control to the next tier.
type Analyzer interface {
	// Name identifies the tier in logs.
	Name() string

	// Analyze produces a full AcademicAnalysis for the paper.
	Analyze(ctx context.Context, paper *types.Paper) (*types.AcademicAnalysis, error)
}

// Orchestrator executes the tier chain. Capability decisions are made at
// construction time: a missing API key excludes the remote tier and an
// unavailable NLP backend excludes the NLP tier, rather than attempting
// and failing per document.
type Orchestrator struct {
	tiers []Analyzer
	log   *zap.Logger
}

// NewOrchestrator assembles the tier chain from the configuration and the
// optional shared NLP processor. proc may be nil when the NLP backend
// failed to initialize; the chain then skips straight from the remote
// tier to templates. The template tier is always present.
func NewOrchestrator(cfg types.AnalysisConfig, proc *nlp.Processor, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}

	var tiers []Analyzer
	if cfg.APIKey != "" {
		tiers = append(tiers, NewRemoteAnalyzer(cfg.AIConfig))
	} else {
		log.Info("no API key configured, remote analysis tier disabled")
	}
	if cfg.EnableNLP && proc != nil {
		tiers = append(tiers, NewNLPAnalyzer(proc))
	}
	tiers = append(tiers, NewTemplateAnalyzer())

	return &Orchestrator{tiers: tiers, log: log}
}

// Tiers returns the names of the enabled tiers in execution order.
func (o *Orchestrator) Tiers() []string {
	names := make([]string, len(o.tiers))
	for i, t := range o.tiers {
		names[i] = t.Name()
	}
	return names
}

// Analyze runs the tiers in order and returns the first successful
// analysis along with the name of the tier that produced it. Tier
// failures are logged, never returned: the chain ends in the template
// tier, which cannot fail.
func (o *Orchestrator) Analyze(ctx context.Context, paper *types.Paper) (*types.AcademicAnalysis, string) {
	for _, tier := range o.tiers {
		result, err := tier.Analyze(ctx, paper)
		if err != nil {
			o.log.Warn("analysis tier failed, falling through",
				zap.String("tier", tier.Name()),
				zap.Error(err))
			continue
		}
		clampContributions(result)
		o.log.Info("analysis complete",
			zap.String("tier", tier.Name()),
			zap.String("confidence", string(result.AnalysisConfidence)))
		return result, tier.Name()
	}

	// Unreachable while the template tier is in the chain; kept so the
	// function is total.
	fallback := NewTemplateAnalyzer()
	result, _ := fallback.Analyze(ctx, paper)
	clampContributions(result)
	return result, fallback.Name()
}

// contributionFillers pad MainContributions up to the minimum when a tier
// finds fewer concrete contributions than the schema requires.
var contributionFillers = []string{
	"The paper presents its primary contribution in the abstract and conclusion.",
	"Additional contributions require deeper analysis of the full text.",
}

// clampContributions enforces the 2..5 bound on MainContributions for
// every tier's output, padding with fillers or truncating as needed.
func clampContributions(a *types.AcademicAnalysis) {
	for i := 0; len(a.MainContributions) < types.MinContributions; i++ {
		a.MainContributions = append(a.MainContributions, contributionFillers[i%len(contributionFillers)])
	}
	if len(a.MainContributions) > types.MaxContributions {
		a.MainContributions = a.MainContributions[:types.MaxContributions]
	}
}

// missingInformation lists metadata and sections absent from the paper.
func missingInformation(paper *types.Paper) []string {
	var missing []string
	if paper.Abstract == "" {
		missing = append(missing, "Abstract")
	}
	if paper.DOI == "" {
		missing = append(missing, "DOI")
	}
	if len(paper.Authors) == 0 {
		missing = append(missing, "Authors")
	}
	if paper.Date.IsZero() {
		missing = append(missing, "Publication date")
	}

	present := make(map[types.SectionType]bool, len(paper.Sections))
	for _, s := range paper.Sections {
		present[s.Type] = true
	}
	if !present[types.SectionMethodology] {
		missing = append(missing, "Methodology section")
	}
	if !present[types.SectionResults] {
		missing = append(missing, "Results section")
	}

	return missing
}
