// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AnalysisConfidence grades how much trust to place in an analysis.
type AnalysisConfidence string

const (
	ConfidenceLow    AnalysisConfidence = "low"
	ConfidenceMedium AnalysisConfidence = "medium"
	ConfidenceHigh   AnalysisConfidence = "high"
)

// ResearchProblem describes what problem a paper addresses.
type ResearchProblem struct {
	// ProblemStatement states what problem is being solved.
	ProblemStatement string `json:"problem_statement" yaml:"problem_statement"`

	// DomainRelevance explains why the problem matters in its domain.
	DomainRelevance string `json:"domain_relevance" yaml:"domain_relevance"`

	// Constraints lists stated constraints or assumptions.
	Constraints []string `json:"constraints" yaml:"constraints"`
}

// Methodology describes how a paper attacks its problem.
type Methodology struct {
	// InputData describes the input data or signals used.
	InputData string `json:"input_data" yaml:"input_data"`

	// Techniques lists algorithms, models, or techniques used.
	Techniques []string `json:"techniques" yaml:"techniques"`

	// Pipeline describes the processing pipeline.
	Pipeline string `json:"pipeline" yaml:"pipeline"`

	// Evaluation describes how the approach is validated.
	Evaluation string `json:"evaluation" yaml:"evaluation"`
}

// MinContributions and MaxContributions bound
// AcademicAnalysis.MainContributions. Every tier pads or truncates to
// stay inside the range rather than returning a short or oversized list.
const (
	MinContributions = 2
	MaxContributions = 5
)

// AcademicAnalysis is the structured output of analyzing one paper. It is
// suitable for literature reviews, state-of-the-art sections, and research
// comparison, and is independently serializable for downstream consumers.
type AcademicAnalysis struct {
	// PaperTitle references the analyzed paper.
	PaperTitle string `json:"paper_title" yaml:"paper_title"`

	// PaperDOI is the paper's DOI, when known.
	PaperDOI string `json:"paper_doi,omitempty" yaml:"paper_doi,omitempty"`

	// TechnicalSummary is a short formal summary of problem and approach.
	TechnicalSummary string `json:"technical_summary" yaml:"technical_summary"`

	// ResearchProblem structures the problem being addressed.
	ResearchProblem ResearchProblem `json:"research_problem" yaml:"research_problem"`

	// Methodology structures the paper's approach.
	Methodology Methodology `json:"methodology" yaml:"methodology"`

	// MainContributions lists 2-5 concrete contributions.
	MainContributions []string `json:"main_contributions" yaml:"main_contributions"`

	// Limitations lists stated or implied limitations and assumptions.
	Limitations []string `json:"limitations" yaml:"limitations"`

	// KeyConcepts maps core technical concepts to definitions or context.
	KeyConcepts map[string]string `json:"key_concepts" yaml:"key_concepts"`

	// ThematicTags holds multi-label thematic classifications.
	ThematicTags []string `json:"thematic_tags" yaml:"thematic_tags"`

	// SotaPositioning places the work within the state of the art.
	SotaPositioning string `json:"sota_positioning" yaml:"sota_positioning"`

	// CitationSummary is a concise paragraph for literature-review use.
	CitationSummary string `json:"citation_summary" yaml:"citation_summary"`

	// AnalysisConfidence grades the analysis: low, medium, or high.
	AnalysisConfidence AnalysisConfidence `json:"analysis_confidence" yaml:"analysis_confidence"`

	// MissingInformation lists information not found in the paper.
	MissingInformation []string `json:"missing_information" yaml:"missing_information"`
}
