// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// placeholder fills fields that only a deeper tier can populate.
const placeholder = "Requires deeper analysis of the full text."

// TemplateAnalyzer is the final tier: deterministic, dependency-free
// heuristics over the structured paper. It consults no external service
// and no linguistic backend, so it always succeeds. Analysis confidence
// is forced to low.
type TemplateAnalyzer struct{}

// NewTemplateAnalyzer returns a TemplateAnalyzer.
func NewTemplateAnalyzer() *TemplateAnalyzer {
	return &TemplateAnalyzer{}
}

// Name identifies the tier in logs.
func (t *TemplateAnalyzer) Name() string { return "template" }

// Analyze populates the analysis schema from fixed rules: the problem
// statement is the first abstract sentence, thematic tags come from the
// keyword lexicon, and fields needing semantic understanding carry a
// placeholder. The error return is always nil.
func (t *TemplateAnalyzer) Analyze(_ context.Context, paper *types.Paper) (*types.AcademicAnalysis, error) {
	methodology := paper.SectionContent(types.SectionMethodology)
	conclusion := paper.SectionContent(types.SectionConclusion)

	analysis := &types.AcademicAnalysis{
		PaperTitle: paper.Title,
		PaperDOI:   paper.DOI,

		TechnicalSummary: fmt.Sprintf(
			"This paper, titled %q, addresses a research problem in its domain. "+
				"The proposed approach is described in the abstract and introduction sections. %s",
			paper.Title, placeholder),

		ResearchProblem: types.ResearchProblem{
			ProblemStatement: templateProblemStatement(paper.Abstract),
			DomainRelevance:  placeholder,
			Constraints:      templateConstraints(methodology),
		},

		Methodology: types.Methodology{
			InputData:  templateSectionField(methodology),
			Techniques: []string{templateSectionField(methodology)},
			Pipeline:   templateSectionField(methodology),
			Evaluation: templateSectionField(methodology),
		},

		MainContributions: []string{
			"The paper presents its primary contribution in the abstract and conclusion.",
			placeholder,
		},

		Limitations: templateLimitations(conclusion),

		KeyConcepts: map[string]string{},

		ThematicTags: classifyThematic(paper.Title, paper.Abstract),

		SotaPositioning: placeholder,

		CitationSummary: fmt.Sprintf(
			"The work titled %q presents a research contribution in its domain. "+
				"The approach and results are described in the paper.", paper.Title),

		AnalysisConfidence: types.ConfidenceLow,
		MissingInformation: missingInformation(paper),
	}

	return analysis, nil
}

// templateProblemStatement takes the first sentence of the abstract as
// the problem statement; papers commonly open with it.
func templateProblemStatement(abstract string) string {
	if abstract == "" {
		return "Problem statement not explicitly identified in abstract."
	}
	if i := strings.Index(abstract, ". "); i >= 0 {
		return abstract[:i+1]
	}
	return abstract
}

func templateConstraints(methodology string) []string {
	if methodology == "" {
		return []string{"Methodology section not found"}
	}
	return nil
}

func templateLimitations(conclusion string) []string {
	if conclusion == "" {
		return []string{"Conclusion section not found"}
	}
	return nil
}

// templateSectionField distinguishes a missing section from one whose
// content needs deeper analysis.
func templateSectionField(section string) string {
	if section == "" {
		return "Not explicitly specified in the paper."
	}
	return placeholder
}
