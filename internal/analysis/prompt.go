// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// sectionCharBudget bounds each serialized section body so the prompt
// stays inside the completion service's context window.
const sectionCharBudget = 2000

// analysisSystemPrompt frames the completion request.
const analysisSystemPrompt = "You are an expert academic researcher analyzing scientific papers. " +
	"Provide detailed, accurate analysis in JSON format."

// analysisPromptTmpl instructs the model to return a single JSON object
// matching the AcademicAnalysis field contract. Any deviation (extra
// prose, missing required field, invalid JSON) fails the remote tier.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`Analyze the following scientific paper and provide a comprehensive academic analysis.

PAPER CONTENT:
{{.Content}}

Provide your analysis in JSON format with the following structure:
{
    "technical_summary": "A 2-3 paragraph formal academic summary of the problem and approach",
    "research_problem": {
        "problem_statement": "Clear statement of what problem is being solved",
        "domain_relevance": "Why this problem is important in its domain",
        "constraints": ["List of constraints or assumptions"]
    },
    "methodology": {
        "input_data": "Description of input data or datasets used",
        "techniques": ["List of algorithms, methods, or techniques used"],
        "pipeline": "Description of the processing pipeline",
        "evaluation": "How the approach is evaluated"
    },
    "main_contributions": [
        "Contribution 1: Specific, verifiable contribution",
        "Contribution 2: Another concrete contribution"
    ],
    "limitations": [
        "Limitation 1: Stated or implied limitation"
    ],
    "key_concepts": {
        "Concept 1": "Definition or explanation"
    },
    "thematic_tags": ["Tag1", "Tag2", "Tag3"],
    "sota_positioning": "How this work positions itself within the state of the art",
    "citation_summary": "A concise paragraph suitable for citing in a literature review",
    "analysis_confidence": "high/medium/low",
    "missing_information": ["List of information not found in the paper"]
}

Focus on:
1. Extracting concrete, verifiable contributions
2. Identifying actual methodologies and techniques used
3. Finding real limitations stated in the paper
4. Extracting key technical concepts with their definitions
5. Being precise and factual - don't invent information

Respond ONLY with the JSON object, no additional text.`))

// renderPrompt serializes the paper and executes the analysis template.
func renderPrompt(paper *types.Paper) (string, error) {
	var buf bytes.Buffer
	err := analysisPromptTmpl.Execute(&buf, struct{ Content string }{Content: serializePaper(paper)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// serializePaper renders the paper as labeled text blocks: title,
// abstract, then every non-reference section truncated to the per-section
// character budget.
func serializePaper(paper *types.Paper) string {
	var parts []string
	parts = append(parts, "TITLE: "+paper.Title)

	if paper.Abstract != "" {
		parts = append(parts, "\nABSTRACT:\n"+paper.Abstract)
	}

	for _, s := range paper.Sections {
		if s.Type == types.SectionReferences {
			continue
		}
		label := s.Title
		if label == "" {
			label = strings.ToUpper(string(s.Type))
		}
		content := s.Content
		if len(content) > sectionCharBudget {
			content = content[:sectionCharBudget]
		}
		parts = append(parts, "\n"+label+":\n"+content)
	}

	return strings.Join(parts, "\n")
}
