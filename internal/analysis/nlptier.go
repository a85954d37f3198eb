// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-collector/internal/nlp"
	"github.com/pdiddy/paper-collector/pkg/types"
)

// Keyword tables for per-field extraction rules. Each is data: extend or
// localize without touching the mapping logic.
var (
	importanceKeywords = []string{
		"important", "critical", "essential", "significant", "crucial",
		"key", "vital", "fundamental",
	}
	dataKeywords = []string{
		"dataset", "data", "corpus", "samples", "recordings", "signals",
	}
	evaluationKeywords = []string{
		"evaluat", "compared", "baseline", "benchmark", "measured",
		"validation", "test set",
	}
	claimIndicators = []string{
		"we propose", "we present", "we introduce", "we develop",
		"we show", "we demonstrate", "we achieve", "our approach",
		"our method", "our main contribution",
	}
	limitationKeywords = []string{
		"limitation", "limited", "constraint", "drawback", "shortcoming",
	}
	assumptionKeywords = []string{
		"assume", "assuming", "assumption", "restricted to", "limited to",
	}
	priorWorkKeywords = []string{
		"previous", "prior", "existing", "state of the art", "state-of-the-art",
	}
)

const (
	maxTechniques   = 5
	maxLimitations  = 5
	maxConstraints  = 3
	maxKeyConcepts  = 10
	conceptsPerType = 2
)

// notSpecified marks fields whose evidence was absent from the paper.
const notSpecified = "Not explicitly specified in the paper."

// NLPAnalyzer is the second tier: it runs the local NLP pipeline
// (discourse segmentation, entity extraction, key-phrase extraction) over
// the paper's abstract, introduction, methodology, and conclusion, then
// fills each analysis field through a fixed extraction rule.
type NLPAnalyzer struct {
	proc *nlp.Processor
}

// NewNLPAnalyzer wraps the shared NLP processor. The processor is
// read-only; one analyzer may serve concurrent documents.
func NewNLPAnalyzer(proc *nlp.Processor) *NLPAnalyzer {
	return &NLPAnalyzer{proc: proc}
}

// Name identifies the tier in logs.
func (n *NLPAnalyzer) Name() string { return "nlp" }

// Analyze runs the NLP pipeline and maps its output onto the analysis
// schema. It fails only when the backend is missing, sending control to
// the template tier.
func (n *NLPAnalyzer) Analyze(_ context.Context, paper *types.Paper) (*types.AcademicAnalysis, error) {
	if n.proc == nil {
		return nil, errors.New("nlp backend not initialized")
	}

	blocks := []struct {
		hint string
		text string
	}{
		{"abstract", paper.Abstract},
		{"introduction", paper.SectionContent(types.SectionIntroduction)},
		{"methodology", paper.SectionContent(types.SectionMethodology)},
		{"conclusion", paper.SectionContent(types.SectionConclusion)},
	}

	var sentences []types.AnnotatedSentence
	var entities []types.ScientificEntity
	var joined []string
	for _, b := range blocks {
		if b.text == "" {
			continue
		}
		joined = append(joined, b.text)
		sentences = append(sentences, n.proc.Discourse.Segment(b.text, b.hint)...)
		entities = append(entities, n.proc.Entities.Extract(b.text)...)
	}
	// Papers with no recognized structure still get the full text.
	if len(joined) == 0 {
		full := allContent(paper)
		joined = append(joined, full)
		sentences = n.proc.Discourse.Segment(full, "")
		entities = n.proc.Entities.Extract(full)
	}
	entities = nlp.DedupeEntities(entities)
	phrases := n.proc.KeyPhrases.Extract(strings.Join(joined, "\n\n"), nlp.DefaultMaxPhrases)

	problem := n.problemStatement(sentences, paper.Abstract)
	techniques := entityTexts(entities, types.EntityMethod, maxTechniques)
	contributions := extractContributions(sentences)

	analysis := &types.AcademicAnalysis{
		PaperTitle: paper.Title,
		PaperDOI:   paper.DOI,

		TechnicalSummary: technicalSummary(paper.Title, problem, techniques),

		ResearchProblem: types.ResearchProblem{
			ProblemStatement: problem,
			DomainRelevance:  domainRelevance(sentences),
			Constraints:      sentencesContaining(sentences, assumptionKeywords, maxConstraints),
		},

		Methodology: types.Methodology{
			InputData:  inputData(entities, sentences),
			Techniques: orNotSpecified(techniques),
			Pipeline:   pipelineDescription(sentences),
			Evaluation: evaluationDescription(entities, sentences),
		},

		MainContributions: contributions,
		Limitations:       extractLimitations(sentences),
		KeyConcepts:       keyConcepts(entities, phrases),
		ThematicTags:      classifyThematic(paper.Title, paper.Abstract),

		SotaPositioning: sotaPositioning(sentences),
		CitationSummary: citationSummary(paper.Title, problem, contributions),

		AnalysisConfidence: types.ConfidenceMedium,
		MissingInformation: missingInformation(paper),
	}

	return analysis, nil
}

// allContent concatenates every section body in document order.
func allContent(paper *types.Paper) string {
	parts := make([]string, 0, len(paper.Sections))
	for _, s := range paper.Sections {
		if s.Content != "" {
			parts = append(parts, s.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// problemStatement picks the first objective-tagged sentence, falling
// back to the first sentence of the abstract.
func (n *NLPAnalyzer) problemStatement(sentences []types.AnnotatedSentence, abstract string) string {
	for _, s := range sentences {
		if s.Function == types.FunctionObjective {
			return s.Text
		}
	}
	if sents := nlp.SplitSentences(abstract); len(sents) > 0 {
		return sents[0].Text
	}
	return "Problem statement not explicitly identified in abstract."
}

// domainRelevance picks the first background sentence carrying an
// importance-indicating word.
func domainRelevance(sentences []types.AnnotatedSentence) string {
	for _, s := range sentences {
		if s.Function != types.FunctionBackground {
			continue
		}
		if containsAny(s.Text, importanceKeywords) {
			return s.Text
		}
	}
	return "Domain relevance not explicitly stated in the paper."
}

// inputData joins material-type entities, falling back to the first
// sentence mentioning a data keyword.
func inputData(entities []types.ScientificEntity, sentences []types.AnnotatedSentence) string {
	if materials := entityTexts(entities, types.EntityMaterial, 0); len(materials) > 0 {
		return strings.Join(materials, ", ")
	}
	if found := sentencesContaining(sentences, dataKeywords, 1); len(found) > 0 {
		return found[0]
	}
	return notSpecified
}

// pipelineDescription picks the first method-tagged sentence.
func pipelineDescription(sentences []types.AnnotatedSentence) string {
	for _, s := range sentences {
		if s.Function == types.FunctionMethod {
			return s.Text
		}
	}
	return notSpecified
}

// evaluationDescription joins metric-type entities, falling back to the
// first sentence mentioning an evaluation keyword.
func evaluationDescription(entities []types.ScientificEntity, sentences []types.AnnotatedSentence) string {
	if metrics := entityTexts(entities, types.EntityMetric, 0); len(metrics) > 0 {
		return strings.Join(metrics, ", ")
	}
	if found := sentencesContaining(sentences, evaluationKeywords, 1); len(found) > 0 {
		return found[0]
	}
	return notSpecified
}

// extractContributions collects result- or conclusion-tagged sentences
// carrying a first-person claim indicator, capped at the schema maximum.
// Padding to the minimum is the orchestrator's clamp.
func extractContributions(sentences []types.AnnotatedSentence) []string {
	var out []string
	for _, s := range sentences {
		if s.Function != types.FunctionResult && s.Function != types.FunctionConclusion {
			continue
		}
		if !containsAny(s.Text, claimIndicators) {
			continue
		}
		out = append(out, s.Text)
		if len(out) == types.MaxContributions {
			break
		}
	}
	return out
}

// extractLimitations merges limitation-tagged sentences with sentences
// containing a limitation keyword, deduplicated, capped.
func extractLimitations(sentences []types.AnnotatedSentence) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(text string) {
		if len(out) >= maxLimitations || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, text)
	}

	for _, s := range sentences {
		if s.Function == types.FunctionLimitation {
			add(s.Text)
		}
	}
	for _, s := range sentences {
		if containsAny(s.Text, limitationKeywords) {
			add(s.Text)
		}
	}
	return out
}

// keyConcepts keeps the two highest-confidence entities per type, keyed
// by entity text with the containing sentence as the definition, then
// supplements with key phrases not already present, up to the cap.
func keyConcepts(entities []types.ScientificEntity, phrases []types.KeyPhrase) map[string]string {
	concepts := make(map[string]string, maxKeyConcepts)
	taken := make(map[string]bool)

	order := []types.EntityType{
		types.EntityTask, types.EntityMethod, types.EntityMetric,
		types.EntityMaterial, types.EntityConcept, types.EntityTool,
	}
	for _, t := range order {
		count := 0
		for _, e := range topByConfidence(entities, t) {
			if len(concepts) >= maxKeyConcepts || count >= conceptsPerType {
				break
			}
			lower := strings.ToLower(e.Text)
			if taken[lower] {
				continue
			}
			taken[lower] = true
			concepts[e.Text] = e.Context
			count++
		}
	}

	for _, p := range phrases {
		if len(concepts) >= maxKeyConcepts {
			break
		}
		if taken[p.Text] {
			continue
		}
		taken[p.Text] = true
		concepts[p.Text] = fmt.Sprintf("Recurring key phrase (%d occurrences).", int(p.Score))
	}

	return concepts
}

// sotaPositioning picks the first background sentence referencing prior
// work.
func sotaPositioning(sentences []types.AnnotatedSentence) string {
	for _, s := range sentences {
		if s.Function != types.FunctionBackground {
			continue
		}
		if containsAny(s.Text, priorWorkKeywords) {
			return s.Text
		}
	}
	return "The paper's positioning within prior work is not explicitly stated."
}

func technicalSummary(title, problem string, techniques []string) string {
	summary := fmt.Sprintf("This paper, titled %q, addresses the following problem: %s", title, problem)
	if len(techniques) > 0 {
		summary += fmt.Sprintf("\n\nThe approach draws on %s.", strings.Join(techniques, ", "))
	}
	return summary
}

func citationSummary(title, problem string, contributions []string) string {
	summary := fmt.Sprintf("%q addresses the following problem: %s", title, problem)
	if len(contributions) > 0 {
		summary += " " + contributions[0]
	}
	return summary
}

// --- shared selectors ---

// entityTexts returns the texts of entities of the given type in
// extraction order. A non-positive limit means unlimited.
func entityTexts(entities []types.ScientificEntity, t types.EntityType, limit int) []string {
	var out []string
	for _, e := range entities {
		if e.Type != t {
			continue
		}
		out = append(out, e.Text)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// topByConfidence returns entities of one type sorted by descending
// confidence, stable with respect to extraction order.
func topByConfidence(entities []types.ScientificEntity, t types.EntityType) []types.ScientificEntity {
	var out []types.ScientificEntity
	for _, e := range entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	// Insertion sort keeps equal-confidence entities in extraction order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Confidence > out[j-1].Confidence; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// sentencesContaining returns up to limit sentence texts carrying any of
// the keywords, in document order.
func sentencesContaining(sentences []types.AnnotatedSentence, keywords []string, limit int) []string {
	var out []string
	for _, s := range sentences {
		if !containsAny(s.Text, keywords) {
			continue
		}
		out = append(out, s.Text)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func orNotSpecified(values []string) []string {
	if len(values) == 0 {
		return []string{notSpecified}
	}
	return values
}
