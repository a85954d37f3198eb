// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-collector/internal/nlp"
	"github.com/pdiddy/paper-collector/pkg/types"
)

// --- test helpers ---

func samplePaper() *types.Paper {
	return &types.Paper{
		Title:    "Deep Learning for Speech Recognition on Embedded Devices",
		DOI:      "10.1000/example.2026",
		Abstract: "We propose a compact neural network for on-device speech recognition. It runs in real time on commodity microcontrollers.",
		Sections: []types.Section{
			{Type: types.SectionAbstract, Title: "Abstract",
				Content: "We propose a compact neural network for on-device speech recognition. It runs in real time on commodity microcontrollers."},
			{Type: types.SectionIntroduction, Title: "1. Introduction",
				Content: "Prior systems require cloud connectivity. Speech interfaces matter for accessibility."},
			{Type: types.SectionMethodology, Title: "2. Methodology",
				Content: "We apply quantization to a convolutional neural network. The TIMIT dataset is used for training. We measure accuracy and error rate."},
			{Type: types.SectionResults, Title: "3. Results",
				Content: "Results show the system achieves 94.1% accuracy. We demonstrate a threefold reduction in memory footprint."},
			{Type: types.SectionConclusion, Title: "4. Conclusion",
				Content: "In conclusion, we demonstrate that edge inference is practical. However, one limitation is the fixed vocabulary. Future work will explore pruning."},
			{Type: types.SectionReferences, Title: "References",
				Content: "[1] A. Author, Prior work, 2019."},
		},
	}
}

// stubAnalyzer is a scriptable tier for orchestrator tests.
type stubAnalyzer struct {
	name   string
	result *types.AcademicAnalysis
	err    error
	calls  int
}

func (s *stubAnalyzer) Name() string { return s.name }

func (s *stubAnalyzer) Analyze(context.Context, *types.Paper) (*types.AcademicAnalysis, error) {
	s.calls++
	return s.result, s.err
}

func validResult() *types.AcademicAnalysis {
	return &types.AcademicAnalysis{
		TechnicalSummary:   "summary",
		ResearchProblem:    types.ResearchProblem{ProblemStatement: "problem"},
		MainContributions:  []string{"c1", "c2"},
		CitationSummary:    "citation",
		AnalysisConfidence: types.ConfidenceHigh,
	}
}

// --- orchestrator ---

func TestOrchestratorFallsThroughFailedTiers(t *testing.T) {
	failing := &stubAnalyzer{name: "failing", err: errors.New("boom")}
	succeeding := &stubAnalyzer{name: "succeeding", result: validResult()}
	skipped := &stubAnalyzer{name: "skipped", result: validResult()}

	orch := &Orchestrator{
		tiers: []Analyzer{failing, succeeding, skipped},
		log:   zap.NewNop(),
	}

	result, tier := orch.Analyze(context.Background(), samplePaper())
	if result == nil {
		t.Fatal("orchestrator returned nil analysis")
	}
	if tier != "succeeding" {
		t.Errorf("producing tier = %q, want succeeding", tier)
	}
	if failing.calls != 1 || succeeding.calls != 1 {
		t.Errorf("tier calls = %d/%d, want 1/1", failing.calls, succeeding.calls)
	}
	if skipped.calls != 0 {
		t.Errorf("tier after success was called %d times", skipped.calls)
	}
}

func TestOrchestratorNeverFails(t *testing.T) {
	// No API key and no NLP backend: the chain degrades to the template
	// tier, which still answers.
	orch := NewOrchestrator(types.AnalysisConfig{}, nil, nil)

	result, tier := orch.Analyze(context.Background(), samplePaper())
	if result == nil {
		t.Fatal("orchestrator returned nil analysis")
	}
	if tier != "template" {
		t.Errorf("producing tier = %q, want template", tier)
	}
	n := len(result.MainContributions)
	if n < types.MinContributions || n > types.MaxContributions {
		t.Errorf("contributions = %d, want within [%d, %d]", n, types.MinContributions, types.MaxContributions)
	}
}

func TestNewOrchestratorTierAssembly(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.AnalysisConfig
		proc *nlp.Processor
		want []string
	}{
		{
			name: "all tiers",
			cfg:  types.AnalysisConfig{AIConfig: types.AIConfig{APIKey: "k"}, EnableNLP: true},
			proc: nlp.NewProcessor(),
			want: []string{"remote", "nlp", "template"},
		},
		{
			name: "no api key",
			cfg:  types.AnalysisConfig{EnableNLP: true},
			proc: nlp.NewProcessor(),
			want: []string{"nlp", "template"},
		},
		{
			name: "nlp enabled but backend missing",
			cfg:  types.AnalysisConfig{EnableNLP: true},
			proc: nil,
			want: []string{"template"},
		},
		{
			name: "template only",
			cfg:  types.AnalysisConfig{},
			proc: nil,
			want: []string{"template"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := NewOrchestrator(tt.cfg, tt.proc, zap.NewNop())
			got := orch.Tiers()
			if len(got) != len(tt.want) {
				t.Fatalf("tiers = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tier %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClampContributions(t *testing.T) {
	short := &types.AcademicAnalysis{}
	clampContributions(short)
	if len(short.MainContributions) != types.MinContributions {
		t.Errorf("empty list padded to %d, want %d", len(short.MainContributions), types.MinContributions)
	}

	long := &types.AcademicAnalysis{MainContributions: []string{"1", "2", "3", "4", "5", "6", "7"}}
	clampContributions(long)
	if len(long.MainContributions) != types.MaxContributions {
		t.Errorf("long list clamped to %d, want %d", len(long.MainContributions), types.MaxContributions)
	}
	if long.MainContributions[0] != "1" {
		t.Errorf("truncation reordered contributions: %v", long.MainContributions)
	}
}

// --- template tier ---

func TestTemplateAnalyzer(t *testing.T) {
	paper := samplePaper()
	result, err := NewTemplateAnalyzer().Analyze(context.Background(), paper)
	if err != nil {
		t.Fatalf("template tier returned error: %v", err)
	}

	if result.AnalysisConfidence != types.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.AnalysisConfidence)
	}
	if result.PaperTitle != paper.Title || result.PaperDOI != paper.DOI {
		t.Errorf("paper identity not carried: %q / %q", result.PaperTitle, result.PaperDOI)
	}
	wantProblem := "We propose a compact neural network for on-device speech recognition."
	if result.ResearchProblem.ProblemStatement != wantProblem {
		t.Errorf("problem statement = %q, want first abstract sentence", result.ResearchProblem.ProblemStatement)
	}
	if len(result.ThematicTags) == 0 {
		t.Error("no thematic tags assigned")
	}
	if len(result.ResearchProblem.Constraints) != 0 {
		t.Errorf("constraints = %v, methodology section exists", result.ResearchProblem.Constraints)
	}
}

func TestTemplateAnalyzerSparsePaper(t *testing.T) {
	paper := &types.Paper{
		Title:    "Untitled Document",
		Sections: []types.Section{{Type: types.SectionOther, Content: "Some text."}},
	}
	result, err := NewTemplateAnalyzer().Analyze(context.Background(), paper)
	if err != nil {
		t.Fatalf("template tier returned error: %v", err)
	}

	if result.ResearchProblem.ProblemStatement != "Problem statement not explicitly identified in abstract." {
		t.Errorf("problem statement = %q", result.ResearchProblem.ProblemStatement)
	}
	if len(result.ResearchProblem.Constraints) != 1 || result.ResearchProblem.Constraints[0] != "Methodology section not found" {
		t.Errorf("constraints = %v", result.ResearchProblem.Constraints)
	}
	if len(result.Limitations) != 1 || result.Limitations[0] != "Conclusion section not found" {
		t.Errorf("limitations = %v", result.Limitations)
	}

	var hasAbstract bool
	for _, m := range result.MissingInformation {
		if m == "Abstract" {
			hasAbstract = true
		}
	}
	if !hasAbstract {
		t.Errorf("missing information %v lacks Abstract", result.MissingInformation)
	}
}

// --- NLP tier ---

func TestNLPAnalyzer(t *testing.T) {
	paper := samplePaper()
	result, err := NewNLPAnalyzer(nlp.NewProcessor()).Analyze(context.Background(), paper)
	if err != nil {
		t.Fatalf("nlp tier returned error: %v", err)
	}

	if result.AnalysisConfidence != types.ConfidenceMedium {
		t.Errorf("confidence = %s, want medium", result.AnalysisConfidence)
	}
	if len(result.MainContributions) == 0 {
		t.Error("no contributions extracted")
	}
	if result.ResearchProblem.ProblemStatement == "" {
		t.Error("empty problem statement")
	}
	if !strings.Contains(result.Methodology.InputData, "TIMIT") &&
		!strings.Contains(result.Methodology.InputData, "dataset") {
		t.Errorf("input data = %q, want dataset material", result.Methodology.InputData)
	}
	if len(result.KeyConcepts) == 0 {
		t.Error("no key concepts extracted")
	}
	if len(result.KeyConcepts) > 10 {
		t.Errorf("key concepts = %d, want at most 10", len(result.KeyConcepts))
	}
}

func TestNLPAnalyzerDeterministic(t *testing.T) {
	a := NewNLPAnalyzer(nlp.NewProcessor())
	paper := samplePaper()

	first, err := a.Analyze(context.Background(), paper)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := a.Analyze(context.Background(), paper)
		if err != nil {
			t.Fatal(err)
		}
		if first.TechnicalSummary != again.TechnicalSummary {
			t.Fatalf("run %d: technical summary differs", i)
		}
		if len(first.MainContributions) != len(again.MainContributions) {
			t.Fatalf("run %d: contribution count differs", i)
		}
	}
}

// --- thematic classification ---

func TestClassifyThematic(t *testing.T) {
	tests := []struct {
		title, abstract string
		want            []string
	}{
		{"Speech enhancement on embedded hardware", "A deep learning system.",
			[]string{"Speech Processing", "Embedded Systems", "Machine Learning"}},
		{"A study of geology", "Rocks and minerals.", []string{"General Research"}},
	}

	for _, tt := range tests {
		got := classifyThematic(tt.title, tt.abstract)
		if len(got) != len(tt.want) {
			t.Errorf("classifyThematic(%q) = %v, want %v", tt.title, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("classifyThematic(%q)[%d] = %q, want %q", tt.title, i, got[i], tt.want[i])
			}
		}
	}
}

// --- remote tier plumbing ---

func TestValidateAnalysis(t *testing.T) {
	valid := validResult()
	if err := validateAnalysis(valid); err != nil {
		t.Errorf("valid analysis rejected: %v", err)
	}

	missing := validResult()
	missing.CitationSummary = ""
	if err := validateAnalysis(missing); err == nil {
		t.Error("missing citation_summary accepted")
	}

	blank := validResult()
	blank.AnalysisConfidence = ""
	if err := validateAnalysis(blank); err != nil {
		t.Errorf("blank confidence rejected: %v", err)
	}
	if blank.AnalysisConfidence != types.ConfidenceMedium {
		t.Errorf("blank confidence normalized to %q, want medium", blank.AnalysisConfidence)
	}

	invalid := validResult()
	invalid.AnalysisConfidence = "very high"
	if err := validateAnalysis(invalid); err == nil {
		t.Error("invalid confidence accepted")
	}
}

func TestSerializePaper(t *testing.T) {
	paper := samplePaper()
	paper.Sections[2].Content = strings.Repeat("x", 3000)

	out := serializePaper(paper)

	if !strings.HasPrefix(out, "TITLE: "+paper.Title) {
		t.Errorf("serialization does not open with the title: %q", out[:40])
	}
	if !strings.Contains(out, "ABSTRACT:") {
		t.Error("abstract block missing")
	}
	if strings.Contains(out, "Prior work, 2019") {
		t.Error("references section should be excluded")
	}
	if strings.Contains(out, strings.Repeat("x", sectionCharBudget+1)) {
		t.Error("section content not truncated to budget")
	}
	if !strings.Contains(out, strings.Repeat("x", sectionCharBudget)) {
		t.Error("truncated section content missing")
	}
}

func TestRenderPrompt(t *testing.T) {
	prompt, err := renderPrompt(samplePaper())
	if err != nil {
		t.Fatalf("renderPrompt: %v", err)
	}
	if !strings.Contains(prompt, "PAPER CONTENT:") {
		t.Error("prompt missing content header")
	}
	if !strings.Contains(prompt, `"technical_summary"`) {
		t.Error("prompt missing JSON contract")
	}
}

func TestMissingInformation(t *testing.T) {
	got := missingInformation(&types.Paper{})
	want := []string{"Abstract", "DOI", "Authors", "Publication date", "Methodology section", "Results section"}
	if len(got) != len(want) {
		t.Fatalf("missingInformation = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("missingInformation[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
