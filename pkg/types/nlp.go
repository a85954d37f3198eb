// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RhetoricalFunction is the communicative role a sentence plays in
// academic discourse. The declaration order is significant: when two
// functions score equally the earlier one wins.
type RhetoricalFunction string

const (
	FunctionBackground RhetoricalFunction = "background"
	FunctionObjective  RhetoricalFunction = "objective"
	FunctionMethod     RhetoricalFunction = "method"
	FunctionResult     RhetoricalFunction = "result"
	FunctionConclusion RhetoricalFunction = "conclusion"
	FunctionFutureWork RhetoricalFunction = "future_work"
	FunctionLimitation RhetoricalFunction = "limitation"
	FunctionUnknown    RhetoricalFunction = "unknown"
)

// RhetoricalFunctions lists the scoreable functions in tie-break order.
// FunctionUnknown is excluded: it is assigned only when nothing scores.
var RhetoricalFunctions = []RhetoricalFunction{
	FunctionBackground,
	FunctionObjective,
	FunctionMethod,
	FunctionResult,
	FunctionConclusion,
	FunctionFutureWork,
	FunctionLimitation,
}

// EntityType classifies a domain-specific term extracted from
// scientific text.
type EntityType string

const (
	EntityTask     EntityType = "task"
	EntityMethod   EntityType = "method"
	EntityMetric   EntityType = "metric"
	EntityMaterial EntityType = "material"
	EntityConcept  EntityType = "concept"
	EntityTool     EntityType = "tool"
)

// ScientificEntity is a typed span of scientific terminology found in a
// single analysis pass. Entities are deduplicated by (lowercased text,
// type), keeping the highest-confidence instance, and are never persisted
// beyond the analysis call that produced them.
type ScientificEntity struct {
	// Text is the matched span.
	Text string `json:"text" yaml:"text"`

	// Type classifies the entity.
	Type EntityType `json:"entity_type" yaml:"entity_type"`

	// Context is the sentence containing the match.
	Context string `json:"context" yaml:"context"`

	// Confidence is the extraction confidence in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// AnnotatedSentence is a sentence labeled with its rhetorical function.
type AnnotatedSentence struct {
	// Text is the sentence text.
	Text string `json:"text" yaml:"text"`

	// Function is the winning rhetorical function, or unknown when no
	// function scored above zero.
	Function RhetoricalFunction `json:"function" yaml:"function"`

	// Confidence is the normalized keyword-match score in [0,1].
	// Zero when Function is unknown.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Position is the sentence index within the analyzed block.
	Position int `json:"position" yaml:"position"`
}

// KeyPhrase is a salient noun phrase with its frequency score.
type KeyPhrase struct {
	// Text is the lowercased phrase.
	Text string `json:"text" yaml:"text"`

	// Score is the occurrence count of the phrase in the analyzed text.
	Score float64 `json:"score" yaml:"score"`
}
