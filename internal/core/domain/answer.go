package domain

import (
	"encoding/json"
	"time"
)

// NoResultsMessage is returned when retrieval finds nothing above the threshold.
const NoResultsMessage = "Sorry, I couldn't find relevant information to answer your question. " +
	"Could you rephrase it or provide more details?"

// Source credits a document used to build an answer.
type Source struct {
	Filename   string  `json:"filename" yaml:"filename"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// AnswerMetadata describes how an answer was produced.
type AnswerMetadata struct {
	ChunksUsed    int       `json:"chunksUsed" yaml:"chunksUsed"`
	AvgSimilarity float64   `json:"avgSimilarity" yaml:"avgSimilarity"`
	ProcessedAt   time.Time `json:"processedAt" yaml:"processedAt"`
}

// QueryAnswer is the structured result of answering a query.
// Success answers carry a Suggestion; failures carry only Error.
// A nil Context means context was not requested and is left out of the
// encoded answer; a non-nil empty Context encodes as an empty list.
type QueryAnswer struct {
	Success    bool            `json:"success" yaml:"success"`
	Suggestion string          `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	Confidence float64         `json:"confidence" yaml:"confidence"`
	QueryType  QueryType       `json:"queryType,omitempty" yaml:"queryType,omitempty"`
	Context    []SearchResult  `json:"context,omitempty" yaml:"context,omitempty"`
	Sources    []Source        `json:"sources" yaml:"sources"`
	Metadata   *AnswerMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// queryAnswerWire is the encoded form of QueryAnswer. Context is a pointer
// so that omitempty drops only a nil Context.
type queryAnswerWire struct {
	Success    bool            `json:"success" yaml:"success"`
	Suggestion string          `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	Confidence float64         `json:"confidence" yaml:"confidence"`
	QueryType  QueryType       `json:"queryType,omitempty" yaml:"queryType,omitempty"`
	Context    *[]SearchResult `json:"context,omitempty" yaml:"context,omitempty"`
	Sources    []Source        `json:"sources" yaml:"sources"`
	Metadata   *AnswerMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func (a QueryAnswer) wire() queryAnswerWire {
	w := queryAnswerWire{
		Success:    a.Success,
		Suggestion: a.Suggestion,
		Error:      a.Error,
		Confidence: a.Confidence,
		QueryType:  a.QueryType,
		Sources:    a.Sources,
		Metadata:   a.Metadata,
	}
	if a.Context != nil {
		results := a.Context
		w.Context = &results
	}
	return w
}

// MarshalJSON encodes the answer, keeping an empty requested context.
func (a QueryAnswer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.wire())
}

// MarshalYAML encodes the answer, keeping an empty requested context.
func (a QueryAnswer) MarshalYAML() (any, error) {
	return a.wire(), nil
}

// FailedAnswer builds a failure answer with the given message.
func FailedAnswer(msg string) *QueryAnswer {
	return &QueryAnswer{
		Success: false,
		Error:   msg,
	}
}

// NoResultsAnswer builds the fixed zero-confidence answer for empty retrievals.
func NoResultsAnswer(includeContext bool) *QueryAnswer {
	answer := &QueryAnswer{
		Success:    true,
		Suggestion: NoResultsMessage,
		Confidence: 0,
		Sources:    []Source{},
	}
	if includeContext {
		answer.Context = []SearchResult{}
	}
	return answer
}
