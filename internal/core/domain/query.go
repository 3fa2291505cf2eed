package domain

import (
	"strings"
	"time"
)

// QueryType is the heuristic intent of a query.
type QueryType string

// Query types in classification priority order.
const (
	QueryTypeProcedural  QueryType = "procedural"
	QueryTypeFactual     QueryType = "factual"
	QueryTypeExplanatory QueryType = "explanatory"
	QueryTypeTemporal    QueryType = "temporal"
	QueryTypeLocational  QueryType = "locational"
	QueryTypeGeneral     QueryType = "general"
)

// String returns the string representation.
func (q QueryType) String() string {
	return string(q)
}

// AllQueryTypes returns every query type.
func AllQueryTypes() []QueryType {
	return []QueryType{
		QueryTypeProcedural,
		QueryTypeFactual,
		QueryTypeExplanatory,
		QueryTypeTemporal,
		QueryTypeLocational,
		QueryTypeGeneral,
	}
}

// Message is one entry of a conversation history.
type Message struct {
	// Sender is "user" or "assistant".
	Sender string `json:"sender"`

	// Message is the message text.
	Message string `json:"message"`

	// Timestamp is when the message was sent.
	Timestamp time.Time `json:"timestamp"`
}

// SenderUser marks messages written by the user.
const SenderUser = "user"

// UserMessage wraps a plain query as a single user message.
func UserMessage(text string) Message {
	return Message{
		Sender:    SenderUser,
		Message:   text,
		Timestamp: time.Now(),
	}
}

// LastMessageText returns the trimmed text of the final message, or "" for an empty history.
func LastMessageText(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	return strings.TrimSpace(messages[len(messages)-1].Message)
}
