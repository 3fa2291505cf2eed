// Package memory provides in-memory implementations of driven port interfaces.
//
// VectorStore is the authoritative document store used by the pipeline. It
// keeps every document in memory and, when given a driven.SnapshotStore,
// persists a full snapshot on each mutation. ConfigStore is a map-backed
// configuration store used in tests.
package memory
