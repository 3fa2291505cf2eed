// Package domain defines the core business entities for sercha-rag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with its chunks and embeddings
//   - Chunk: A retrievable passage within a document
//   - Vector: A unit-normalised embedding
//   - SearchResult: A scored chunk returned by similarity search
//   - QueryAnswer: The structured answer to a user query
//   - RawDocument: Opaque bytes handed to a normaliser
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
