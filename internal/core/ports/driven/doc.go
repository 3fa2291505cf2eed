// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: Maps text to 384-dimension unit vectors
//   - VectorStore: Owns every ingested document, its chunks and embeddings
//   - SnapshotStore: Durable full-snapshot persistence behind a VectorStore
//   - PostProcessor / PostProcessorPipeline: Splits cleaned text into chunks
//   - Normaliser / NormaliserRegistry: Extracts plain text from file formats
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
