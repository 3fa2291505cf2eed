package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates the query text was empty or blank.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyDocument indicates a document produced no retrievable chunks.
	ErrEmptyDocument = errors.New("document produced no chunks")

	// ErrUnsupportedType indicates no normaliser handles a MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrTooLarge indicates a file exceeds the ingestion size limit.
	ErrTooLarge = errors.New("file too large")

	// ErrEmbeddingUnavailable indicates the model-backed embedding service
	// could not be created or reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector does not have the expected size.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrMisaligned indicates chunks and embeddings differ in length.
	ErrMisaligned = errors.New("chunks and embeddings are not aligned")

	// ErrPersistence indicates the store snapshot could not be written.
	ErrPersistence = errors.New("snapshot persistence failed")
)
