// Package normalisers provides implementations of the Normaliser interface
// for various document formats. Each normaliser knows how to extract text
// content from a specific MIME type.
//
// The Registry selects a normaliser by MIME type and the Detector works out
// the MIME type of a file from its name and content.
package normalisers
