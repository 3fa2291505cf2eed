// Package html provides a Normaliser for HTML documents. It extracts the
// readable text of a page and numbers ordered list items so that steps keep
// their order after extraction.
package html
