// Package connectors provides file sources for directory-driven ingestion.
// The filesystem connector lists the visible files under a root directory
// and reports changes to them as they happen.
package connectors
