// Package file stores sercha-rag settings in ~/.sercha-rag/config.toml.
//
// The directory holding the config file is also the default data directory
// for vector snapshots.
package file
