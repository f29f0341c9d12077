// Package library exposes the read-only HTTP surface over ingested
// folders.
//
// It serves folder ingestion status, index keys, quarantined paths, and
// realized asset content. Quarantine information is surfaced passively:
// the API reports it but never mutates ingestion state.
package library
