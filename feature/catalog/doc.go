// Package catalog persists ingestion outcomes to the optional MySQL
// catalog.
//
// Each folder that reaches its terminal state produces one run row plus a
// quarantine row per permanently failed path. The catalog is a sink: it
// never feeds back into the reconciliation loop.
package catalog
