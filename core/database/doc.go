// Package database manages the optional MySQL connection for the ingest
// catalog.
//
// The catalog records terminal ingestion summaries (see feature/catalog);
// the connection is optional and the application degrades gracefully when
// it is unavailable.
package database
