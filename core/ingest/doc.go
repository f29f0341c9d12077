// Package ingest implements incremental folder ingestion: a poll-driven
// reconciliation loop that converts discovered files into a stable
// identifier-to-handle index, tolerating partial failure without retries.
//
// # Architecture
//
// The package is built around three pieces:
//
//  1. FolderState: per-folder progress — the discovery token, the terminal
//     flag, and the permanent quarantine set of failed paths.
//
//  2. Index: the resulting identifier → content-handle mapping, a plain
//     lookup table with point queries and iteration.
//
//  3. Folder.Tick: one reconciliation pass. It requests discovery on the
//     first pass, then classifies every member file against the loading
//     subsystem's per-file state until no file remains pending, at which
//     point the folder becomes terminal exactly once.
//
// # Convergence contract
//
// Tick is safe to invoke at any cadence, from a scheduler tick or a tight
// CLI loop. The contract holds regardless of invocation count or file
// completion order:
//
//   - terminal transitions false → true at most once and never reverts;
//     passes after that are no-ops
//   - the index only grows before terminal; an identifier is inserted at
//     most once (first-registered-wins on stem collisions)
//   - quarantined paths are never re-queried and never retried
//   - a pass never blocks; "waiting" is returning early and being invoked
//     again later
//
// # Ownership
//
// Callers own one Folder per content type and tick it single-threaded. The
// Registry drives a named set of folders sharing an identifier type; if a
// host parallelizes across content types, each Folder must stay owned by
// one goroutine.
package ingest
