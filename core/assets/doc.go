// Package assets implements the asynchronous loading subsystem polled by
// the ingestion engine.
//
// A Server owns the full lifecycle of file content: folder discovery,
// scheduling of reads on a bounded worker pool, decoding, and the in-memory
// content store keyed by opaque handles. Consumers never block on it; every
// query (Discovery, State, Ready, Get) returns immediately with the current
// snapshot.
//
// # Backends
//
// The Server is backend-agnostic. DirBackend serves local directories;
// ObjectBackend serves an S3/MinIO bucket through core/storage, mapping
// folder paths to key prefixes.
//
// # Lifecycle
//
//	server := assets.NewServer(cfg, assets.DirBackend{}, log)
//	server.RegisterDecoder(".spell.json", assets.JSONDecoder(func() any { return &Spell{} }))
//	token := server.RequestDiscovery("prefabs/spells")
//	// ... poll server.Discovery(token), server.State(h), server.Get(h)
//
// Failed loads are terminal: the server records StateFailed and never
// retries the file.
package assets
