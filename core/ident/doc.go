// Package ident derives asset identifiers from file paths.
//
// Identifiers are built from the filename stem: the filename with the
// configured suffix removed. A file is only a candidate when its name ends
// with the suffix and the stem is non-empty and not prefixed with "."
// (hidden) or "_" (disabled).
//
// # Identifier strategies
//
// The ingestion engine is generic over the identifier type; it only needs a
// constructor func(string) ID. This package ships two strategies:
//
//   - Interner: canonicalizes stems into stable string identifiers, bounding
//     memory to the set of distinct stems.
//   - HashID: deterministic FNV-1a 64-bit hash for compact integer IDs.
//
// # Usage
//
//	stem, ok := ident.Stem("prefabs/spells/fireball.spell.json", ".spell.json")
//	// stem == "fireball", ok == true
//
//	interner := ident.NewInterner()
//	id := interner.Intern(stem)
package ident
