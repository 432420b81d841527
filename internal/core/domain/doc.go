// Package domain defines the core business entities for Arkival.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentRecord: One source file after text extraction
//   - ChunkRecord: A retrieval-sized unit of a document's text
//   - ManifestEntry: Durable last-known-good processing state
//   - Classification: Structured labels attached by the classifier
//   - Settings: Immutable pipeline configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
