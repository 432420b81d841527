// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - SourceConnector: Enumerates eligible files in the prepared tree
//   - ExtractorRegistry: Selects a TextExtractor per file kind
//   - ManifestStore: Durable processing-state persistence
//   - ArtifactStore: Derived JSON artifact persistence
//   - SettingsStore: Pipeline configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - Classifier: Structured labelling. Without it, the classify stage
//     is skipped and chunks carry no labels.
//   - ChunkCatalog: SQLite mirror behind status/lookup. Without it,
//     those commands report from the manifest only.
//   - LegacyConverter: Legacy-format conversion during preparation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or chunker package
package driven
