// Package connectors provides implementations of the SourceConnector
// interface for document sources. Each connector knows how to
// enumerate (and optionally watch) documents from a specific source
// type. The local filesystem connector is currently the only one.
package connectors
