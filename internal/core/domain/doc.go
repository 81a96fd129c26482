// Package domain defines the core business entities for Tablewise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query: A submitted business question (typed or voice-transcribed)
//   - ResultModel: The typed chart/report payload from the analytics backend
//   - ExportArtifact: The opaque report attached to a result
//   - HistoryEntry: A logged query/response pair
//   - Identity: The authenticated identity owning a history log
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
