// Package driving defines the interfaces that external actors use to
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and TUI adapters call these interfaces; core services
// implement them.
//
//   - AssistantService: Query submission, replay, session and history access
//   - CaptureService: Microphone capture lifecycle
//   - ExportService: Best-effort report download and forwarding
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package, any driven port implementation
package driving
