// Package services implements the core application logic.
//
// Services implement the driving ports and depend only on driven ports
// and domain types. The three services share one Session:
//
//   - QueryOrchestrator: single-in-flight query submission and history append
//   - CaptureController: microphone lifecycle and transcription hand-off
//   - ExportDispatcher: best-effort report download and forwarding
package services
