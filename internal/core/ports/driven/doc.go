// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PaperStore: Library entry persistence
//   - EventLog: Append-only orchestration event log
//   - ProposalStore: Category proposal batch persistence
//   - ProfileStore: Profile JSON/HTML artifact persistence + export lock
//   - ScopeStore: Per-profile scope setting persistence
//   - Archiver: Zip bundle creation and entry extraction
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
