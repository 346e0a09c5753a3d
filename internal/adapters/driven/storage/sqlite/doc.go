// Package sqlite provides a SQLite-backed paper store. The database
// lives alongside the Base's other artifacts and uses WAL mode so the
// CLI, watcher and MCP server can share it.
package sqlite
