// Package file provides file-backed storage adapters for the Base's
// profile artifacts, orchestration event log, proposal batches and
// scope settings. Everything lives under a single Base directory so a
// Base can be inspected, backed up or wiped as one tree.
package file
