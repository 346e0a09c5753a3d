// Package file provides the TOML-backed configuration adapter.
// Configuration lives in ~/.refbase/config.toml with dot-notation keys
// mapped onto TOML tables.
package file
