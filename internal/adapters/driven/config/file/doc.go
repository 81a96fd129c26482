// Package file provides file-based driven adapters for configuration.
// Settings live in a TOML file under the user's tablewise directory and
// are flattened to dot-notation keys (backend.url, auth.email).
package file
