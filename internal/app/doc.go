// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle: loading and expanding
// registry documents, merging asset overrides, and serving the resulting
// concrete profiles, decoupled from any specific entrypoint like a CLI.
package app
