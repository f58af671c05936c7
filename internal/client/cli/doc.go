// Package cli provides the interactive CloudShare command-line client.
//
// It wires configuration, the REST API client, and the session services
// (credits, upload batch, file cache, payments) into an interactive REPL.
// Typical flow: sign in with a bearer token, review credits and files, stage
// a batch and submit it, or purchase a plan through the payment gateway.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
