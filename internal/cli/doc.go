// Package cli provides the interactive GiftJoy command-line client.
//
// It wires configuration, the tiered gift storage (cloud, durable local
// database, flat-file fallback) and an interactive REPL. Typical flow:
// open the storage waterfall, then execute user commands against the
// assembled gift service.
//
// Key features:
//   - Create / List / Show / Delete / Clear gifts
//   - Storage tier and capacity report
//   - Login / Logout for the cloud session
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
