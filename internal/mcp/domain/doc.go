// Package domain translates MCP tool calls into scene registry commands.
//
// The package is intentionally explicit about that mapping:
// - bind and validate typed tool inputs,
// - route calls to the scene registry and its stores,
// - and surface structured outputs plus a one-line textual description of
//   the mutation performed, so agent transcripts stay readable.
//
// Every operation resolves its scene first (an empty scene id means the
// active scene), mutates under the scene's own lock, and maps domain errors
// to MCP tool errors at this boundary only.
package domain
