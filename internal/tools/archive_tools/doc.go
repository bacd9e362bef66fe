// Package archive_tools provides MCP (Model Context Protocol) tools for
// archiving Gmail messages to object storage.
//
// The package exposes a single tool:
//   - archive_messages: fetch all messages matching a Gmail query and write
//     each one as an indented JSON object to the configured bucket under
//     gmail/<destination_folder_id>/message_<id>.json
//
// The tool delegates to the archive service, which handles OAuth token
// refresh, pagination, body extraction and per-message failure isolation.
package archive_tools
