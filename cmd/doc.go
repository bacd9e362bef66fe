// Package cmd implements the command-line interface for mailvault.
//
// This package provides the following commands:
//   - run: Archive Gmail messages matching a query to the configured S3 bucket
//   - serve: Start the archive server (HTTP or MCP stdio transport)
//   - version: Display version information
package cmd
