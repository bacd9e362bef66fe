package archive_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/mailvault/internal/archive"
)

// ArchiveRunner runs one archive invocation. Satisfied by *archive.Service.
type ArchiveRunner interface {
	Run(ctx context.Context, req archive.Request) (archive.Result, error)
}

// RegisterArchiveTools registers the archive tools with the MCP server
func RegisterArchiveTools(s *mcpserver.MCPServer, runner ArchiveRunner) error {
	if runner == nil {
		return fmt.Errorf("archive runner is required")
	}

	// Archive messages tool
	archiveMessagesTool := mcp.NewTool("archive_messages",
		mcp.WithDescription("Archive Gmail messages matching a query to object storage as JSON"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'from:billing@example.com', 'label:receipts')"),
		),
		mcp.WithString("destination_folder_id",
			mcp.Required(),
			mcp.Description("Folder segment for the storage keys; archived objects land under gmail/<folder>/"),
		),
	)

	s.AddTool(archiveMessagesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleArchiveMessages(ctx, request, runner)
	})

	return nil
}

func handleArchiveMessages(ctx context.Context, request mcp.CallToolRequest, runner ArchiveRunner) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	folderID, ok := args["destination_folder_id"].(string)
	if !ok || folderID == "" {
		return mcp.NewToolResultError("destination_folder_id is required"), nil
	}

	result, err := runner.Run(ctx, archive.Request{Query: query, FolderID: folderID})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to archive messages: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s (processed %d, failed %d)",
		result.Summary, result.Processed, result.Failed)), nil
}
