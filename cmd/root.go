package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailvault application
var rootCmd = &cobra.Command{
	Use:   "mailvault",
	Short: "Archives Gmail messages to object storage as JSON",
	Long: `mailvault fetches Gmail messages matching a search query and writes each
one as an indented JSON document to an S3 bucket, one object per message.

It can run as:
  - A standalone CLI tool (run)
  - A long-running HTTP or MCP server (serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailvault version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
