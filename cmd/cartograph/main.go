package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartograph-ai/cartograph/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cartograph",
		Short: "Cartograph CLI - knowledge graphs from documents",
		Long: `Cartograph CLI turns PDF documents into explorable knowledge graphs.

Environment variables:
  CARTOGRAPH_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")

	rootCmd.AddCommand(client.UploadCmd())
	rootCmd.AddCommand(client.TitleCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.ExplainCmd())
	rootCmd.AddCommand(client.PathCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
