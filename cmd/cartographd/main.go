package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartograph-ai/cartograph/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cartographd",
		Short: "Cartograph daemon",
		Long:  "Cartograph daemon for running the document knowledge graph API server",
	}

	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
