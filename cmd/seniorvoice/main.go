package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Malekse21/Senior-Voice/assistantservice"
)

var rootCmd = &cobra.Command{
	Use:   "seniorvoice",
	Short: "Voice assistant agent core for elderly users",
}

func main() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the assistant HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return assistantservice.Run()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "mcp",
		Short: "Expose the tool catalog over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return assistantservice.RunMCP()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
