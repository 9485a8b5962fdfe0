package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docskel",
	Short: "Extract document skeletons from PDF and HTML files",
	Long: `docskel reconstructs the structural skeleton of a document - sections,
headings, paragraphs, lists, tables and images - from positioned text, and
renders it as Markdown, JSON or retrieval chunks for RAG pipelines.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
