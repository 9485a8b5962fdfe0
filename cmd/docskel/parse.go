package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/docskel"
	"github.com/tsawler/docskel/export"
	"github.com/tsawler/docskel/htmlprovider"
	"github.com/tsawler/docskel/model"
)

var (
	parseFormat string
	parsePretty bool
	parseOutput string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract a document skeleton and render it",
	Long: `Parse extracts the structural skeleton of a PDF or HTML file and renders
it as Markdown or JSON. HTML input is selected by the .html/.htm extension;
everything else is treated as PDF.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skel, err := extractSkeleton(args[0])
		if err != nil {
			return err
		}

		out, err := openOutput(parseOutput)
		if err != nil {
			return err
		}
		defer out.Close()

		switch parseFormat {
		case "markdown", "md":
			return export.WriteMarkdown(out, skel)
		case "json":
			return export.WriteJSON(out, skel, parsePretty)
		default:
			return fmt.Errorf("unknown format %q (want markdown or json)", parseFormat)
		}
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "markdown", "Output format: markdown or json")
	parseCmd.Flags().BoolVar(&parsePretty, "pretty", false, "Indent JSON output")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(parseCmd)
}

// extractSkeleton reads a file and extracts its skeleton, picking the
// provider from the file extension.
func extractSkeleton(path string) (*model.DocumentSkeleton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	sourceID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		prov, err := htmlprovider.New(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return docskel.ParseProvider(prov, sourceID)
	default:
		return docskel.Parse(data, sourceID)
	}
}

// openOutput opens the output destination; an empty path means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
