package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/docskel/rag"
)

var (
	chunksFormat  string
	chunksMaxSize int
	chunksContext bool
	chunksOutput  string
)

var chunksCmd = &cobra.Command{
	Use:   "chunks <file>",
	Short: "Extract a document and cut it into retrieval chunks",
	Long: `Chunks extracts the skeleton of a PDF or HTML file and cuts it into
retrieval chunks for RAG pipelines, exported as JSONL, JSON, CSV or TSV.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skel, err := extractSkeleton(args[0])
		if err != nil {
			return err
		}

		chunkerCfg := rag.DefaultChunkerConfig()
		if chunksMaxSize > 0 {
			chunkerCfg.MaxChunkSize = chunksMaxSize
		}
		result, err := rag.NewChunkerWithConfig(chunkerCfg).Chunk(skel)
		if err != nil {
			return err
		}

		exportCfg := rag.DefaultExportConfig()
		exportCfg.IncludeContext = chunksContext
		switch chunksFormat {
		case "jsonl":
			exportCfg.Format = rag.ExportFormatJSONL
		case "json":
			exportCfg.Format = rag.ExportFormatJSON
		case "csv":
			exportCfg.Format = rag.ExportFormatCSV
		case "tsv":
			exportCfg.Format = rag.ExportFormatTSV
		default:
			return fmt.Errorf("unknown format %q (want jsonl, json, csv or tsv)", chunksFormat)
		}

		out, err := openOutput(chunksOutput)
		if err != nil {
			return err
		}
		defer out.Close()

		return rag.NewExporterWithConfig(exportCfg).Export(result.Chunks, out)
	},
}

func init() {
	chunksCmd.Flags().StringVarP(&chunksFormat, "format", "f", "jsonl", "Output format: jsonl, json, csv or tsv")
	chunksCmd.Flags().IntVar(&chunksMaxSize, "max-chunk-size", 0, "Maximum chunk size in characters (0 = default)")
	chunksCmd.Flags().BoolVar(&chunksContext, "context", false, "Prepend section headings to chunk text")
	chunksCmd.Flags().StringVarP(&chunksOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(chunksCmd)
}
