package rag

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportFormat defines the available chunk export formats.
type ExportFormat int

const (
	// ExportFormatJSONL exports one JSON object per line.
	ExportFormatJSONL ExportFormat = iota
	// ExportFormatJSON exports a JSON array.
	ExportFormatJSON
	// ExportFormatCSV exports comma-separated values.
	ExportFormatCSV
	// ExportFormatTSV exports tab-separated values.
	ExportFormatTSV
)

// String returns a human-readable representation of the export format.
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSONL:
		return "jsonl"
	case ExportFormatJSON:
		return "json"
	case ExportFormatCSV:
		return "csv"
	case ExportFormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// ExportConfig holds configuration options for chunk export.
type ExportConfig struct {
	// Format specifies the export format.
	Format ExportFormat

	// IncludeContext exports TextWithContext instead of the bare text.
	IncludeContext bool

	// PrettyPrint enables indentation for the JSON format.
	PrettyPrint bool

	// IncludeHeader includes the header row in CSV/TSV exports.
	IncludeHeader bool
}

// DefaultExportConfig returns sensible defaults for export configuration.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:        ExportFormatJSONL,
		IncludeHeader: true,
	}
}

// Exporter writes chunks in a configured format.
type Exporter struct {
	config ExportConfig
}

// NewExporter creates an exporter with default configuration.
func NewExporter() *Exporter {
	return &Exporter{config: DefaultExportConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration.
func NewExporterWithConfig(config ExportConfig) *Exporter {
	return &Exporter{config: config}
}

// exportedChunk is the wire shape of one chunk.
type exportedChunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Export writes chunks to w in the configured format.
func (e *Exporter) Export(chunks []*Chunk, w io.Writer) error {
	switch e.config.Format {
	case ExportFormatJSONL:
		return e.exportJSONL(chunks, w)
	case ExportFormatJSON:
		return e.exportJSON(chunks, w)
	case ExportFormatCSV, ExportFormatTSV:
		return e.exportCSV(chunks, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToString exports chunks to a string.
func (e *Exporter) ExportToString(chunks []*Chunk) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(chunks, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) prepare(chunk *Chunk) exportedChunk {
	text := chunk.Text
	if e.config.IncludeContext {
		text = chunk.TextWithContext
	}
	return exportedChunk{ID: chunk.ID, Text: text, Metadata: chunk.Metadata}
}

func (e *Exporter) exportJSONL(chunks []*Chunk, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for i, chunk := range chunks {
		if err := encoder.Encode(e.prepare(chunk)); err != nil {
			return fmt.Errorf("encoding chunk %d: %w", i, err)
		}
	}
	return nil
}

func (e *Exporter) exportJSON(chunks []*Chunk, w io.Writer) error {
	exported := make([]exportedChunk, len(chunks))
	for i, chunk := range chunks {
		exported[i] = e.prepare(chunk)
	}
	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(exported)
}

// csvColumns is the fixed column set for tabular exports.
var csvColumns = []string{
	"id", "text", "source_id", "section_title", "heading_level",
	"page_start", "page_end", "chunk_index", "level",
	"element_kinds", "has_table", "has_list", "has_image",
	"char_count", "word_count", "estimated_tokens",
}

func (e *Exporter) exportCSV(chunks []*Chunk, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	if e.config.Format == ExportFormatTSV {
		csvWriter.Comma = '\t'
	}

	if e.config.IncludeHeader {
		if err := csvWriter.Write(csvColumns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, chunk := range chunks {
		ex := e.prepare(chunk)
		m := ex.Metadata
		row := []string{
			ex.ID,
			ex.Text,
			m.SourceID,
			m.SectionTitle,
			strconv.Itoa(m.HeadingLevel),
			strconv.Itoa(m.PageStart),
			strconv.Itoa(m.PageEnd),
			strconv.Itoa(m.ChunkIndex),
			m.Level.String(),
			strings.Join(m.ElementKinds, ";"),
			strconv.FormatBool(m.HasTable),
			strconv.FormatBool(m.HasList),
			strconv.FormatBool(m.HasImage),
			strconv.Itoa(m.CharCount),
			strconv.Itoa(m.WordCount),
			strconv.Itoa(m.EstimatedTokens),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
