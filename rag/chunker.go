// Package rag turns document skeletons into retrieval chunks for RAG
// (Retrieval-Augmented Generation) workflows. Chunking follows the skeleton's
// structure: sections stay together when they fit, oversized sections split
// at block boundaries, and oversized single blocks split at sentence
// boundaries, so chunks carry complete thoughts rather than arbitrary
// character windows.
package rag

import (
	"fmt"
	"strings"

	"github.com/tsawler/docskel/model"
)

// ChunkLevel represents the structural level a chunk was cut at.
type ChunkLevel int

const (
	// ChunkLevelSection is a whole section in one chunk.
	ChunkLevelSection ChunkLevel = iota
	// ChunkLevelBlock is a run of blocks from a section too large for one chunk.
	ChunkLevelBlock
	// ChunkLevelSentence is a sentence run from a single oversized block.
	ChunkLevelSentence
)

// String returns a human-readable representation of the chunk level.
func (cl ChunkLevel) String() string {
	switch cl {
	case ChunkLevelSection:
		return "section"
	case ChunkLevelBlock:
		return "block"
	case ChunkLevelSentence:
		return "sentence"
	default:
		return "unknown"
	}
}

// ChunkMetadata carries a chunk's context within the source document.
type ChunkMetadata struct {
	// SourceID identifies the source document.
	SourceID string `json:"source_id,omitempty"`

	// SectionTitle is the heading of the section the chunk came from.
	SectionTitle string `json:"section_title,omitempty"`

	// HeadingLevel is the section's heading level (1-3).
	HeadingLevel int `json:"heading_level,omitempty"`

	// PageStart and PageEnd are the 1-based page span of the chunk content.
	PageStart int `json:"page_start"`
	PageEnd   int `json:"page_end"`

	// ChunkIndex is the chunk's position in the document (0-based).
	ChunkIndex int `json:"chunk_index"`

	// TotalChunks is the number of chunks produced for the document.
	TotalChunks int `json:"total_chunks,omitempty"`

	// Level is the structural level the chunk was cut at.
	Level ChunkLevel `json:"level"`

	// BlockIDs are the skeleton block ids the chunk text came from.
	BlockIDs []string `json:"block_ids,omitempty"`

	// ElementKinds lists the distinct block kinds in the chunk.
	ElementKinds []string `json:"element_kinds,omitempty"`

	// Content flags for retrieval-time filtering.
	HasTable bool `json:"has_table,omitempty"`
	HasList  bool `json:"has_list,omitempty"`
	HasImage bool `json:"has_image,omitempty"`

	// CharCount, WordCount and EstimatedTokens describe the chunk text.
	// EstimatedTokens uses chars/4 as a rough approximation.
	CharCount       int `json:"char_count"`
	WordCount       int `json:"word_count"`
	EstimatedTokens int `json:"estimated_tokens"`
}

// Chunk is one retrieval unit of text cut from a skeleton.
type Chunk struct {
	// ID is a stable identifier for this chunk.
	ID string `json:"id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// TextWithContext is the text with the section heading prepended, for
	// better retrieval.
	TextWithContext string `json:"text_with_context,omitempty"`

	// Metadata carries the chunk's document context.
	Metadata ChunkMetadata `json:"metadata"`
}

// NewChunk creates a chunk and fills in the text statistics.
func NewChunk(id, text string, metadata ChunkMetadata) *Chunk {
	metadata.CharCount = len(text)
	metadata.WordCount = len(strings.Fields(text))
	metadata.EstimatedTokens = len(text) / 4

	c := &Chunk{ID: id, Text: text, Metadata: metadata}
	if metadata.SectionTitle != "" {
		c.TextWithContext = fmt.Sprintf("[%s]\n\n%s", metadata.SectionTitle, c.Text)
	} else {
		c.TextWithContext = c.Text
	}
	return c
}

// ChunkerConfig holds configuration options for the chunker.
type ChunkerConfig struct {
	// MaxChunkSize is the hard limit for chunk size in characters. Sections
	// above it split at block boundaries, single blocks above it split at
	// sentence boundaries.
	// Default: 2000
	MaxChunkSize int

	// PreserveTableCoherence keeps tables as atomic units even above
	// MaxChunkSize.
	// Default: true
	PreserveTableCoherence bool

	// IncludeSectionContext prepends the section heading when rendering
	// TextWithContext.
	// Default: true
	IncludeSectionContext bool

	// IDPrefix is the prefix for generated chunk IDs.
	// Default: "chunk"
	IDPrefix string
}

// DefaultChunkerConfig returns sensible default configuration.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxChunkSize:           2000,
		PreserveTableCoherence: true,
		IncludeSectionContext:  true,
		IDPrefix:               "chunk",
	}
}

// Chunker cuts document skeletons into retrieval chunks.
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a chunker with default configuration.
func NewChunker() *Chunker {
	return &Chunker{config: DefaultChunkerConfig()}
}

// NewChunkerWithConfig creates a chunker with custom configuration.
func NewChunkerWithConfig(config ChunkerConfig) *Chunker {
	return &Chunker{config: config}
}

// ChunkResult contains the chunking output.
type ChunkResult struct {
	// Chunks are the generated chunks in reading order.
	Chunks []*Chunk

	// SourceID is the source document id.
	SourceID string

	// Stats describe the chunking outcome.
	Stats ChunkStats
}

// ChunkStats contains statistics about the chunking process.
type ChunkStats struct {
	TotalChunks     int
	TotalCharacters int
	TotalWords      int
	TotalTokensEst  int
	AvgChunkSize    int
	SectionChunks   int
	BlockChunks     int
	SentenceChunks  int
}

// element is one rendered block within a section.
type element struct {
	text    string
	kind    model.BlockKind
	page    int
	blockID string
	atomic  bool // never sentence-split (tables)
}

// Chunk cuts a skeleton into retrieval chunks.
func (c *Chunker) Chunk(skel *model.DocumentSkeleton) (*ChunkResult, error) {
	if skel == nil {
		return nil, fmt.Errorf("skeleton is nil")
	}

	result := &ChunkResult{SourceID: skel.SourceID}

	index := 0
	for _, section := range skel.Sections {
		elems := renderSection(section)
		if len(elems) == 0 {
			continue
		}
		result.Chunks = append(result.Chunks, c.chunkSection(section, elems, &index)...)
	}

	for _, chunk := range result.Chunks {
		chunk.Metadata.TotalChunks = len(result.Chunks)
		chunk.Metadata.SourceID = skel.SourceID
	}
	result.Stats = calculateStats(result.Chunks)
	return result, nil
}

// renderSection flattens a section's blocks into text elements. List items
// get their markers back so chunk text reads like the source; numbered runs
// are renumbered from 1 within the section.
func renderSection(section *model.Section) []element {
	var elems []element
	number := 0

	for _, b := range section.Blocks {
		switch blk := b.(type) {
		case *model.Paragraph:
			number = 0
			elems = append(elems, element{
				text: blk.Text, kind: model.KindParagraph,
				page: blk.PageNumber, blockID: blk.BlockID,
			})

		case *model.BulletItem:
			number = 0
			elems = append(elems, element{
				text: "- " + blk.Text, kind: model.KindBulletItem,
				page: blk.PageNumber, blockID: blk.BlockID,
			})

		case *model.NumberedItem:
			number++
			elems = append(elems, element{
				text: fmt.Sprintf("%d. %s", number, blk.Text), kind: model.KindNumberedItem,
				page: blk.PageNumber, blockID: blk.BlockID,
			})

		case *model.Table:
			number = 0
			text := blk.ToMarkdown()
			if blk.Caption != "" {
				text = blk.Caption + "\n" + text
			}
			elems = append(elems, element{
				text: text, kind: model.KindTable,
				page: blk.PageNumber, blockID: blk.BlockID, atomic: true,
			})

		case *model.Image:
			number = 0
			if blk.Text == "" {
				continue
			}
			elems = append(elems, element{
				text: blk.Text, kind: model.KindImage,
				page: blk.PageNumber, blockID: blk.BlockID,
			})

		case *model.PageBreak:
			// Not content.
		}
	}
	return elems
}

// chunkSection emits chunks for one section: whole section when it fits,
// block runs otherwise, sentence runs for single oversized blocks.
func (c *Chunker) chunkSection(section *model.Section, elems []element, index *int) []*Chunk {
	total := 0
	for i, e := range elems {
		total += len(e.text)
		if i > 0 {
			total += 2
		}
	}
	if total <= c.config.MaxChunkSize {
		return []*Chunk{c.createChunk(section, elems, ChunkLevelSection, index)}
	}

	var chunks []*Chunk
	var pending []element
	pendingLen := 0

	flush := func() {
		if len(pending) == 0 {
			return
		}
		chunks = append(chunks, c.createChunk(section, pending, ChunkLevelBlock, index))
		pending = nil
		pendingLen = 0
	}

	for _, e := range elems {
		added := len(e.text)
		if pendingLen > 0 {
			added += 2
		}
		if pendingLen+added > c.config.MaxChunkSize {
			flush()
			added = len(e.text)
		}

		if len(e.text) > c.config.MaxChunkSize {
			flush()
			if e.atomic && c.config.PreserveTableCoherence {
				chunks = append(chunks, c.createChunk(section, []element{e}, ChunkLevelBlock, index))
				continue
			}
			chunks = append(chunks, c.chunkSentences(section, e, index)...)
			continue
		}

		pending = append(pending, e)
		pendingLen += added
	}
	flush()
	return chunks
}

// chunkSentences splits one oversized element into sentence-run chunks.
func (c *Chunker) chunkSentences(section *model.Section, e element, index *int) []*Chunk {
	var chunks []*Chunk
	var sb strings.Builder

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		part := e
		part.text = sb.String()
		chunk := c.createChunk(section, []element{part}, ChunkLevelSentence, index)
		chunks = append(chunks, chunk)
		sb.Reset()
	}

	for _, sentence := range SplitSentences(e.text) {
		added := len(sentence)
		if sb.Len() > 0 {
			added++
		}
		if sb.Len()+added > c.config.MaxChunkSize {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(sentence)
	}
	flush()
	return chunks
}

// createChunk builds a chunk from a run of elements of one section.
func (c *Chunker) createChunk(section *model.Section, elems []element, level ChunkLevel, index *int) *Chunk {
	var sb strings.Builder
	meta := ChunkMetadata{
		HeadingLevel: section.Level,
		ChunkIndex:   *index,
		Level:        level,
	}
	if c.config.IncludeSectionContext {
		meta.SectionTitle = section.Heading
	}

	kinds := map[string]bool{}
	for i, e := range elems {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(e.text)

		meta.BlockIDs = append(meta.BlockIDs, e.blockID)
		if !kinds[e.kind.String()] {
			kinds[e.kind.String()] = true
			meta.ElementKinds = append(meta.ElementKinds, e.kind.String())
		}
		switch e.kind {
		case model.KindTable:
			meta.HasTable = true
		case model.KindBulletItem, model.KindNumberedItem:
			meta.HasList = true
		case model.KindImage:
			meta.HasImage = true
		}
		if meta.PageStart == 0 || e.page < meta.PageStart {
			meta.PageStart = e.page
		}
		if e.page > meta.PageEnd {
			meta.PageEnd = e.page
		}
	}

	id := fmt.Sprintf("%s_%d", c.config.IDPrefix, *index)
	*index++
	return NewChunk(id, sb.String(), meta)
}

// calculateStats computes aggregate statistics over the produced chunks.
func calculateStats(chunks []*Chunk) ChunkStats {
	stats := ChunkStats{TotalChunks: len(chunks)}
	for _, chunk := range chunks {
		stats.TotalCharacters += chunk.Metadata.CharCount
		stats.TotalWords += chunk.Metadata.WordCount
		stats.TotalTokensEst += chunk.Metadata.EstimatedTokens
		switch chunk.Metadata.Level {
		case ChunkLevelSection:
			stats.SectionChunks++
		case ChunkLevelBlock:
			stats.BlockChunks++
		case ChunkLevelSentence:
			stats.SentenceChunks++
		}
	}
	if len(chunks) > 0 {
		stats.AvgChunkSize = stats.TotalCharacters / len(chunks)
	}
	return stats
}
