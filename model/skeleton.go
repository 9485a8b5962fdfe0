package model

import "strings"

// DefaultSectionHeading is the heading of the implicit section that holds
// content appearing before the first detected heading.
const DefaultSectionHeading = "Document"

// Section is a heading together with the ordered content blocks that follow
// it, up to the next heading. A section may span multiple pages.
type Section struct {
	Heading string
	Level   int // 1-3
	Blocks  []Block
}

// AddBlock appends a block to the section.
func (s *Section) AddBlock(b Block) {
	s.Blocks = append(s.Blocks, b)
}

// Text concatenates the text of all text-bearing blocks in the section.
func (s *Section) Text() string {
	var sb strings.Builder
	for _, b := range s.Blocks {
		switch blk := b.(type) {
		case *Paragraph:
			sb.WriteString(blk.Text)
			sb.WriteString("\n")
		case *BulletItem:
			sb.WriteString(blk.Text)
			sb.WriteString("\n")
		case *NumberedItem:
			sb.WriteString(blk.Text)
			sb.WriteString("\n")
		case *Image:
			if blk.Text != "" {
				sb.WriteString(blk.Text)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// DocumentSkeleton is the root of an extracted document structure. It is
// built in a single pass per document and returned immutable to the caller.
type DocumentSkeleton struct {
	SourceID string
	Sections []*Section
}

// NewDocumentSkeleton creates a skeleton with the default section in place,
// so the at-least-one-section invariant holds from the start.
func NewDocumentSkeleton(sourceID string) *DocumentSkeleton {
	return &DocumentSkeleton{
		SourceID: sourceID,
		Sections: []*Section{
			{Heading: DefaultSectionHeading, Level: 1},
		},
	}
}

// StartSection appends a new section and returns it. Subsequent blocks
// belong to this section until the next StartSection call.
func (d *DocumentSkeleton) StartSection(heading string, level int) *Section {
	s := &Section{Heading: heading, Level: level}
	d.Sections = append(d.Sections, s)
	return s
}

// CurrentSection returns the most recently started section.
func (d *DocumentSkeleton) CurrentSection() *Section {
	return d.Sections[len(d.Sections)-1]
}

// BlockCount returns the total number of blocks across all sections.
func (d *DocumentSkeleton) BlockCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Blocks)
	}
	return n
}

// AllBlocks returns every block in document order.
func (d *DocumentSkeleton) AllBlocks() []Block {
	blocks := make([]Block, 0, d.BlockCount())
	for _, s := range d.Sections {
		blocks = append(blocks, s.Blocks...)
	}
	return blocks
}

// Tables returns all table blocks in document order.
func (d *DocumentSkeleton) Tables() []*Table {
	var tables []*Table
	for _, b := range d.AllBlocks() {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// FindBlock returns the block with the given id, or nil if absent.
func (d *DocumentSkeleton) FindBlock(id string) Block {
	for _, b := range d.AllBlocks() {
		if b.ID() == id {
			return b
		}
	}
	return nil
}
