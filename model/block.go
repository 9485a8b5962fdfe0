package model

// BlockKind identifies the concrete type of a content block.
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindParagraph
	KindBulletItem
	KindNumberedItem
	KindTable
	KindImage
	KindPageBreak
)

// String returns a short slug for the block kind. The slug is also used as
// the prefix of deterministic block ids.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "para"
	case KindBulletItem:
		return "bullet"
	case KindNumberedItem:
		return "numbered"
	case KindTable:
		return "table"
	case KindImage:
		return "image"
	case KindPageBreak:
		return "pagebreak"
	default:
		return "unknown"
	}
}

// Block is the interface implemented by every content block variant.
// It is a closed union: the only implementations live in this package.
type Block interface {
	// Kind identifies the concrete variant.
	Kind() BlockKind

	// Page returns the 1-based page number the block was extracted from.
	Page() int

	// ID returns the block's stable identifier, unique within its document
	// and derived from kind, page and emission sequence.
	ID() string
}

// Paragraph is a block of body text. When the paragraph carries text
// recognized from a nearby image, ImageRef holds that image's ImageID so
// consumers can trace provenance.
type Paragraph struct {
	BlockID    string
	PageNumber int
	Text       string
	ImageRef   string
}

func (p *Paragraph) Kind() BlockKind { return KindParagraph }
func (p *Paragraph) Page() int       { return p.PageNumber }
func (p *Paragraph) ID() string      { return p.BlockID }

// BulletItem is a single item of a bulleted list, with the bullet marker
// already stripped from the text.
type BulletItem struct {
	BlockID    string
	PageNumber int
	Text       string
}

func (b *BulletItem) Kind() BlockKind { return KindBulletItem }
func (b *BulletItem) Page() int       { return b.PageNumber }
func (b *BulletItem) ID() string      { return b.BlockID }

// NumberedItem is a single item of a numbered (or lettered) list, with the
// marker already stripped from the text.
type NumberedItem struct {
	BlockID    string
	PageNumber int
	Text       string
}

func (n *NumberedItem) Kind() BlockKind { return KindNumberedItem }
func (n *NumberedItem) Page() int       { return n.PageNumber }
func (n *NumberedItem) ID() string      { return n.BlockID }

// Image is an image region. Text is non-empty only when recognized text was
// attached directly to the image (full-page scans and slides). PixelWidth
// and PixelHeight are zero when the raster bytes could not be decoded.
type Image struct {
	BlockID     string
	PageNumber  int
	ImageID     string
	Data        []byte
	Text        string
	Format      string
	PixelWidth  int
	PixelHeight int
}

func (i *Image) Kind() BlockKind { return KindImage }
func (i *Image) Page() int       { return i.PageNumber }
func (i *Image) ID() string      { return i.BlockID }

// PageBreak marks the boundary between two pages.
type PageBreak struct {
	BlockID    string
	PageNumber int
}

func (p *PageBreak) Kind() BlockKind { return KindPageBreak }
func (p *PageBreak) Page() int       { return p.PageNumber }
func (p *PageBreak) ID() string      { return p.BlockID }
