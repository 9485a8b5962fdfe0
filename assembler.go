package docskel

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/docskel/fontstats"
	"github.com/tsawler/docskel/images"
	"github.com/tsawler/docskel/layout"
	"github.com/tsawler/docskel/model"
	"github.com/tsawler/docskel/provider"
	"github.com/tsawler/docskel/tables"
)

// assembler drives skeleton construction for a single Parse call. It owns
// all mutable state (section pointer, id sequence), so parsers can be
// shared across goroutines while each document gets its own assembler.
type assembler struct {
	p    *Parser
	skel *model.DocumentSkeleton
	seq  int
}

func newAssembler(p *Parser, sourceID string) *assembler {
	return &assembler{
		p:    p,
		skel: model.NewDocumentSkeleton(sourceID),
	}
}

// nextID derives a stable block id from kind, page and emission sequence.
func (a *assembler) nextID(kind model.BlockKind, page int) string {
	a.seq++
	return fmt.Sprintf("%s-%d-%04d", kind, page, a.seq)
}

// run executes the two logical passes: pass 1 gathers font sizes across all
// pages to fix the document-wide body median, pass 2 assembles pages in
// order. Section state persists across pages; buffers do not.
func (a *assembler) run(prov provider.PageTextProvider) (*model.DocumentSkeleton, error) {
	pageCount := prov.PageCount()
	pageLines := make([][]provider.Line, pageCount)
	failed := make([]bool, pageCount)

	var all []provider.Line
	for i := 0; i < pageCount; i++ {
		lines, err := prov.Lines(i)
		if err != nil {
			a.p.logger.Warn("page text extraction failed, skipping page",
				"page", i+1, "error", err)
			failed[i] = true
			continue
		}
		pageLines[i] = lines
		all = append(all, lines...)
	}
	bodyMedian := fontstats.BodyMedian(all)

	for i := 0; i < pageCount; i++ {
		if failed[i] {
			continue
		}
		regions, err := prov.ImageRegions(i)
		if err != nil {
			a.p.logger.Warn("page image extraction failed, skipping page",
				"page", i+1, "error", err)
			continue
		}

		before := a.skel.BlockCount()
		a.assemblePage(i+1, pageLines[i], regions, bodyMedian)

		if i < pageCount-1 && a.skel.BlockCount() > before {
			a.skel.CurrentSection().AddBlock(&model.PageBreak{
				BlockID:    a.nextID(model.KindPageBreak, i+1),
				PageNumber: i + 1,
			})
		}
	}

	return a.skel, nil
}

// event is one entry in a page's merged reading-order walk: either a text
// line or an image region.
type event struct {
	top, left float64
	lineIdx   int // index into the sorted line slice, or -1
	imageIdx  int // index into the region slice, or -1
}

// detected tracks one table found on the page: its detection result, the
// emitted block (once emitted) and the caption claimed for it (once
// claimed). Caption lines and table emission can occur in either order
// during the walk, so both sides write through this record.
type detected struct {
	table   tables.Table
	block   *model.Table
	caption string
}

// assemblePage walks one page's lines and images in reading order and
// appends the resulting blocks to the current section.
func (a *assembler) assemblePage(page int, lines []provider.Line, regions []provider.ImageRegion, bodyMedian float64) {
	sorted := layout.SortReadingOrder(lines)
	medianHeight := fontstats.MedianLineHeight(sorted)

	dets := make([]*detected, 0)
	consumed := make(map[int]bool)
	startOf := make(map[int][]*detected)
	for _, t := range a.p.detector.Detect(sorted, medianHeight) {
		d := &detected{table: t}
		dets = append(dets, d)
		for _, idx := range t.LineIndexes {
			consumed[idx] = true
		}
		start := t.LineIndexes[0]
		startOf[start] = append(startOf[start], d)
	}

	pageRect := a.pageRect(sorted)

	events := make([]event, 0, len(sorted)+len(regions))
	for i, l := range sorted {
		events = append(events, event{top: l.BBox.Top(), left: l.BBox.Left(), lineIdx: i, imageIdx: -1})
	}
	for i, r := range regions {
		events = append(events, event{top: r.BBox.Top(), left: r.BBox.Left(), lineIdx: -1, imageIdx: i})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].top != events[j].top {
			return events[i].top < events[j].top
		}
		return events[i].left < events[j].left
	})

	imageOrdinal := 0
	for _, ev := range events {
		if ev.imageIdx >= 0 {
			imageOrdinal++
			a.emitImage(page, regions[ev.imageIdx], pageRect, imageOrdinal)
			continue
		}

		line := sorted[ev.lineIdx]

		if consumed[ev.lineIdx] {
			for _, d := range startOf[ev.lineIdx] {
				a.emitTable(page, d)
			}
			continue
		}

		if layout.IsBlank(line) {
			continue
		}

		cls := a.p.classifier.Classify(line, bodyMedian)
		switch cls.Class {
		case layout.ClassHeading:
			a.skel.StartSection(cls.Text, cls.HeadingLevel)

		case layout.ClassCaption:
			if !a.claimCaption(cls.Text, line, dets) {
				// No uncaptioned table on the page: plain paragraph.
				a.emitParagraph(page, cls.Text, "")
			}

		case layout.ClassBulletItem:
			a.skel.CurrentSection().AddBlock(&model.BulletItem{
				BlockID:    a.nextID(model.KindBulletItem, page),
				PageNumber: page,
				Text:       cls.Text,
			})

		case layout.ClassNumberedItem:
			a.skel.CurrentSection().AddBlock(&model.NumberedItem{
				BlockID:    a.nextID(model.KindNumberedItem, page),
				PageNumber: page,
				Text:       cls.Text,
			})

		default:
			a.emitParagraph(page, cls.Text, "")
		}
	}
}

// pageRect estimates the page's bounding rectangle as the union of all text
// line rectangles, falling back to the configured standard page size for
// pages with no (valid) text.
func (a *assembler) pageRect(lines []provider.Line) model.Rect {
	r := model.Rect{}
	for _, l := range lines {
		if l.BBox.IsValid() {
			r = r.Union(l.BBox)
		}
	}
	if !r.IsValid() {
		return model.NewRect(0, 0, a.p.config.PageWidth, a.p.config.PageHeight)
	}
	return r
}

// emitParagraph emits one or more paragraph blocks for a single line's
// text, soft-splitting at the word cap without breaking words. imageRef is
// the image id back-reference for OCR-derived paragraphs, or "".
func (a *assembler) emitParagraph(page int, text, imageRef string) {
	for _, chunk := range splitWords(text, a.p.config.MaxWordsPerParagraph) {
		a.skel.CurrentSection().AddBlock(&model.Paragraph{
			BlockID:    a.nextID(model.KindParagraph, page),
			PageNumber: page,
			Text:       chunk,
			ImageRef:   imageRef,
		})
	}
}

// emitTable converts a detection into a table block. A caption claimed
// earlier in the walk is applied here; one claimed later writes through the
// block pointer.
func (a *assembler) emitTable(page int, d *detected) {
	block := &model.Table{
		BlockID:    a.nextID(model.KindTable, page),
		PageNumber: page,
		Caption:    d.caption,
		Rows:       d.table.Rows,
	}
	d.block = block
	a.skel.CurrentSection().AddBlock(block)
}

// claimCaption attaches a caption line to the geometrically nearest
// not-yet-captioned table on the page: nearest means the minimum absolute
// distance between the line's bottom edge and the table's top edge. It
// reports whether a table claimed the caption.
func (a *assembler) claimCaption(text string, line provider.Line, dets []*detected) bool {
	var best *detected
	bestDist := math.Inf(1)
	for _, d := range dets {
		if d.caption != "" {
			continue
		}
		dist := math.Abs(line.BBox.Bottom() - d.table.BBox.Top())
		if dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	if best == nil {
		return false
	}
	best.caption = text
	if best.block != nil {
		best.block.Caption = text
	}
	return true
}

// emitImage classifies one image region and emits the image block, plus a
// linked paragraph when the recognized text warrants one.
func (a *assembler) emitImage(page int, region provider.ImageRegion, pageRect model.Rect, ordinal int) {
	res := a.p.processor.Process(region, pageRect.Area())

	imageID := fmt.Sprintf("img-%d-%d", page, ordinal)
	block := &model.Image{
		BlockID:     a.nextID(model.KindImage, page),
		PageNumber:  page,
		ImageID:     imageID,
		Data:        region.Data,
		Format:      res.Format,
		PixelWidth:  res.PixelWidth,
		PixelHeight: res.PixelHeight,
	}
	if res.Attachment == images.AttachInline {
		block.Text = res.Text
	}
	a.skel.CurrentSection().AddBlock(block)

	if res.Attachment == images.AttachLinked {
		a.emitParagraph(page, res.Text, imageID)
	}
}

// splitWords splits text into chunks of at most maxWords words each,
// preserving the word sequence exactly. Joining the chunks with single
// spaces reproduces the original word sequence.
func splitWords(text string, maxWords int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWords <= 0 || len(words) <= maxWords {
		return []string{strings.Join(words, " ")}
	}

	var chunks []string
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
