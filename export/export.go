// Package export renders document skeletons to interchange formats.
// Markdown output is meant for humans and LLM prompts; JSON output is a
// stable wire shape with an explicit kind discriminator per block, since the
// skeleton's block types are a closed sum.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/docskel/model"
)

// documentJSON is the wire shape of a skeleton.
type documentJSON struct {
	SourceID string        `json:"source_id"`
	Sections []sectionJSON `json:"sections"`
}

type sectionJSON struct {
	Heading string      `json:"heading"`
	Level   int         `json:"level"`
	Blocks  []blockJSON `json:"blocks"`
}

// blockJSON flattens the block sum type; Kind discriminates which of the
// optional fields are meaningful.
type blockJSON struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Page int    `json:"page"`

	Text     string `json:"text,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`

	Caption string     `json:"caption,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`

	ImageID     string `json:"image_id,omitempty"`
	Format      string `json:"format,omitempty"`
	PixelWidth  int    `json:"pixel_width,omitempty"`
	PixelHeight int    `json:"pixel_height,omitempty"`
}

// WriteJSON writes the skeleton as JSON. Image bytes are not included; the
// image id is the handle for retrieving them from the skeleton.
func WriteJSON(w io.Writer, skel *model.DocumentSkeleton, pretty bool) error {
	if skel == nil {
		return fmt.Errorf("skeleton is nil")
	}

	doc := documentJSON{SourceID: skel.SourceID}
	for _, section := range skel.Sections {
		sec := sectionJSON{
			Heading: section.Heading,
			Level:   section.Level,
			Blocks:  make([]blockJSON, 0, len(section.Blocks)),
		}
		for _, b := range section.Blocks {
			sec.Blocks = append(sec.Blocks, toBlockJSON(b))
		}
		doc.Sections = append(doc.Sections, sec)
	}

	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(doc)
}

func toBlockJSON(b model.Block) blockJSON {
	out := blockJSON{Kind: b.Kind().String(), ID: b.ID(), Page: b.Page()}
	switch blk := b.(type) {
	case *model.Paragraph:
		out.Text = blk.Text
		out.ImageRef = blk.ImageRef
	case *model.BulletItem:
		out.Text = blk.Text
	case *model.NumberedItem:
		out.Text = blk.Text
	case *model.Table:
		out.Caption = blk.Caption
		out.Rows = blk.Rows
	case *model.Image:
		out.Text = blk.Text
		out.ImageID = blk.ImageID
		out.Format = blk.Format
		out.PixelWidth = blk.PixelWidth
		out.PixelHeight = blk.PixelHeight
	}
	return out
}

// WriteMarkdown writes the skeleton as Markdown: sections as headings,
// tables as pipe tables, page breaks as thematic breaks.
func WriteMarkdown(w io.Writer, skel *model.DocumentSkeleton) error {
	if skel == nil {
		return fmt.Errorf("skeleton is nil")
	}

	first := true
	for _, section := range skel.Sections {
		if len(section.Blocks) == 0 && section.Heading == model.DefaultSectionHeading {
			// Empty implicit preamble adds nothing.
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		heading := strings.Repeat("#", clampLevel(section.Level)) + " " + section.Heading + "\n"
		if _, err := io.WriteString(w, heading); err != nil {
			return err
		}
		if err := writeBlocks(w, section.Blocks); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders the skeleton to a Markdown string.
func Markdown(skel *model.DocumentSkeleton) (string, error) {
	var sb strings.Builder
	if err := WriteMarkdown(&sb, skel); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeBlocks(w io.Writer, blocks []model.Block) error {
	number := 0
	for _, b := range blocks {
		var text string
		switch blk := b.(type) {
		case *model.Paragraph:
			number = 0
			text = "\n" + blk.Text + "\n"

		case *model.BulletItem:
			number = 0
			text = "- " + blk.Text + "\n"

		case *model.NumberedItem:
			number++
			text = fmt.Sprintf("%d. %s\n", number, blk.Text)

		case *model.Table:
			number = 0
			text = "\n"
			if blk.Caption != "" {
				text += blk.Caption + "\n\n"
			}
			text += blk.ToMarkdown()

		case *model.Image:
			number = 0
			text = fmt.Sprintf("\n![%s](%s)\n", blk.ImageID, blk.ImageID)
			if blk.Text != "" {
				text += "\n" + blk.Text + "\n"
			}

		case *model.PageBreak:
			number = 0
			text = "\n---\n"
		}

		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
