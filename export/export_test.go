package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tsawler/docskel/model"
)

func testSkeleton() *model.DocumentSkeleton {
	skel := model.NewDocumentSkeleton("doc-1")
	skel.CurrentSection().AddBlock(&model.Paragraph{
		BlockID: "para-1-0001", PageNumber: 1, Text: "Preamble.",
	})

	sec := skel.StartSection("Results", 2)
	sec.AddBlock(&model.NumberedItem{
		BlockID: "numbered-1-0002", PageNumber: 1, Text: "first",
	})
	sec.AddBlock(&model.NumberedItem{
		BlockID: "numbered-1-0003", PageNumber: 1, Text: "second",
	})
	sec.AddBlock(&model.Table{
		BlockID: "table-1-0004", PageNumber: 1, Caption: "Table 1: Data",
		Rows: [][]string{{"h1", "h2"}, {"a", "b"}},
	})
	sec.AddBlock(&model.PageBreak{BlockID: "pagebreak-1-0005", PageNumber: 1})
	sec.AddBlock(&model.Image{
		BlockID: "image-2-0006", PageNumber: 2, ImageID: "img-2-1",
		Text: "Slide text.",
	})
	return skel
}

func TestWriteMarkdown(t *testing.T) {
	md, err := Markdown(testSkeleton())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# Document",
		"## Results",
		"Preamble.",
		"1. first",
		"2. second",
		"Table 1: Data",
		"| h1 | h2 |",
		"\n---\n",
		"![img-2-1](img-2-1)",
		"Slide text.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestWriteMarkdown_EmptyPreambleOmitted(t *testing.T) {
	skel := model.NewDocumentSkeleton("doc-1")
	skel.StartSection("Only", 1).AddBlock(&model.Paragraph{
		BlockID: "p", PageNumber: 1, Text: "Text.",
	})

	md, err := Markdown(skel)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(md, "# Document") {
		t.Errorf("empty implicit section rendered:\n%s", md)
	}
	if !strings.HasPrefix(md, "# Only\n") {
		t.Errorf("markdown = %q", md)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testSkeleton(), false); err != nil {
		t.Fatal(err)
	}

	var doc documentJSON
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.SourceID != "doc-1" {
		t.Errorf("source id = %q", doc.SourceID)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Sections))
	}

	results := doc.Sections[1]
	if results.Heading != "Results" || results.Level != 2 {
		t.Errorf("section = %+v", results)
	}
	if len(results.Blocks) != 5 {
		t.Fatalf("got %d blocks, want 5", len(results.Blocks))
	}

	tbl := results.Blocks[2]
	if tbl.Kind != "table" || tbl.Caption != "Table 1: Data" || len(tbl.Rows) != 2 {
		t.Errorf("table block = %+v", tbl)
	}
	img := results.Blocks[4]
	if img.Kind != "image" || img.ImageID != "img-2-1" || img.Text != "Slide text." {
		t.Errorf("image block = %+v", img)
	}
}

func TestWriteJSON_NilSkeleton(t *testing.T) {
	if err := WriteJSON(&bytes.Buffer{}, nil, false); err == nil {
		t.Error("WriteJSON(nil) should fail")
	}
	if _, err := Markdown(nil); err == nil {
		t.Error("Markdown(nil) should fail")
	}
}
