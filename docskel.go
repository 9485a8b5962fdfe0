// Package docskel reconstructs the structural skeleton of a document
// (sections, headings, paragraphs, lists, tables and images) from the
// positioned text a rendering/OCR backend emits, for downstream
// retrieval-augmented generation.
//
// Basic usage over PDF bytes:
//
//	skel, err := docskel.Parse(pdfBytes, "report-2024")
//	if err != nil {
//	    // handle error
//	}
//	for _, section := range skel.Sections {
//	    fmt.Println(section.Heading)
//	}
//
// With options and an injected provider:
//
//	p := docskel.New(
//	    docskel.WithOCR(ocrClient),
//	    docskel.WithConfig(cfg),
//	)
//	skel, err := p.ParseProvider(myProvider, "doc-1")
//
// The extraction is deterministic: identical input bytes (and identical OCR
// output) produce structurally identical skeletons with identical block ids.
package docskel

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/docskel/images"
	"github.com/tsawler/docskel/layout"
	"github.com/tsawler/docskel/model"
	"github.com/tsawler/docskel/pdfprovider"
	"github.com/tsawler/docskel/provider"
	"github.com/tsawler/docskel/tables"
)

// ErrDocumentLoad indicates the document bytes could not be opened at all.
// It is returned before any page processing begins; no partial skeleton
// accompanies it.
var ErrDocumentLoad = errors.New("document load failed")

// Parser extracts document skeletons. A Parser is immutable after
// construction and safe for concurrent use across documents: each Parse
// call owns its own section state, font statistics and buffers.
type Parser struct {
	config Config
	ocr    provider.OCR
	logger *slog.Logger

	classifier *layout.Classifier
	detector   *tables.Detector
	processor  *images.Processor
}

// Option configures a Parser.
type Option func(*Parser)

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(p *Parser) { p.config = config }
}

// WithOCR supplies the optional text-recognition capability. Without it,
// image regions are emitted without recognized text.
func WithOCR(ocr provider.OCR) Option {
	return func(p *Parser) { p.ocr = ocr }
}

// WithLogger supplies the logger for page-skip and OCR diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{config: DefaultConfig()}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.classifier = layout.NewClassifier(p.config.Classifier)
	p.detector = tables.NewDetectorWithConfig(p.config.Tables)
	p.processor = images.NewProcessor(p.config.Images, p.ocr, p.logger)
	return p
}

// Parse extracts the skeleton of a PDF document from raw bytes using the
// default provider. sourceID identifies the document in the result.
func (p *Parser) Parse(documentBytes []byte, sourceID string) (*model.DocumentSkeleton, error) {
	prov, err := pdfprovider.New(documentBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentLoad, err)
	}
	return p.ParseProvider(prov, sourceID)
}

// ParseProvider extracts the skeleton from an already-opened page text
// provider. Pages are processed strictly in order; a page whose extraction
// fails is skipped (and logged) rather than aborting the document.
func (p *Parser) ParseProvider(prov provider.PageTextProvider, sourceID string) (*model.DocumentSkeleton, error) {
	a := newAssembler(p, sourceID)
	return a.run(prov)
}

// Parse extracts a skeleton from PDF bytes with the default parser
// configuration and no OCR capability.
func Parse(documentBytes []byte, sourceID string) (*model.DocumentSkeleton, error) {
	return New().Parse(documentBytes, sourceID)
}

// ParseProvider extracts a skeleton from a provider with the default parser
// configuration and no OCR capability.
func ParseProvider(prov provider.PageTextProvider, sourceID string) (*model.DocumentSkeleton, error) {
	return New().ParseProvider(prov, sourceID)
}
