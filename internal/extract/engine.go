// Package extract converts raw uploaded invoice files into normalized
// documents: plain text for PDF and XML sources, a base64 payload for images.
package extract

import (
	"fmt"
	"log"

	"invoiceagent/internal/domain"
)

// Engine turns an uploaded file into an ExtractedDocument. Extraction
// failures degrade to empty content instead of failing the file; only an
// unsupported extension is an error.
type Engine struct{}

// NewEngine creates an extraction Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Extract reads the file at path and produces the normalized document for the
// format implied by originalName's extension.
func (e *Engine) Extract(path, originalName string) (*domain.ExtractedDocument, error) {
	ext := domain.ExtensionOf(originalName)
	format, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFormat, ext)
	}

	doc := &domain.ExtractedDocument{
		SourceFormat: format,
		Filename:     originalName,
	}

	switch format {
	case domain.SourcePDF:
		text, err := extractPDFText(path)
		if err != nil {
			log.Printf("extract: pdf extraction degraded for %s: %v", originalName, err)
		}
		doc.Text = text
	case domain.SourceXML:
		tree, err := parseXMLTree(path)
		if err != nil {
			log.Printf("extract: xml parsing degraded for %s: %v", originalName, err)
		}
		doc.Text = renderXMLTree(tree)
	case domain.SourceImage:
		payload, err := encodeImageFile(path)
		if err != nil {
			log.Printf("extract: image encoding degraded for %s: %v", originalName, err)
		}
		doc.ImagePayload = payload
		doc.ImageMediaType = domain.ImageMediaTypes[ext]
	}

	return doc, nil
}
