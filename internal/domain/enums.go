package domain

import (
	"path/filepath"
	"strings"
)

// SourceFormat classifies how an uploaded invoice was ingested.
type SourceFormat string

const (
	SourcePDF   SourceFormat = "pdf"
	SourceXML   SourceFormat = "xml"
	SourceImage SourceFormat = "image"
)

// AllowedExtensions maps file extensions (without dot, lowercase) to the
// source format they are processed as.
var AllowedExtensions = map[string]SourceFormat{
	"pdf":  SourcePDF,
	"xml":  SourceXML,
	"png":  SourceImage,
	"jpg":  SourceImage,
	"jpeg": SourceImage,
}

// ImageMediaTypes maps image extensions to their MIME media type.
var ImageMediaTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// ExtensionOf returns the lowercase extension of filename without the dot,
// or "" if the filename has no extension.
func ExtensionOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

// FormatForFilename returns the source format for a filename based on its
// extension, or false if the extension is not supported.
func FormatForFilename(filename string) (SourceFormat, bool) {
	format, ok := AllowedExtensions[ExtensionOf(filename)]
	return format, ok
}
