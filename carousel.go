// Package carousel is a structure-preserving PDF document parser: it
// reads a PDF 1.x byte stream into its COS object graph and exposes the
// typed document layer over it.
//
// Basic usage:
//
//	doc, err := carousel.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	fmt.Println(doc.NumberOfPages())
//
// The parser is deliberately tolerant of the malformations common in
// real-world files: garbage before the header, missing endobj keywords,
// bytes after the final %%EOF, and files whose trailer only exists as
// cross-reference stream dictionaries all parse. Hard corruption still
// fails, and never yields a partial document.
//
// The lower-level core package exposes the object model and the
// document store directly.
package carousel

import (
	"io"

	"github.com/carouselpdf/carousel/core"
	"github.com/carouselpdf/carousel/pages"
)

// Load parses a document from a reader. The reader is closed when
// parsing finishes, if it is closable.
func Load(r io.Reader, opts ...core.Option) (*pages.Document, error) {
	return pages.Load(r, opts...)
}

// Open parses a document from a file.
func Open(filename string, opts ...core.Option) (*pages.Document, error) {
	return pages.Open(filename, opts...)
}

// New creates an empty document with a catalog and an empty page tree.
func New() (*pages.Document, error) {
	return pages.New()
}
