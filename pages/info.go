package pages

import (
	"fmt"

	"github.com/carouselpdf/carousel/core"
)

// DocumentInformation is a view over the trailer's /Info dictionary.
// String entries are PDF text strings; accessors decode them (UTF-16BE
// with byte-order mark, or the single-byte encoding otherwise).
type DocumentInformation struct {
	doc  *core.Document
	dict core.Dict
}

// NewDocumentInformation wraps an existing information dictionary.
func NewDocumentInformation(doc *core.Document, dict core.Dict) *DocumentInformation {
	return &DocumentInformation{doc: doc, dict: dict}
}

// Dictionary returns the underlying dictionary.
func (i *DocumentInformation) Dictionary() core.Dict {
	return i.dict
}

func (i *DocumentInformation) text(key core.Name) string {
	if s, ok := i.doc.Resolve(i.dict.Get(key)).(core.String); ok {
		return s.Text()
	}
	return ""
}

func (i *DocumentInformation) setText(key core.Name, value string) {
	if value == "" {
		i.dict.Delete(key)
		return
	}
	i.dict.Set(key, core.NewString(value))
}

// Title returns the document title.
func (i *DocumentInformation) Title() string { return i.text("Title") }

// SetTitle sets the document title; an empty value removes the entry.
func (i *DocumentInformation) SetTitle(v string) { i.setText("Title", v) }

// Author returns the document author.
func (i *DocumentInformation) Author() string { return i.text("Author") }

// SetAuthor sets the document author.
func (i *DocumentInformation) SetAuthor(v string) { i.setText("Author", v) }

// Subject returns the document subject.
func (i *DocumentInformation) Subject() string { return i.text("Subject") }

// SetSubject sets the document subject.
func (i *DocumentInformation) SetSubject(v string) { i.setText("Subject", v) }

// Keywords returns the document keywords.
func (i *DocumentInformation) Keywords() string { return i.text("Keywords") }

// SetKeywords sets the document keywords.
func (i *DocumentInformation) SetKeywords(v string) { i.setText("Keywords", v) }

// Creator returns the application that created the original document.
func (i *DocumentInformation) Creator() string { return i.text("Creator") }

// SetCreator sets the creating application.
func (i *DocumentInformation) SetCreator(v string) { i.setText("Creator", v) }

// Producer returns the application that produced the PDF.
func (i *DocumentInformation) Producer() string { return i.text("Producer") }

// SetProducer sets the producing application.
func (i *DocumentInformation) SetProducer(v string) { i.setText("Producer", v) }

// CreationDate returns the raw creation date string (PDF date format,
// e.g. D:20260101120000Z).
func (i *DocumentInformation) CreationDate() string { return i.text("CreationDate") }

// SetCreationDate sets the creation date string.
func (i *DocumentInformation) SetCreationDate(v string) { i.setText("CreationDate", v) }

// ModificationDate returns the raw modification date string.
func (i *DocumentInformation) ModificationDate() string { return i.text("ModDate") }

// SetModificationDate sets the modification date string.
func (i *DocumentInformation) SetModificationDate(v string) { i.setText("ModDate", v) }

// Trapped returns the /Trapped name: True, False or Unknown.
func (i *DocumentInformation) Trapped() string {
	name, _ := i.dict.GetName("Trapped")
	return string(name)
}

// SetTrapped sets the /Trapped entry; only True, False and Unknown are
// legal values.
func (i *DocumentInformation) SetTrapped(v string) error {
	switch v {
	case "True", "False", "Unknown":
		i.dict.Set("Trapped", core.Name(v))
		return nil
	case "":
		i.dict.Delete("Trapped")
		return nil
	}
	return fmt.Errorf("invalid /Trapped value %q", v)
}
