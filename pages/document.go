package pages

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/carouselpdf/carousel/core"
	"github.com/carouselpdf/carousel/encryption"
)

// importCopyBufferSize is the buffer used when re-materializing content
// streams into another document's scratch file.
const importCopyBufferSize = 10 * 1024

// Document wraps a COS document and exposes the typed views over it.
// Information, catalog and encryption-dictionary views are cached; the
// encryption view in particular survives decryption, which strips the
// /Encrypt entry from the trailer.
type Document struct {
	cos *core.Document

	information *DocumentInformation
	catalog     *Catalog
	encryption  *encryption.Dictionary

	decryptedWithOwner bool
}

// Load parses a document from a reader.
func Load(r io.Reader, opts ...core.Option) (*Document, error) {
	cosDoc, err := core.NewParser(r, opts...).Parse()
	if err != nil {
		return nil, err
	}
	return FromCOS(cosDoc), nil
}

// Open parses a document from a file.
func Open(filename string, opts ...core.Option) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	// The parser closes the source when it is done.
	return Load(f, opts...)
}

// FromCOS wraps an already-parsed COS document.
func FromCOS(cosDoc *core.Document) *Document {
	return &Document{cos: cosDoc}
}

// New creates an empty document: a trailer pointing at a fresh catalog
// with an empty page tree. At least one page must be added before the
// document is useful to a viewer.
func New() (*Document, error) {
	scratch, err := core.NewScratchFile("")
	if err != nil {
		return nil, err
	}
	cosDoc := core.NewDocument(scratch)
	trailer := core.Dict{core.NameRoot: newCatalogDict()}
	cosDoc.SetTrailer(trailer)
	return FromCOS(cosDoc), nil
}

// COSDocument returns the underlying COS document.
func (d *Document) COSDocument() *core.Document {
	return d.cos
}

// Information returns the document information view, creating an empty
// /Info dictionary when the trailer lacks one. Never nil.
func (d *Document) Information() *DocumentInformation {
	if d.information == nil {
		trailer := d.ensureTrailer()
		dict, ok := d.cos.Resolve(trailer.Get(core.NameInfo)).(core.Dict)
		if !ok {
			dict = core.Dict{}
			trailer.Set(core.NameInfo, dict)
		}
		d.information = NewDocumentInformation(d.cos, dict)
	}
	return d.information
}

// SetInformation replaces the document information dictionary.
func (d *Document) SetInformation(info *DocumentInformation) {
	d.information = info
	d.ensureTrailer().Set(core.NameInfo, info.Dictionary())
}

// Catalog returns the document catalog view, creating an empty catalog
// when the trailer lacks a /Root. Never nil.
func (d *Document) Catalog() *Catalog {
	if d.catalog == nil {
		trailer := d.ensureTrailer()
		dict, ok := d.cos.Resolve(trailer.Get(core.NameRoot)).(core.Dict)
		if !ok {
			dict = newCatalogDict()
			trailer.Set(core.NameRoot, dict)
		}
		d.catalog = NewCatalog(d.cos, dict)
	}
	return d.catalog
}

func (d *Document) ensureTrailer() core.Dict {
	trailer := d.cos.Trailer()
	if trailer == nil {
		trailer = core.Dict{}
		d.cos.SetTrailer(trailer)
	}
	return trailer
}

// NumberOfPages returns the page count from the root page-tree node.
func (d *Document) NumberOfPages() int {
	node := d.Catalog().Pages()
	if node == nil {
		return 0
	}
	return int(node.Count())
}

// AddPage appends a page to the root of the page hierarchy and updates
// the tree counts.
func (d *Document) AddPage(page *Page) {
	root := d.Catalog().ensurePages()
	root.appendKid(page.Dictionary())
	page.SetParent(root)
	root.UpdateCount()
}

// RemovePage detaches a page from its parent node. On success the
// counts are recomputed from the root, since every ancestor of the
// removed page is now stale. It reports whether the page was found.
func (d *Document) RemovePage(page *Page) bool {
	parent := page.Parent()
	if parent == nil {
		return false
	}
	removed := parent.removeKid(page.Dictionary())
	if removed {
		if root := d.Catalog().Pages(); root != nil {
			root.UpdateCount()
		}
	}
	return removed
}

// RemovePageAt removes the page at the given zero-based index.
func (d *Document) RemovePageAt(index int) bool {
	all := d.Catalog().AllPages()
	if index < 0 || index >= len(all) {
		return false
	}
	return d.RemovePage(all[index])
}

// ImportPage copies a page from another document into this one: the
// page dictionary is cloned and its content streams are re-materialized
// into this document's scratch file with a buffered copy. The imported
// page is appended to the root node and returned.
//
// Importing from or into an encrypted document fails with ErrEncrypted;
// the payload bytes would be ciphertext.
func (d *Document) ImportPage(page *Page) (*Page, error) {
	if d.cos.IsEncrypted() || page.doc.IsEncrypted() {
		return nil, core.ErrEncrypted
	}

	imported := PageFromDict(d.cos, page.Dictionary().Clone())
	imported.dict.Delete(core.NameParent)

	contents, err := page.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read page contents: %w", err)
	}
	if len(contents) > 0 {
		copied := make([]*core.Stream, 0, len(contents))
		for _, src := range contents {
			dst, err := d.importStream(src)
			if err != nil {
				return nil, fmt.Errorf("failed to copy content stream: %w", err)
			}
			copied = append(copied, dst)
		}
		imported.SetContents(copied...)
	}

	d.AddPage(imported)
	return imported, nil
}

// importStream copies one stream's raw payload into this document's
// scratch file.
func (d *Document) importStream(src *core.Stream) (*core.Stream, error) {
	r, err := src.Reader()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.CopyBuffer(&buf, r, make([]byte, importCopyBufferSize)); err != nil {
		return nil, err
	}
	dst := core.NewStream(src.Dict.Clone(), d.cos.ScratchFile())
	if err := dst.SetPayload(buf.Bytes()); err != nil {
		return nil, err
	}
	return dst, nil
}

// IsEncrypted reports whether the trailer carries an /Encrypt entry.
func (d *Document) IsEncrypted() bool {
	return d.cos.IsEncrypted()
}

// EncryptionDictionary returns the encryption dictionary view. The view
// is cached on first access, so it remains available after a successful
// decryption removes /Encrypt from the trailer. A document that was
// never encrypted yields nil.
func (d *Document) EncryptionDictionary() *encryption.Dictionary {
	if d.encryption == nil {
		if dict := d.cos.EncryptionDictionary(); dict != nil {
			d.encryption = encryption.NewDictionary(dict)
		}
	}
	return d.encryption
}

// Decrypt hands the document to a security handler with the given user
// or owner password. On success the object streams, unreadable while
// the payloads were ciphertext, are dereferenced into the pool.
func (d *Document) Decrypt(handler encryption.SecurityHandler, password string) error {
	if handler == nil {
		return fmt.Errorf("no security handler")
	}
	if !d.cos.IsEncrypted() {
		return fmt.Errorf("document is not encrypted")
	}
	// Cache the view before the handler strips /Encrypt.
	d.EncryptionDictionary()

	owner, err := handler.Decrypt(d.cos, password)
	if err != nil {
		return err
	}
	d.decryptedWithOwner = owner
	return d.cos.DereferenceObjectStreams()
}

// WasDecryptedWithOwnerPassword reports whether Decrypt authenticated
// with the owner password. Meaningless before a successful Decrypt.
func (d *Document) WasDecryptedWithOwnerPassword() bool {
	return d.decryptedWithOwner
}

// Close releases the underlying COS document and its scratch file.
func (d *Document) Close() error {
	return d.cos.Close()
}
