package pages

import (
	"strings"
	"testing"

	"github.com/carouselpdf/carousel/core"
)

const tinyPDF = "%PDF-1.4\n" +
	"1 0 obj\n" +
	"<</Type/Catalog/Pages 2 0 R>>\n" +
	"endobj\n" +
	"2 0 obj\n" +
	"<</Type/Pages/Kids[3 0 R]/Count 1>>\n" +
	"endobj\n" +
	"3 0 obj\n" +
	"<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>\n" +
	"endobj\n" +
	"trailer\n" +
	"<</Root 1 0 R/Info 4 0 R/Size 5>>\n" +
	"4 0 obj\n" +
	"<</Title(Example)/Author(\xFE\xFF\x00J\x00o)>>\n" +
	"endobj\n" +
	"startxref\n0\n%%EOF\n"

func loadTest(t *testing.T, data string) *Document {
	t.Helper()
	doc, err := Load(strings.NewReader(data), core.WithTempDir(t.TempDir()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func newTest(t *testing.T) *Document {
	t.Helper()
	doc, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func TestLoadDocument(t *testing.T) {
	doc := loadTest(t, tinyPDF)

	if got := doc.NumberOfPages(); got != 1 {
		t.Errorf("NumberOfPages() = %d, want 1", got)
	}
	if doc.IsEncrypted() {
		t.Error("IsEncrypted() = true")
	}

	info := doc.Information()
	if info.Title() != "Example" {
		t.Errorf("Title() = %q", info.Title())
	}
	if info.Author() != "Jo" {
		t.Errorf("Author() = %q (UTF-16BE decode)", info.Author())
	}

	pages := doc.Catalog().AllPages()
	if len(pages) != 1 {
		t.Fatalf("AllPages() returned %d pages", len(pages))
	}
	box := pages[0].FindMediaBox()
	if box == nil || box.Width() != 612 || box.Height() != 792 {
		t.Errorf("media box = %v", box)
	}
}

func TestNewDocumentSkeleton(t *testing.T) {
	doc := newTest(t)

	if got := doc.NumberOfPages(); got != 0 {
		t.Errorf("NumberOfPages() = %d, want 0", got)
	}
	catalog := doc.Catalog()
	if typ, _ := catalog.Dictionary().GetName(core.NameType); typ != "Catalog" {
		t.Errorf("catalog /Type = %v", typ)
	}
	if catalog.Pages() == nil {
		t.Error("new document has no page-tree root")
	}
	if doc.Information() == nil {
		t.Error("Information() = nil")
	}
}

func TestAddRemovePage(t *testing.T) {
	doc := newTest(t)
	cos := doc.COSDocument()

	p1 := NewPage(cos)
	p2 := NewPage(cos)
	doc.AddPage(p1)
	doc.AddPage(p2)

	if got := doc.NumberOfPages(); got != 2 {
		t.Fatalf("NumberOfPages() = %d, want 2", got)
	}
	if p1.Parent() == nil {
		t.Error("added page has no parent")
	}

	if !doc.RemovePage(p1) {
		t.Fatal("RemovePage returned false")
	}
	if got := doc.NumberOfPages(); got != 1 {
		t.Errorf("NumberOfPages() after remove = %d, want 1", got)
	}

	// Add/remove must round-trip the count.
	doc.AddPage(p1)
	doc.RemovePage(p1)
	if got := doc.NumberOfPages(); got != 1 {
		t.Errorf("NumberOfPages() after round trip = %d, want 1", got)
	}

	if doc.RemovePage(NewPage(cos)) {
		t.Error("RemovePage of a detached page returned true")
	}
}

func TestRemovePageAt(t *testing.T) {
	doc := newTest(t)
	cos := doc.COSDocument()
	doc.AddPage(NewPage(cos))
	doc.AddPage(NewPage(cos))

	if !doc.RemovePageAt(1) {
		t.Fatal("RemovePageAt(1) returned false")
	}
	if doc.NumberOfPages() != 1 {
		t.Errorf("NumberOfPages() = %d, want 1", doc.NumberOfPages())
	}
	if doc.RemovePageAt(5) {
		t.Error("RemovePageAt(5) returned true")
	}
	if doc.RemovePageAt(-1) {
		t.Error("RemovePageAt(-1) returned true")
	}
}

func TestImportPage(t *testing.T) {
	src := newTest(t)
	dst := newTest(t)

	page := NewPage(src.COSDocument())
	content := core.NewStream(core.Dict{}, src.COSDocument().ScratchFile())
	if err := content.SetPayload([]byte("q 1 0 0 1 0 0 cm Q")); err != nil {
		t.Fatalf("SetPayload: %v", err)
	}
	page.SetContents(content)
	src.AddPage(page)

	imported, err := dst.ImportPage(page)
	if err != nil {
		t.Fatalf("ImportPage: %v", err)
	}
	if dst.NumberOfPages() != 1 {
		t.Errorf("NumberOfPages() = %d, want 1", dst.NumberOfPages())
	}

	// The copy must live in the destination scratch file: closing the
	// source document must not invalidate it.
	src.Close()

	streams, err := imported.Contents()
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}
	if len(streams) != 1 {
		t.Fatalf("imported page has %d content streams", len(streams))
	}
	payload, err := streams[0].Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if string(payload) != "q 1 0 0 1 0 0 cm Q" {
		t.Errorf("payload = %q", payload)
	}

	// The source page dictionary must not have been mutated.
	if sameDict(imported.Dictionary(), page.Dictionary()) {
		t.Error("ImportPage reused the source dictionary")
	}
}

func TestImportPageEncrypted(t *testing.T) {
	src := newTest(t)
	dst := newTest(t)
	src.COSDocument().SetTrailer(core.Dict{core.NameEncrypt: core.Dict{}})

	page := NewPage(src.COSDocument())
	if _, err := dst.ImportPage(page); err != core.ErrEncrypted {
		t.Errorf("ImportPage from encrypted doc = %v, want ErrEncrypted", err)
	}
}

func TestInformationWriteThrough(t *testing.T) {
	doc := newTest(t)
	info := doc.Information()
	info.SetTitle("A Title")
	info.SetAuthor("An Author")

	// The same dictionary must be visible through the trailer.
	trailer := doc.COSDocument().Trailer()
	dict, ok := doc.COSDocument().Resolve(trailer.Get(core.NameInfo)).(core.Dict)
	if !ok {
		t.Fatal("trailer /Info did not resolve")
	}
	if s, _ := dict.GetString("Title"); string(s.Data) != "A Title" {
		t.Errorf("trailer title = %v", dict.Get("Title"))
	}

	info.SetTitle("")
	if dict.Has("Title") {
		t.Error("SetTitle(\"\") did not remove the entry")
	}
}

func TestTrapped(t *testing.T) {
	doc := newTest(t)
	info := doc.Information()

	if err := info.SetTrapped("True"); err != nil {
		t.Fatalf("SetTrapped: %v", err)
	}
	if info.Trapped() != "True" {
		t.Errorf("Trapped() = %q", info.Trapped())
	}
	if err := info.SetTrapped("Maybe"); err == nil {
		t.Error("SetTrapped(Maybe) succeeded")
	}
}

func TestEncryptionDictionaryView(t *testing.T) {
	input := "%PDF-1.4\n" +
		"1 0 obj\n" +
		"<</Filter/Standard/V 1/R 2/Length 40/P -44/O(o)/U(u)>>\n" +
		"endobj\n" +
		"trailer\n<</Encrypt 1 0 R/Size 2>>\n" +
		"startxref\n0\n%%EOF\n"
	doc := loadTest(t, input)

	if !doc.IsEncrypted() {
		t.Fatal("IsEncrypted() = false")
	}
	enc := doc.EncryptionDictionary()
	if enc == nil {
		t.Fatal("EncryptionDictionary() = nil")
	}
	if enc.Filter() != "Standard" {
		t.Errorf("Filter() = %q", enc.Filter())
	}
	std := enc.Standard()
	if std == nil {
		t.Fatal("Standard() = nil")
	}
	if std.Revision() != 2 || string(std.OwnerKey()) != "o" || string(std.UserKey()) != "u" {
		t.Error("standard entries did not read back")
	}

	// The cached view must survive /Encrypt removal (decryption).
	doc.COSDocument().Trailer().Delete(core.NameEncrypt)
	if doc.EncryptionDictionary() != enc {
		t.Error("encryption view was not cached across decryption")
	}
}

type fakeHandler struct {
	owner  bool
	err    error
	called bool
}

func (f *fakeHandler) Decrypt(doc *core.Document, password string) (bool, error) {
	f.called = true
	if f.err == nil {
		doc.Trailer().Delete(core.NameEncrypt)
	}
	return f.owner, f.err
}

func TestDecrypt(t *testing.T) {
	input := "%PDF-1.4\n" +
		"1 0 obj\n<</Filter/Standard>>\nendobj\n" +
		"trailer\n<</Encrypt 1 0 R/Size 2>>\n" +
		"startxref\n0\n%%EOF\n"
	doc := loadTest(t, input)

	handler := &fakeHandler{owner: true}
	if err := doc.Decrypt(handler, "secret"); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !handler.called {
		t.Error("handler was not invoked")
	}
	if !doc.WasDecryptedWithOwnerPassword() {
		t.Error("WasDecryptedWithOwnerPassword() = false")
	}
	if doc.IsEncrypted() {
		t.Error("still encrypted after Decrypt")
	}
}

func TestDecryptNotEncrypted(t *testing.T) {
	doc := newTest(t)
	if err := doc.Decrypt(&fakeHandler{}, "x"); err == nil {
		t.Error("Decrypt on unencrypted document succeeded")
	}
}
