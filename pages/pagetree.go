package pages

import (
	"fmt"
	"reflect"

	"github.com/carouselpdf/carousel/core"
)

// Letter-size default media box, in default user space units.
const (
	letterWidth  = 612
	letterHeight = 792
)

// sameDict reports whether two dictionaries are the same map. Page-tree
// surgery needs identity, not structural equality: two empty pages look
// alike but only one of them is being removed.
func sameDict(a, b core.Dict) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// PageNode is a view over an intermediate page-tree node
// (/Type /Pages) with its /Kids array and cached /Count.
type PageNode struct {
	doc  *core.Document
	dict core.Dict
}

// NewPageNode wraps an existing page-tree node dictionary.
func NewPageNode(doc *core.Document, dict core.Dict) *PageNode {
	return &PageNode{doc: doc, dict: dict}
}

// newPageNodeDict builds the dictionary for an empty page-tree node.
func newPageNodeDict() core.Dict {
	return core.Dict{
		core.NameType:  core.Name("Pages"),
		core.NameKids:  core.Array{},
		core.NameCount: core.Integer(0),
	}
}

// Dictionary returns the underlying dictionary.
func (n *PageNode) Dictionary() core.Dict {
	return n.dict
}

// Count returns the cached /Count entry. The cache can go stale under
// mutation; UpdateCount recomputes it.
func (n *PageNode) Count() int64 {
	return n.dict.IntDefault(core.NameCount, 0)
}

// Kids returns the raw /Kids array.
func (n *PageNode) Kids() core.Array {
	if arr, ok := n.doc.Resolve(n.dict.Get(core.NameKids)).(core.Array); ok {
		return arr
	}
	return nil
}

// kidDicts resolves the /Kids entries to dictionaries, skipping
// anything that does not resolve to one.
func (n *PageNode) kidDicts() []core.Dict {
	kids := n.Kids()
	out := make([]core.Dict, 0, len(kids))
	for _, kid := range kids {
		if dict, ok := n.doc.Resolve(kid).(core.Dict); ok {
			out = append(out, dict)
		}
	}
	return out
}

// UpdateCount recomputes /Count for this node and every node below it:
// each page leaf contributes one, each child node contributes its own
// recomputed count. The result is written back and returned. Calling it
// twice in a row is a no-op.
func (n *PageNode) UpdateCount() int64 {
	return n.updateCount(make(map[uintptr]bool))
}

func (n *PageNode) updateCount(visited map[uintptr]bool) int64 {
	id := reflect.ValueOf(n.dict).Pointer()
	if visited[id] {
		return 0
	}
	visited[id] = true

	var total int64
	for _, kid := range n.kidDicts() {
		switch typ, _ := kid.GetName(core.NameType); typ {
		case "Pages":
			total += NewPageNode(n.doc, kid).updateCount(visited)
		case "Page":
			total++
		}
	}
	n.dict.Set(core.NameCount, core.Integer(total))
	return total
}

// AllPages returns every page leaf in the subtree, in tree order.
func (n *PageNode) AllPages() []*Page {
	var out []*Page
	n.collectPages(&out, make(map[uintptr]bool))
	return out
}

func (n *PageNode) collectPages(out *[]*Page, visited map[uintptr]bool) {
	id := reflect.ValueOf(n.dict).Pointer()
	if visited[id] {
		return
	}
	visited[id] = true

	for _, kid := range n.kidDicts() {
		switch typ, _ := kid.GetName(core.NameType); typ {
		case "Pages":
			NewPageNode(n.doc, kid).collectPages(out, visited)
		case "Page":
			*out = append(*out, PageFromDict(n.doc, kid))
		}
	}
}

// appendKid adds a page or node dictionary to /Kids.
func (n *PageNode) appendKid(dict core.Dict) {
	kids := n.Kids()
	n.dict.Set(core.NameKids, append(kids, dict))
}

// removeKid removes the kid with the given dictionary identity.
// It reports whether the kid was found.
func (n *PageNode) removeKid(dict core.Dict) bool {
	kids := n.Kids()
	for i, kid := range kids {
		resolved, ok := n.doc.Resolve(kid).(core.Dict)
		if ok && sameDict(resolved, dict) {
			n.dict.Set(core.NameKids, append(kids[:i:i], kids[i+1:]...))
			return true
		}
	}
	return false
}

// Page is a view over a page leaf (/Type /Page).
type Page struct {
	doc  *core.Document
	dict core.Dict
}

// NewPage creates a fresh page with a letter-size media box, not yet
// attached to any document tree.
func NewPage(doc *core.Document) *Page {
	return &Page{
		doc: doc,
		dict: core.Dict{
			core.NameType: core.Name("Page"),
			"MediaBox":    NewRectangle(0, 0, letterWidth, letterHeight).Array(),
		},
	}
}

// PageFromDict wraps an existing page dictionary.
func PageFromDict(doc *core.Document, dict core.Dict) *Page {
	return &Page{doc: doc, dict: dict}
}

// Dictionary returns the underlying dictionary.
func (p *Page) Dictionary() core.Dict {
	return p.dict
}

// Parent returns the parent page-tree node, or nil at the root.
func (p *Page) Parent() *PageNode {
	if dict, ok := p.doc.Resolve(p.dict.Get(core.NameParent)).(core.Dict); ok {
		return NewPageNode(p.doc, dict)
	}
	return nil
}

// SetParent points the page's /Parent entry at the given node.
func (p *Page) SetParent(n *PageNode) {
	p.dict.Set(core.NameParent, n.Dictionary())
}

// rect resolves a box entry on this page only.
func (p *Page) rect(key core.Name) *Rectangle {
	if arr, ok := p.doc.Resolve(p.dict.Get(key)).(core.Array); ok {
		return RectangleFromArray(arr)
	}
	return nil
}

// MediaBox returns the page's own /MediaBox, or nil when the entry is
// inherited.
func (p *Page) MediaBox() *Rectangle {
	return p.rect("MediaBox")
}

// SetMediaBox sets the page's /MediaBox.
func (p *Page) SetMediaBox(r *Rectangle) {
	p.dict.Set("MediaBox", r.Array())
}

// FindMediaBox returns the /MediaBox in effect for this page, walking
// up the tree for the inherited value.
func (p *Page) FindMediaBox() *Rectangle {
	if r := p.MediaBox(); r != nil {
		return r
	}
	return p.findInheritedRect("MediaBox")
}

// CropBox returns the page's own /CropBox, or nil.
func (p *Page) CropBox() *Rectangle {
	return p.rect("CropBox")
}

// SetCropBox sets the page's /CropBox.
func (p *Page) SetCropBox(r *Rectangle) {
	p.dict.Set("CropBox", r.Array())
}

// FindCropBox returns the /CropBox in effect for this page. A page
// without one anywhere falls back to the media box, which is the
// defaulting the spec prescribes.
func (p *Page) FindCropBox() *Rectangle {
	if r := p.CropBox(); r != nil {
		return r
	}
	if r := p.findInheritedRect("CropBox"); r != nil {
		return r
	}
	return p.FindMediaBox()
}

func (p *Page) findInheritedRect(key core.Name) *Rectangle {
	visited := make(map[uintptr]bool)
	for node := p.Parent(); node != nil; {
		id := reflect.ValueOf(node.dict).Pointer()
		if visited[id] {
			return nil
		}
		visited[id] = true
		if arr, ok := p.doc.Resolve(node.dict.Get(key)).(core.Array); ok {
			return RectangleFromArray(arr)
		}
		if parent, ok := p.doc.Resolve(node.dict.Get(core.NameParent)).(core.Dict); ok {
			node = NewPageNode(p.doc, parent)
		} else {
			node = nil
		}
	}
	return nil
}

// Rotation returns the page's own /Rotate entry, and whether the page
// has one at all.
func (p *Page) Rotation() (int64, bool) {
	r, ok := p.dict.GetInt("Rotate")
	return int64(r), ok
}

// SetRotation sets the page's /Rotate entry.
func (p *Page) SetRotation(degrees int64) {
	p.dict.Set("Rotate", core.Integer(degrees))
}

// FindRotation returns the rotation in effect for this page, walking up
// the tree for an inherited value. A page with no /Rotate anywhere is
// unrotated.
func (p *Page) FindRotation() int64 {
	if r, ok := p.Rotation(); ok {
		return r
	}
	visited := make(map[uintptr]bool)
	for node := p.Parent(); node != nil; {
		id := reflect.ValueOf(node.dict).Pointer()
		if visited[id] {
			break
		}
		visited[id] = true
		if r, ok := node.dict.GetInt("Rotate"); ok {
			return int64(r)
		}
		if parent, ok := p.doc.Resolve(node.dict.Get(core.NameParent)).(core.Dict); ok {
			node = NewPageNode(p.doc, parent)
		} else {
			node = nil
		}
	}
	return 0
}

// Contents returns the page's content streams: a /Contents stream
// yields one element, a /Contents array yields one per stream entry.
// A page without contents yields nil.
func (p *Page) Contents() ([]*core.Stream, error) {
	obj := p.doc.Resolve(p.dict.Get("Contents"))
	switch v := obj.(type) {
	case core.Null, nil:
		return nil, nil
	case *core.Stream:
		return []*core.Stream{v}, nil
	case core.Array:
		var out []*core.Stream
		for i, entry := range v {
			stream, ok := p.doc.Resolve(entry).(*core.Stream)
			if !ok {
				return nil, fmt.Errorf("contents entry %d is not a stream", i)
			}
			out = append(out, stream)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid /Contents type: %T", obj)
	}
}

// SetContents replaces the page's /Contents with the given streams.
func (p *Page) SetContents(streams ...*core.Stream) {
	switch len(streams) {
	case 0:
		p.dict.Delete("Contents")
	case 1:
		p.dict.Set("Contents", streams[0])
	default:
		arr := make(core.Array, len(streams))
		for i, s := range streams {
			arr[i] = s
		}
		p.dict.Set("Contents", arr)
	}
}

// Annotations returns the page's /Annots entries resolved to
// dictionaries. Entries that resolve to anything else are skipped.
func (p *Page) Annotations() []core.Dict {
	arr, ok := p.doc.Resolve(p.dict.Get("Annots")).(core.Array)
	if !ok {
		return nil
	}
	out := make([]core.Dict, 0, len(arr))
	for _, entry := range arr {
		if dict, ok := p.doc.Resolve(entry).(core.Dict); ok {
			out = append(out, dict)
		}
	}
	return out
}
