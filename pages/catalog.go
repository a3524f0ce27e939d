package pages

import (
	"github.com/carouselpdf/carousel/core"
)

// Catalog is a view over the document catalog, the dictionary the
// trailer's /Root entry points at.
type Catalog struct {
	doc  *core.Document
	dict core.Dict
}

// NewCatalog wraps an existing catalog dictionary.
func NewCatalog(doc *core.Document, dict core.Dict) *Catalog {
	return &Catalog{doc: doc, dict: dict}
}

// newCatalogDict builds the dictionary for an empty catalog.
func newCatalogDict() core.Dict {
	return core.Dict{
		core.NameType:  core.Name("Catalog"),
		"Version":      core.Name("1.4"),
		core.NamePages: newPageNodeDict(),
	}
}

// Dictionary returns the underlying dictionary.
func (c *Catalog) Dictionary() core.Dict {
	return c.dict
}

// Pages returns the root of the page tree, or nil when the catalog has
// no /Pages entry.
func (c *Catalog) Pages() *PageNode {
	if dict, ok := c.doc.Resolve(c.dict.Get(core.NamePages)).(core.Dict); ok {
		return NewPageNode(c.doc, dict)
	}
	return nil
}

// ensurePages returns the page-tree root, creating an empty one when
// the catalog lacks it.
func (c *Catalog) ensurePages() *PageNode {
	if node := c.Pages(); node != nil {
		return node
	}
	dict := newPageNodeDict()
	c.dict.Set(core.NamePages, dict)
	return NewPageNode(c.doc, dict)
}

// AllPages returns every page leaf reachable from the catalog, in tree
// order.
func (c *Catalog) AllPages() []*Page {
	node := c.Pages()
	if node == nil {
		return nil
	}
	return node.AllPages()
}

// Version returns the catalog's /Version name, which overrides the
// header version when present.
func (c *Catalog) Version() string {
	name, _ := c.dict.GetName("Version")
	return string(name)
}
