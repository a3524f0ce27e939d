// Package pages provides the typed document layer over the COS object
// model: the document wrapper, the catalog, the page tree and the
// information dictionary.
//
// Types in this package are thin views. Each one holds a reference to
// an underlying [core.Dict] shared with the document's object pool;
// mutations write straight through, and nothing here owns a dictionary
// exclusively.
//
// [Document] is the entry point. [Load] and [Open] parse a file into a
// Document; [New] builds an empty one with the catalog and page-tree
// skeleton in place. A Document must be closed when no longer needed,
// which releases the scratch file backing every stream payload.
package pages
