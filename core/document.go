package core

import (
	"sort"
)

// XRefSection records the header of one cross-reference subsection:
// the first object number and the entry count. The entries themselves
// are discarded; the linear parser populates the pool by reading every
// object in file order, so the offsets are never consulted.
type XRefSection struct {
	Start int64
	Count int64
}

// Document is the COS-level document store: the indirect-object pool,
// the trailer dictionary and the scratch file that backs stream
// payloads. A Document is either open or closed; once closed, only the
// idempotent Close remains valid.
type Document struct {
	trailer      Dict
	pool         map[ObjectRef]*IndirectObject
	xrefSections []XRefSection
	scratch      *ScratchFile

	// HeaderString is the raw first line of the file, before any
	// garbage-prefix trimming.
	HeaderString string
	// Version is the header version. Only three bytes after %PDF- are
	// consulted, so a hypothetical 1.10 would read as 1.1.
	Version float32

	closed bool
}

// NewDocument creates an empty document owning the given scratch file.
func NewDocument(scratch *ScratchFile) *Document {
	return &Document{
		pool:    make(map[ObjectRef]*IndirectObject),
		scratch: scratch,
	}
}

// ScratchFile returns the document's scratch file.
func (d *Document) ScratchFile() *ScratchFile {
	return d.scratch
}

// Trailer returns the trailer dictionary, or nil before one has been
// parsed or set.
func (d *Document) Trailer() Dict {
	return d.trailer
}

// SetTrailer replaces the trailer dictionary.
func (d *Document) SetTrailer(t Dict) {
	d.trailer = t
}

// ObjectFromPool returns the pool slot for key, creating an empty slot
// when the key has not been seen yet. This is what makes forward
// references work: a reference parsed before its object definition gets
// a slot that the later definition fills in.
func (d *Document) ObjectFromPool(key ObjectRef) *IndirectObject {
	if obj, ok := d.pool[key]; ok {
		return obj
	}
	obj := NewIndirectObject(key)
	d.pool[key] = obj
	return obj
}

// Objects returns every pool slot, ordered by object number then
// generation.
func (d *Document) Objects() []*IndirectObject {
	objs := make([]*IndirectObject, 0, len(d.pool))
	for _, obj := range d.pool {
		objs = append(objs, obj)
	}
	sort.Slice(objs, func(i, j int) bool {
		if objs[i].Key.Number != objs[j].Key.Number {
			return objs[i].Key.Number < objs[j].Key.Number
		}
		return objs[i].Key.Generation < objs[j].Key.Generation
	})
	return objs
}

// ObjectsByType returns every pool slot whose value is a dictionary or
// stream with the given /Type.
func (d *Document) ObjectsByType(typ Name) []*IndirectObject {
	var out []*IndirectObject
	for _, obj := range d.Objects() {
		var dict Dict
		switch v := obj.Value().(type) {
		case Dict:
			dict = v
		case *Stream:
			dict = v.Dict
		default:
			continue
		}
		if name, ok := dict.GetName(NameType); ok && name == typ {
			out = append(out, obj)
		}
	}
	return out
}

// Resolve follows indirect references through the pool until a direct
// value is reached. A reference to an absent or unfilled slot resolves
// to Null, never to an error; reference cycles also resolve to Null.
func (d *Document) Resolve(obj Object) Object {
	visited := make(map[ObjectRef]bool)
	for {
		switch v := obj.(type) {
		case ObjectRef:
			if visited[v] {
				return Null{}
			}
			visited[v] = true
			slot, ok := d.pool[v]
			if !ok {
				return Null{}
			}
			obj = slot.Value()
		case *IndirectObject:
			obj = v.Value()
		case nil:
			return Null{}
		default:
			return obj
		}
	}
}

// AddXRefSection records a parsed cross-reference subsection header.
func (d *Document) AddXRefSection(s XRefSection) {
	d.xrefSections = append(d.xrefSections, s)
}

// XRefSections returns the recorded cross-reference subsection headers,
// in the order they appeared in the file.
func (d *Document) XRefSections() []XRefSection {
	return d.xrefSections
}

// IsEncrypted reports whether the trailer carries an /Encrypt entry.
func (d *Document) IsEncrypted() bool {
	return d.trailer != nil && d.trailer.Has(NameEncrypt)
}

// EncryptionDictionary returns the resolved /Encrypt dictionary, or nil
// when the document is not encrypted.
func (d *Document) EncryptionDictionary() Dict {
	if d.trailer == nil {
		return nil
	}
	if dict, ok := d.Resolve(d.trailer.Get(NameEncrypt)).(Dict); ok {
		return dict
	}
	return nil
}

// DocumentID returns the trailer's /ID array (two byte strings), or nil
// when absent.
func (d *Document) DocumentID() Array {
	if d.trailer == nil {
		return nil
	}
	if arr, ok := d.Resolve(d.trailer.Get(NameID)).(Array); ok {
		return arr
	}
	return nil
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	return d.closed
}

// Close releases the document's resources, deleting the scratch file.
// Every stream handle into the document becomes invalid. Close is
// idempotent.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.scratch != nil {
		return d.scratch.Close()
	}
	return nil
}
