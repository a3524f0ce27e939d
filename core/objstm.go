package core

import (
	"fmt"
)

// ObjectStream is a view over a /Type /ObjStm stream (PDF 1.5): a
// compressed container holding /N direct objects, preceded by /N pairs
// of (object number, byte offset) and starting at /First.
type ObjectStream struct {
	stream  *Stream
	n       int
	first   int
	decoded []byte
	entries []objectStreamEntry
}

type objectStreamEntry struct {
	num    int64
	offset int64
}

// NewObjectStream validates the stream dictionary and wraps the stream.
func NewObjectStream(stream *Stream) (*ObjectStream, error) {
	if stream == nil {
		return nil, fmt.Errorf("stream is nil")
	}
	if typ, ok := stream.Dict.GetName(NameType); !ok || typ != "ObjStm" {
		return nil, fmt.Errorf("not an object stream: /Type %v", stream.Dict.Get(NameType))
	}
	n := stream.Dict.IntDefault("N", -1)
	if n < 0 {
		return nil, fmt.Errorf("object stream has invalid /N")
	}
	first := stream.Dict.IntDefault("First", -1)
	if first < 0 {
		return nil, fmt.Errorf("object stream has invalid /First")
	}
	return &ObjectStream{stream: stream, n: int(n), first: int(first)}, nil
}

// N returns the number of objects held by the stream.
func (os *ObjectStream) N() int {
	return os.n
}

// First returns the byte offset of the first object in the decoded
// payload.
func (os *ObjectStream) First() int {
	return os.first
}

// decode decompresses the payload and parses the index pairs. Runs once
// and caches.
func (os *ObjectStream) decode() error {
	if os.decoded != nil {
		return nil
	}
	decoded, err := os.stream.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode object stream: %w", err)
	}
	if os.first > len(decoded) {
		return fmt.Errorf("/First %d exceeds decoded length %d", os.first, len(decoded))
	}
	os.decoded = decoded

	hp := newValueParser(decoded[:os.first])
	os.entries = make([]objectStreamEntry, 0, os.n)
	for i := 0; i < os.n; i++ {
		num, err := hp.readInt()
		if err != nil {
			return fmt.Errorf("bad object stream index at pair %d: %w", i, err)
		}
		offset, err := hp.readInt()
		if err != nil {
			return fmt.Errorf("bad object stream index at pair %d: %w", i, err)
		}
		os.entries = append(os.entries, objectStreamEntry{num: num, offset: offset})
	}
	return nil
}

// Objects parses every contained object and returns them with their
// object numbers, in index order.
func (os *ObjectStream) Objects() ([]ObjectRef, []Object, error) {
	if err := os.decode(); err != nil {
		return nil, nil, err
	}
	keys := make([]ObjectRef, 0, len(os.entries))
	values := make([]Object, 0, len(os.entries))
	for i, entry := range os.entries {
		start := int64(os.first) + entry.offset
		if start < 0 || start > int64(len(os.decoded)) {
			return nil, nil, fmt.Errorf("object %d offset %d out of range", entry.num, entry.offset)
		}
		vp := newValueParser(os.decoded[start:])
		obj, err := vp.parseDirObject()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse object %d at index %d: %w", entry.num, i, err)
		}
		// Objects in a stream always have generation zero.
		keys = append(keys, ObjectRef{Number: uint32(entry.num)})
		values = append(values, obj)
	}
	return keys, values, nil
}

// DereferenceObjectStreams expands every object stream in the pool,
// installing the contained objects at (number, 0). For an encrypted
// document this runs after decryption instead of at parse time, since
// the payloads cannot be read before then.
func (d *Document) DereferenceObjectStreams() error {
	if d.closed {
		return ErrDocumentClosed
	}
	for _, slot := range d.ObjectsByType("ObjStm") {
		stream, ok := slot.Value().(*Stream)
		if !ok {
			continue
		}
		objStm, err := NewObjectStream(stream)
		if err != nil {
			return fmt.Errorf("object %v: %w", slot.Key, err)
		}
		keys, values, err := objStm.Objects()
		if err != nil {
			return fmt.Errorf("object %v: %w", slot.Key, err)
		}
		for i, key := range keys {
			d.ObjectFromPool(key).SetValue(values[i])
		}
	}
	return nil
}
