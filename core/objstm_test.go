package core

import (
	"testing"
)

func newObjStmStream(t *testing.T, n, first int, payload string) *Stream {
	t.Helper()
	dict := Dict{
		NameType: Name("ObjStm"),
		"N":      Integer(n),
		"First":  Integer(first),
	}
	return newTestStream(t, dict, []byte(payload))
}

func TestNewObjectStream(t *testing.T) {
	tests := []struct {
		name    string
		dict    Dict
		wantErr bool
	}{
		{
			"valid",
			Dict{NameType: Name("ObjStm"), "N": Integer(2), "First": Integer(8)},
			false,
		},
		{
			"missing type",
			Dict{"N": Integer(2), "First": Integer(8)},
			true,
		},
		{
			"wrong type",
			Dict{NameType: Name("XRef"), "N": Integer(2), "First": Integer(8)},
			true,
		},
		{
			"missing N",
			Dict{NameType: Name("ObjStm"), "First": Integer(8)},
			true,
		},
		{
			"missing First",
			Dict{NameType: Name("ObjStm"), "N": Integer(2)},
			true,
		},
		{
			"negative N",
			Dict{NameType: Name("ObjStm"), "N": Integer(-1), "First": Integer(8)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewObjectStream(&Stream{Dict: tt.dict})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewObjectStream() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObjectStreamNil(t *testing.T) {
	if _, err := NewObjectStream(nil); err == nil {
		t.Error("NewObjectStream(nil) succeeded")
	}
}

func TestObjectStreamObjects(t *testing.T) {
	// Index pairs "5 0 6 9", then two objects at offsets 0 and 9.
	payload := "5 0 6 9 <</X 1>> (hi)"
	os := mustObjectStream(t, newObjStmStream(t, 2, 8, payload))

	keys, values, err := os.Objects()
	if err != nil {
		t.Fatalf("Objects: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("got %d objects, want 2", len(keys))
	}
	if keys[0] != (ObjectRef{Number: 5}) || keys[1] != (ObjectRef{Number: 6}) {
		t.Errorf("keys = %v", keys)
	}
	dict, ok := values[0].(Dict)
	if !ok || dict.IntDefault("X", 0) != 1 {
		t.Errorf("values[0] = %v, want <</X 1>>", values[0])
	}
	str, ok := values[1].(String)
	if !ok || string(str.Data) != "hi" {
		t.Errorf("values[1] = %v, want (hi)", values[1])
	}
}

func TestObjectStreamBadIndex(t *testing.T) {
	// Claims three objects but the index only holds two pairs.
	os := mustObjectStream(t, newObjStmStream(t, 3, 8, "5 0 6 4 1 2"))
	if _, _, err := os.Objects(); err == nil {
		t.Error("Objects() succeeded with truncated index")
	}
}

func TestObjectStreamFirstOutOfRange(t *testing.T) {
	os := mustObjectStream(t, newObjStmStream(t, 1, 999, "5 0"))
	if _, _, err := os.Objects(); err == nil {
		t.Error("Objects() succeeded with /First beyond the payload")
	}
}

func TestObjectStreamAccessors(t *testing.T) {
	os := mustObjectStream(t, newObjStmStream(t, 4, 17, ""))
	if os.N() != 4 {
		t.Errorf("N() = %d, want 4", os.N())
	}
	if os.First() != 17 {
		t.Errorf("First() = %d, want 17", os.First())
	}
}

func mustObjectStream(t *testing.T, s *Stream) *ObjectStream {
	t.Helper()
	os, err := NewObjectStream(s)
	if err != nil {
		t.Fatalf("NewObjectStream: %v", err)
	}
	return os
}

// Generation numbers of stream-held objects are always zero.
func TestDereferenceInstallsAtGenerationZero(t *testing.T) {
	scratch := newTestScratch(t)
	doc := NewDocument(scratch)

	payload := "7 0 (x)"
	stream := NewStream(Dict{
		NameType: Name("ObjStm"),
		"N":      Integer(1),
		"First":  Integer(4),
	}, scratch)
	if err := stream.SetPayload([]byte(payload)); err != nil {
		t.Fatalf("SetPayload: %v", err)
	}
	doc.ObjectFromPool(ObjectRef{Number: 1}).SetValue(stream)

	if err := doc.DereferenceObjectStreams(); err != nil {
		t.Fatalf("DereferenceObjectStreams: %v", err)
	}
	got, ok := doc.Resolve(ObjectRef{Number: 7, Generation: 0}).(String)
	if !ok || string(got.Data) != "x" {
		t.Errorf("object (7,0) = %v, want (x)", doc.Resolve(ObjectRef{Number: 7}))
	}
}

func TestDereferenceClosedDocument(t *testing.T) {
	doc := NewDocument(newTestScratch(t))
	doc.Close()
	if err := doc.DereferenceObjectStreams(); err != ErrDocumentClosed {
		t.Errorf("DereferenceObjectStreams on closed doc = %v, want ErrDocumentClosed", err)
	}
}
