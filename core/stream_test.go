package core

import (
	"bytes"
	"compress/zlib"
	"testing"
)

func newTestStream(t *testing.T, dict Dict, payload []byte) *Stream {
	t.Helper()
	s := NewStream(dict, newTestScratch(t))
	if err := s.SetPayload(payload); err != nil {
		t.Fatalf("SetPayload: %v", err)
	}
	return s
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	w.Close()
	return buf.Bytes()
}

func TestStreamPayloadRoundTrip(t *testing.T) {
	s := newTestStream(t, Dict{}, []byte("raw bytes"))

	if s.Length() != 9 {
		t.Errorf("Length() = %d, want 9", s.Length())
	}
	if s.Dict.IntDefault(NameLength, 0) != 9 {
		t.Errorf("/Length = %v", s.Dict.Get(NameLength))
	}
	payload, err := s.Payload()
	if err != nil || string(payload) != "raw bytes" {
		t.Errorf("Payload() = %q, %v", payload, err)
	}
}

func TestStreamDecodeNoFilter(t *testing.T) {
	s := newTestStream(t, Dict{}, []byte("plain"))
	got, err := s.Decode()
	if err != nil || string(got) != "plain" {
		t.Errorf("Decode() = %q, %v", got, err)
	}
}

func TestStreamDecodeFlate(t *testing.T) {
	want := []byte("some content stream data, repeated data data data")
	s := newTestStream(t, Dict{"Filter": Name("FlateDecode")}, deflate(t, want))

	got, err := s.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestStreamDecodeFilterChain(t *testing.T) {
	want := []byte("chained")
	// FlateDecode output fed through an identity-free second stage:
	// hex-encode the deflated bytes and chain AHx -> Fl.
	deflated := deflate(t, want)
	var hexed bytes.Buffer
	const digits = "0123456789ABCDEF"
	for _, b := range deflated {
		hexed.WriteByte(digits[b>>4])
		hexed.WriteByte(digits[b&0x0F])
	}
	hexed.WriteByte('>')

	s := newTestStream(t, Dict{
		"Filter": Array{Name("ASCIIHexDecode"), Name("FlateDecode")},
	}, hexed.Bytes())

	got, err := s.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestStreamDecodeUnknownFilter(t *testing.T) {
	s := newTestStream(t, Dict{"Filter": Name("NoSuchFilter")}, []byte("x"))
	if _, err := s.Decode(); err == nil {
		t.Error("Decode() succeeded with unknown filter")
	}
}

func TestStreamDecodeDCTPassThrough(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF}
	s := newTestStream(t, Dict{"Filter": Name("DCTDecode")}, raw)
	got, err := s.Decode()
	if err != nil || !bytes.Equal(got, raw) {
		t.Errorf("Decode() = %v, %v, want pass-through", got, err)
	}
}
