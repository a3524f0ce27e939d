package filters

import (
	"bytes"
	"compress/zlib"
	"testing"
)

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

func TestFlateDecode(t *testing.T) {
	want := []byte("flate round trip payload, with some repetition repetition repetition")
	got, err := FlateDecode(deflate(t, want), Params{})
	if err != nil {
		t.Fatalf("FlateDecode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %q, want %q", got, want)
	}
}

func TestFlateDecodeBadData(t *testing.T) {
	if _, err := FlateDecode([]byte("not zlib"), Params{}); err == nil {
		t.Error("FlateDecode succeeded on garbage")
	}
}

func TestFlateDecodePNGUpPredictor(t *testing.T) {
	// Two rows of four bytes. Row 1 uses filter None, row 2 uses Up,
	// storing the difference from the row above.
	raw := []byte{
		0, 1, 2, 3, 4, // tag None, literal
		2, 1, 1, 1, 1, // tag Up, deltas
	}
	want := []byte{
		1, 2, 3, 4,
		2, 3, 4, 5,
	}
	got, err := FlateDecode(deflate(t, raw), Params{Predictor: 12, Columns: 4})
	if err != nil {
		t.Fatalf("FlateDecode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %v, want %v", got, want)
	}
}

func TestFlateDecodePNGSubPredictor(t *testing.T) {
	raw := []byte{
		1, 10, 5, 5, // tag Sub: 10, 10+5, 15+5
	}
	want := []byte{10, 15, 20}
	got, err := FlateDecode(deflate(t, raw), Params{Predictor: 11, Columns: 3})
	if err != nil {
		t.Fatalf("FlateDecode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %v, want %v", got, want)
	}
}

func TestFlateDecodePaethPredictor(t *testing.T) {
	tests := []struct {
		a, b, c byte
		want    byte
	}{
		{0, 0, 0, 0},
		{10, 20, 10, 20}, // p = 20, picks b
		{20, 10, 10, 20}, // p = 20, picks a
		{5, 9, 20, 5},    // negative p clamps toward a
	}
	for _, tt := range tests {
		if got := paeth(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("paeth(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

func TestFlateDecodeTIFFPredictor(t *testing.T) {
	// One row of four samples stored as left-deltas.
	raw := []byte{10, 5, 5, 5}
	want := []byte{10, 15, 20, 25}
	got, err := FlateDecode(deflate(t, raw), Params{Predictor: 2, Columns: 4})
	if err != nil {
		t.Fatalf("FlateDecode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %v, want %v", got, want)
	}
}

func TestFlateDecodeUnsupportedPredictor(t *testing.T) {
	if _, err := FlateDecode(deflate(t, []byte("x")), Params{Predictor: 99}); err == nil {
		t.Error("FlateDecode succeeded with unsupported predictor")
	}
}

func TestFlateDecodeRowSizeMismatch(t *testing.T) {
	raw := []byte{0, 1, 2} // not a multiple of columns+1
	if _, err := FlateDecode(deflate(t, raw), Params{Predictor: 12, Columns: 4}); err == nil {
		t.Error("FlateDecode succeeded with short rows")
	}
}
