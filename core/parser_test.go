package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parseValue parses a single direct object from source text.
func parseValue(t *testing.T, input string) (Object, error) {
	t.Helper()
	return newValueParser([]byte(input)).parseDirObject()
}

func TestParseDirObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Object
	}{
		{"null", "null", Null{}},
		{"true", "true", Boolean(true)},
		{"false", "false", Boolean(false)},
		{"integer", "123", Integer(123)},
		{"negative integer", "-17", Integer(-17)},
		{"plus sign", "+9", Integer(9)},
		{"real", "3.14", Real(3.14)},
		{"real leading dot", ".5", Real(0.5)},
		{"negative real", "-0.002", Real(-0.002)},
		{"name", "/Type", Name("Type")},
		{"name hex escape", "/A#42C", Name("ABC")},
		{"empty name", "/ ", Name("")},
		{"literal string", "(hello)", NewString("hello")},
		{"nested parens", "(a(b)c)", NewString("a(b)c")},
		{"escapes", `(a\nb\tc\\d\(e\))`, NewString("a\nb\tc\\d(e)")},
		{"octal escape", `(\101\12)`, NewString("A\n")},
		{"line continuation", "(ab\\\ncd)", NewString("abcd")},
		{"hex string", "<48656C6C6F>", NewHexString([]byte("Hello"))},
		{"hex odd nibble", "<48656C6C6F7>", NewHexString([]byte("Hello\x70"))},
		{"hex whitespace", "<48 65\n6C>", NewHexString([]byte("Hel"))},
		{"empty array", "[]", Array(nil)},
		{"array", "[1 2.5 /X (s)]", Array{Integer(1), Real(2.5), Name("X"), NewString("s")}},
		{"nested array", "[[1] [2]]", Array{Array{Integer(1)}, Array{Integer(2)}}},
		{"empty dict", "<<>>", Dict{}},
		{
			"dict",
			"<</Type/Catalog/Count 2>>",
			Dict{"Type": Name("Catalog"), "Count": Integer(2)},
		},
		{
			"dict with ref",
			"<</Pages 2 0 R>>",
			Dict{"Pages": ObjectRef{Number: 2}},
		},
		{
			"nested dict",
			"<</A<</B 1>>>>",
			Dict{"A": Dict{"B": Integer(1)}},
		},
		{"reference", "7 0 R", ObjectRef{Number: 7}},
		{"reference with gen", "12 3 R", ObjectRef{Number: 12, Generation: 3}},
		{"comment before value", "% note\n42", Integer(42)},
		{
			"numbers not a reference",
			"[0 612 792]",
			Array{Integer(0), Integer(612), Integer(792)},
		},
		{
			"R name lookalike",
			"<</N 12 0 R>>",
			Dict{"N": ObjectRef{Number: 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(t, tt.input)
			if err != nil {
				t.Fatalf("parseDirObject(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseDirObject(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseDirObjectErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"bare delimiter", "}"},
		{"unterminated string", "(abc"},
		{"unterminated dict", "<</A 1"},
		{"unterminated array", "[1 2"},
		{"bad keyword", "tru "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseValue(t, tt.input); err == nil {
				t.Errorf("parseDirObject(%q) succeeded, want error", tt.input)
			}
		})
	}
}

// A number followed by "gen R" across other content must not eat the
// lookahead bytes when the pattern does not complete.
func TestReferenceLookaheadRestores(t *testing.T) {
	p := newValueParser([]byte("1 2 3"))
	first, err := p.parseDirObject()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first != Integer(1) {
		t.Fatalf("first = %v, want 1", first)
	}
	second, err := p.parseDirObject()
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second != Integer(2) {
		t.Errorf("second = %v, want 2 (lookahead must restore consumed bytes)", second)
	}
	third, err := p.parseDirObject()
	if err != nil || third != Integer(3) {
		t.Errorf("third = %v, %v, want 3", third, err)
	}
}

func TestReadName(t *testing.T) {
	tests := []struct {
		input string
		want  Name
	}{
		{"/Name1 ", "Name1"},
		{"/A;Name_With-Various***Chars? ", "A;Name_With-Various***Chars?"},
		{"/paired#23parens ", "paired#parens"},
		{"/Lime#20Green ", "Lime Green"},
		{"/X[", "X"},
	}
	for _, tt := range tests {
		p := newValueParser([]byte(tt.input))
		got, err := p.readName()
		if err != nil {
			t.Errorf("readName(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("readName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
