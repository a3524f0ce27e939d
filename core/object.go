package core

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Object is the interface satisfied by every COS value.
type Object interface {
	Type() ObjectType
	String() string
}

// ObjectType discriminates the concrete COS value kinds.
type ObjectType int

const (
	ObjNull ObjectType = iota
	ObjBoolean
	ObjInteger
	ObjReal
	ObjString
	ObjName
	ObjArray
	ObjDict
	ObjStream
	ObjRef
	ObjIndirect
)

// String returns the name of the object type.
func (t ObjectType) String() string {
	switch t {
	case ObjNull:
		return "Null"
	case ObjBoolean:
		return "Boolean"
	case ObjInteger:
		return "Integer"
	case ObjReal:
		return "Real"
	case ObjString:
		return "String"
	case ObjName:
		return "Name"
	case ObjArray:
		return "Array"
	case ObjDict:
		return "Dict"
	case ObjStream:
		return "Stream"
	case ObjRef:
		return "Reference"
	case ObjIndirect:
		return "IndirectObject"
	default:
		return "Unknown"
	}
}

// Null represents the PDF null object. Unresolvable references also
// resolve to Null.
type Null struct{}

func (Null) Type() ObjectType { return ObjNull }
func (Null) String() string   { return "null" }

// Boolean represents a PDF boolean.
type Boolean bool

func (Boolean) Type() ObjectType { return ObjBoolean }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Integer represents a PDF integer.
type Integer int64

func (Integer) Type() ObjectType { return ObjInteger }
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Real represents a PDF real number.
type Real float64

func (Real) Type() ObjectType { return ObjReal }
func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// Name represents a PDF name, without the leading slash.
type Name string

func (Name) Type() ObjectType { return ObjName }
func (n Name) String() string { return "/" + string(n) }

// Common dictionary keys.
const (
	NameType    Name = "Type"
	NameLength  Name = "Length"
	NameFilter  Name = "Filter"
	NameRoot    Name = "Root"
	NameInfo    Name = "Info"
	NameEncrypt Name = "Encrypt"
	NameID      Name = "ID"
	NameSize    Name = "Size"
	NamePages   Name = "Pages"
	NameKids    Name = "Kids"
	NameCount   Name = "Count"
	NameParent  Name = "Parent"
)

// String represents a PDF string. PDF strings are opaque byte sequences,
// not text; Hex records whether the source wrote the string in
// hexadecimal form, so a writer can preserve the original flavor.
type String struct {
	Data []byte
	Hex  bool
}

// NewString builds a literal string object from Go text.
func NewString(s string) String {
	return String{Data: []byte(s)}
}

// NewHexString builds a hexadecimal string object from raw bytes.
func NewHexString(b []byte) String {
	return String{Data: b, Hex: true}
}

func (String) Type() ObjectType { return ObjString }

func (s String) String() string {
	if s.Hex {
		var b strings.Builder
		b.WriteByte('<')
		for _, c := range s.Data {
			fmt.Fprintf(&b, "%02X", c)
		}
		b.WriteByte('>')
		return b.String()
	}
	return "(" + string(s.Data) + ")"
}

// Bytes returns the raw string bytes.
func (s String) Bytes() []byte {
	return s.Data
}

// Text decodes the string as a PDF text string: UTF-16BE when the bytes
// carry a byte-order mark, otherwise the single-byte PDFDocEncoding
// (which agrees with Latin-1 over the printable range).
func (s String) Text() string {
	if len(s.Data) >= 2 && s.Data[0] == 0xFE && s.Data[1] == 0xFF {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if decoded, err := dec.Bytes(s.Data); err == nil {
			return string(decoded)
		}
	}
	runes := make([]rune, len(s.Data))
	for i, b := range s.Data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// Array represents a PDF array.
type Array []Object

func (Array) Type() ObjectType { return ObjArray }

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, obj := range a {
		parts[i] = obj.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Get returns the element at index, or Null when out of range.
func (a Array) Get(index int) Object {
	if index < 0 || index >= len(a) {
		return Null{}
	}
	return a[index]
}

// Float returns the element at index as a float64. Integers and reals
// both qualify; anything else yields 0.
func (a Array) Float(index int) float64 {
	switch v := a.Get(index).(type) {
	case Integer:
		return float64(v)
	case Real:
		return float64(v)
	}
	return 0
}

// Dict represents a PDF dictionary. Keys are unique; insertion order is
// not semantically significant.
type Dict map[Name]Object

func (Dict) Type() ObjectType { return ObjDict }

func (d Dict) String() string {
	keys := d.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String() + " " + d[k].String()
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Get returns the value for key, or nil when absent. The result may be
// an unresolved ObjectRef; use Document.Resolve to follow references.
func (d Dict) Get(key Name) Object {
	return d[key]
}

// Has reports whether key is present.
func (d Dict) Has(key Name) bool {
	_, ok := d[key]
	return ok
}

// Set stores a value under key.
func (d Dict) Set(key Name, value Object) {
	d[key] = value
}

// Delete removes key from the dictionary.
func (d Dict) Delete(key Name) {
	delete(d, key)
}

// Keys returns the dictionary keys in sorted order.
func (d Dict) Keys() []Name {
	keys := make([]Name, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// GetName returns a name value.
func (d Dict) GetName(key Name) (Name, bool) {
	n, ok := d[key].(Name)
	return n, ok
}

// GetInt returns an integer value.
func (d Dict) GetInt(key Name) (Integer, bool) {
	i, ok := d[key].(Integer)
	return i, ok
}

// IntDefault returns an integer value, or def when the key is absent or
// not an integer.
func (d Dict) IntDefault(key Name, def int64) int64 {
	if i, ok := d[key].(Integer); ok {
		return int64(i)
	}
	return def
}

// GetDict returns a dictionary value.
func (d Dict) GetDict(key Name) (Dict, bool) {
	sub, ok := d[key].(Dict)
	return sub, ok
}

// GetArray returns an array value.
func (d Dict) GetArray(key Name) (Array, bool) {
	a, ok := d[key].(Array)
	return a, ok
}

// GetString returns a string value.
func (d Dict) GetString(key Name) (String, bool) {
	s, ok := d[key].(String)
	return s, ok
}

// GetBool returns a boolean value.
func (d Dict) GetBool(key Name) (Boolean, bool) {
	b, ok := d[key].(Boolean)
	return b, ok
}

// GetRef returns an indirect reference value.
func (d Dict) GetRef(key Name) (ObjectRef, bool) {
	r, ok := d[key].(ObjectRef)
	return r, ok
}

// GetStream returns a stream value.
func (d Dict) GetStream(key Name) (*Stream, bool) {
	s, ok := d[key].(*Stream)
	return s, ok
}

// Clone returns a shallow copy of the dictionary: a new map whose values
// are shared with the original.
func (d Dict) Clone() Dict {
	out := make(Dict, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ObjectRef is an indirect reference: a (number, generation) key into a
// document's object pool. References are values, not pointers; resolution
// is always explicit through the owning document.
type ObjectRef struct {
	Number     uint32
	Generation uint16
}

func (ObjectRef) Type() ObjectType { return ObjRef }

func (r ObjectRef) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// IndirectObject is the pool slot that carries an indirect object's
// value. Slots are created empty when a forward reference is first seen
// and filled once the object definition is parsed; an empty slot reads
// as Null.
type IndirectObject struct {
	Key   ObjectRef
	value Object
}

// NewIndirectObject creates a slot for the given key.
func NewIndirectObject(key ObjectRef) *IndirectObject {
	return &IndirectObject{Key: key}
}

func (*IndirectObject) Type() ObjectType { return ObjIndirect }

func (o *IndirectObject) String() string {
	return fmt.Sprintf("%d %d obj", o.Key.Number, o.Key.Generation)
}

// Value returns the slot's value, or Null when the slot has not been
// filled yet.
func (o *IndirectObject) Value() Object {
	if o.value == nil {
		return Null{}
	}
	return o.value
}

// SetValue fills (or replaces) the slot's value.
func (o *IndirectObject) SetValue(v Object) {
	o.value = v
}

// equalBytes reports whether two string payloads match; used by the
// structural comparison in EqualValue.
func equalBytes(a, b []byte) bool {
	return bytes.Equal(a, b)
}
