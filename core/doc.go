// Package core implements the low-level COS layer of a PDF document:
// the tolerant file parser, the object model, and the document store.
//
// # Object Types
//
// Every COS value satisfies the [Object] interface. The concrete types are:
//
//   - [Null] - the PDF null object
//   - [Boolean] - PDF boolean values (true/false)
//   - [Integer] - PDF integers
//   - [Real] - PDF real numbers
//   - [String] - PDF string objects; an opaque byte sequence, with the
//     literal/hexadecimal origin preserved
//   - [Name] - PDF name objects (e.g. /Type, /Pages)
//   - [Array] - PDF arrays
//   - [Dict] - PDF dictionaries
//   - [Stream] - a dictionary plus a byte payload held in the document's
//     scratch file
//   - [ObjectRef] - an indirect reference, a lightweight (number,
//     generation) key into the document's object pool
//   - [IndirectObject] - the mutable pool slot that holds an indirect
//     object's value
//
// # Parsing
//
// [Parser.Parse] runs a linear, tolerant scan of the whole file: it does
// not chase cross-reference offsets but instead parses every indirect
// object it encounters, in file order. Cross-reference table contents are
// discarded; only the section headers are kept. This trades random access
// for robustness against the malformed files real-world PDF writers
// produce.
//
// # Document Store
//
// A [Document] owns the indirect-object pool, the trailer dictionary and
// the scratch file that backs stream payloads. References resolve through
// [Document.Resolve]; a reference to an absent object resolves to [Null],
// never to an error. Closing the document releases the scratch file and
// invalidates all stream handles.
package core
