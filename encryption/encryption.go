// Package encryption provides the typed views over a document's
// /Encrypt dictionary and the hook point where an actual decryption
// implementation plugs in.
//
// The cryptography itself (RC4/AES key derivation, password
// verification) lives behind the [SecurityHandler] interface; this
// package only models the dictionary the PDF carries.
package encryption

import (
	"github.com/carouselpdf/carousel/core"
)

// Default values prescribed for the standard security handler.
const (
	DefaultVersion = 0
	DefaultLength  = 40
)

// Permission bits of the standard security handler's /P entry.
// Bit positions are 1-based, as the PDF spec numbers them.
const (
	printBit             = 3
	modificationBit      = 4
	extractBit           = 5
	modifyAnnotationsBit = 6
)

// SecurityHandler decrypts a document's strings and stream payloads in
// place. Implementations report whether the supplied password was the
// owner password, and are expected to remove the trailer's /Encrypt
// entry on success.
type SecurityHandler interface {
	Decrypt(doc *core.Document, password string) (ownerPassword bool, err error)
}

// Dictionary is a view over an /Encrypt dictionary, common to every
// security handler.
type Dictionary struct {
	dict core.Dict
}

// NewDictionary wraps an encryption dictionary.
func NewDictionary(dict core.Dict) *Dictionary {
	return &Dictionary{dict: dict}
}

// COSDict returns the underlying dictionary.
func (e *Dictionary) COSDict() core.Dict {
	return e.dict
}

// Filter returns the /Filter name identifying the security handler,
// "Standard" for password-protected documents.
func (e *Dictionary) Filter() string {
	name, _ := e.dict.GetName(core.NameFilter)
	return string(name)
}

// Version returns the /V algorithm code.
func (e *Dictionary) Version() int {
	return int(e.dict.IntDefault("V", DefaultVersion))
}

// Length returns the encryption key length in bits.
func (e *Dictionary) Length() int {
	return int(e.dict.IntDefault(core.NameLength, DefaultLength))
}

// Standard returns the standard-security-handler view of this
// dictionary, or nil when the /Filter is some other handler.
func (e *Dictionary) Standard() *Standard {
	if e.Filter() != "Standard" {
		return nil
	}
	return &Standard{Dictionary: *e}
}

// Standard is the view over a standard security handler's entries:
// the password digests /O and /U, the revision /R and the permission
// bits /P.
type Standard struct {
	Dictionary
}

// Revision returns the /R revision of the standard handler.
func (s *Standard) Revision() int {
	return int(s.dict.IntDefault("R", 2))
}

// OwnerKey returns the 32-byte /O owner password digest.
func (s *Standard) OwnerKey() []byte {
	if str, ok := s.dict.GetString("O"); ok {
		return str.Bytes()
	}
	return nil
}

// UserKey returns the 32-byte /U user password digest.
func (s *Standard) UserKey() []byte {
	if str, ok := s.dict.GetString("U"); ok {
		return str.Bytes()
	}
	return nil
}

// Permissions returns the raw /P permission flags.
func (s *Standard) Permissions() int32 {
	return int32(s.dict.IntDefault("P", 0))
}

func (s *Standard) permissionBit(bit int) bool {
	return s.Permissions()&(1<<(bit-1)) != 0
}

// CanPrint reports whether the user password grants printing.
func (s *Standard) CanPrint() bool {
	return s.permissionBit(printBit)
}

// CanModify reports whether the user password grants content changes.
func (s *Standard) CanModify() bool {
	return s.permissionBit(modificationBit)
}

// CanExtractContent reports whether the user password grants text and
// graphics extraction.
func (s *Standard) CanExtractContent() bool {
	return s.permissionBit(extractBit)
}

// CanModifyAnnotations reports whether the user password grants
// annotation edits.
func (s *Standard) CanModifyAnnotations() bool {
	return s.permissionBit(modifyAnnotationsBit)
}
