package core

import (
	"fmt"
	"io"

	"github.com/carouselpdf/carousel/internal/filters"
)

// Stream is a PDF stream: a dictionary plus a byte payload. The payload
// lives in the owning document's scratch file; the Stream value itself
// only carries the (offset, length) descriptor.
type Stream struct {
	Dict    Dict
	scratch *ScratchFile
	offset  int64
	length  int64
}

// NewStream creates an empty stream backed by the given scratch file.
func NewStream(dict Dict, scratch *ScratchFile) *Stream {
	if dict == nil {
		dict = Dict{}
	}
	return &Stream{Dict: dict, scratch: scratch}
}

func (*Stream) Type() ObjectType { return ObjStream }

func (s *Stream) String() string {
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict.String(), s.length)
}

// Length returns the payload length in bytes.
func (s *Stream) Length() int64 {
	return s.length
}

// SetPayload copies b into the scratch file and points the stream at it.
// The dictionary's /Length entry is updated to match.
func (s *Stream) SetPayload(b []byte) error {
	offset, err := s.scratch.Allocate(int64(len(b)))
	if err != nil {
		return err
	}
	if err := s.scratch.WriteAt(offset, b); err != nil {
		return err
	}
	s.offset = offset
	s.length = int64(len(b))
	s.Dict.Set(NameLength, Integer(s.length))
	return nil
}

// Payload reads the raw (still encoded) payload back from the scratch
// file. It fails with ErrDocumentClosed once the document is closed.
func (s *Stream) Payload() ([]byte, error) {
	if s.scratch == nil {
		return nil, nil
	}
	return s.scratch.ReadAt(s.offset, s.length)
}

// Reader returns a reader over the raw payload. The reader borrows the
// document's scratch file and is invalid after the document closes.
func (s *Stream) Reader() (io.Reader, error) {
	if s.scratch == nil {
		return nil, fmt.Errorf("stream has no payload")
	}
	return s.scratch.ReaderAt(s.offset, s.length)
}

// Decode reads the payload and runs it through the /Filter chain.
// A stream without filters decodes to its raw payload.
func (s *Stream) Decode() ([]byte, error) {
	data, err := s.Payload()
	if err != nil {
		return nil, err
	}

	filterObj := s.Dict.Get(NameFilter)
	if filterObj == nil {
		return data, nil
	}
	parmsObj := s.Dict.Get("DecodeParms")

	switch f := filterObj.(type) {
	case Name:
		return applyFilter(data, f, decodeParms(parmsObj))
	case Array:
		for i, entry := range f {
			name, ok := entry.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %T", i, entry)
			}
			var parms Dict
			if parmsArr, ok := parmsObj.(Array); ok {
				if i < len(parmsArr) {
					parms = decodeParms(parmsArr[i])
				}
			} else {
				parms = decodeParms(parmsObj)
			}
			var err error
			data, err = applyFilter(data, name, parms)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s) failed: %w", i, name, err)
			}
		}
		return data, nil
	}
	return nil, fmt.Errorf("invalid /Filter type: %T", filterObj)
}

// applyFilter runs a single named decode filter over data.
func applyFilter(data []byte, name Name, parms Dict) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, filterParams(parms))
	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)
	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)
	case "RunLengthDecode", "RL":
		return filters.RunLengthDecode(data)
	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, filterParams(parms))
	case "DCTDecode", "DCT", "JPXDecode":
		// Image codec payloads pass through raw; decoding them is an
		// image concern, not a syntax one.
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported filter: %s", name)
	}
}

// decodeParms normalizes a /DecodeParms entry to a Dict; Null and
// anything malformed count as no parameters.
func decodeParms(obj Object) Dict {
	if d, ok := obj.(Dict); ok {
		return d
	}
	return nil
}

// filterParams converts a decode-parameter dictionary to the flat
// parameter struct the filters package consumes.
func filterParams(d Dict) filters.Params {
	p := filters.Params{
		Predictor:        int(d.IntDefault("Predictor", 1)),
		Columns:          int(d.IntDefault("Columns", 0)),
		Colors:           int(d.IntDefault("Colors", 1)),
		BitsPerComponent: int(d.IntDefault("BitsPerComponent", 8)),
		K:                int(d.IntDefault("K", 0)),
		Rows:             int(d.IntDefault("Rows", 0)),
	}
	if d != nil {
		if b, ok := d.GetBool("BlackIs1"); ok {
			p.BlackIs1 = bool(b)
		}
	}
	return p
}
