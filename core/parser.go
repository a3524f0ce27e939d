package core

import (
	"bytes"
	"io"
	"strconv"
)

// Parser parses the PDF file syntax from a Source. The grammar is
// deliberately permissive: every production that real-world writers get
// wrong carries an explicit fallback, and recoverable anomalies never
// surface as errors.
type Parser struct {
	src     *Source
	doc     *Document
	tempDir string
	scratch *ScratchFile
}

// Option configures a Parser.
type Option func(*Parser)

// WithTempDir sets the directory the document's scratch file is created
// in. The default is the system temp directory.
func WithTempDir(dir string) Option {
	return func(p *Parser) {
		p.tempDir = dir
	}
}

// WithScratchFile hands the parser a pre-opened scratch file to use
// instead of creating its own.
func WithScratchFile(scratch *ScratchFile) Option {
	return func(p *Parser) {
		p.scratch = scratch
	}
}

// NewParser creates a parser reading from r.
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{src: NewSource(r)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// newValueParser builds a bare parser over an in-memory buffer, used
// for the payloads of object streams and for nested reparses. It has no
// document, so it can only parse direct objects.
func newValueParser(b []byte) *Parser {
	return &Parser{src: NewSourceFromBytes(b)}
}

// parseDirObject parses one direct object, dispatching on the first
// non-space byte.
func (p *Parser) parseDirObject() (Object, error) {
	if err := p.skipSpaces(); err != nil {
		return nil, err
	}
	b, err := p.src.Peek()
	if err != nil {
		return nil, ioError(err)
	}
	switch {
	case b == '<':
		p.src.ReadByte()
		next, err := p.src.Peek()
		if err == nil && next == '<' {
			p.src.ReadByte()
			return p.parseDictBody()
		}
		return p.readHexStringBody()
	case b == '[':
		return p.parseArray()
	case b == '(':
		return p.readLiteralString()
	case b == '/':
		return p.readName()
	case b == 't':
		if err := p.expectKeyword("true"); err != nil {
			return nil, err
		}
		return Boolean(true), nil
	case b == 'f':
		if err := p.expectKeyword("false"); err != nil {
			return nil, err
		}
		return Boolean(false), nil
	case b == 'n':
		if err := p.expectKeyword("null"); err != nil {
			return nil, err
		}
		return Null{}, nil
	case isDigit(b) || b == '+' || b == '-' || b == '.':
		return p.parseNumberOrRef()
	default:
		return nil, &ParseError{Kind: KindUnexpectedByte, Actual: string(b)}
	}
}

// parseDictBody parses dictionary entries after << has been consumed.
func (p *Parser) parseDictBody() (Object, error) {
	dict := Dict{}
	for {
		if err := p.skipSpaces(); err != nil {
			return nil, err
		}
		b, err := p.src.Peek()
		if err != nil {
			return nil, ioError(err)
		}
		if b == '>' {
			if err := p.expectKeyword(">>"); err != nil {
				return nil, err
			}
			return dict, nil
		}
		if b != '/' {
			return nil, expectedKeyword("/", string(b))
		}
		key, err := p.readName()
		if err != nil {
			return nil, err
		}
		value, err := p.parseDirObject()
		if err != nil {
			return nil, err
		}
		dict[key] = value
	}
}

// parseArray parses a [ … ] array of direct objects.
func (p *Parser) parseArray() (Object, error) {
	if err := p.expectKeyword("["); err != nil {
		return nil, err
	}
	var arr Array
	for {
		if err := p.skipSpaces(); err != nil {
			return nil, err
		}
		b, err := p.src.Peek()
		if err != nil {
			return nil, ioError(err)
		}
		if b == ']' {
			p.src.ReadByte()
			return arr, nil
		}
		obj, err := p.parseDirObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseNumberOrRef parses a number, then looks ahead for the
// "generation R" tail that would turn it into an indirect reference.
// The lookahead bytes are pushed back when the tail does not match, so
// the two integers of "0 612" parse as plain numbers.
func (p *Parser) parseNumberOrRef() (Object, error) {
	tok, err := p.readNumberToken()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		b, _ := p.src.Peek()
		return nil, &ParseError{Kind: KindUnexpectedByte, Actual: string(b)}
	}
	if bytes.ContainsRune([]byte(tok), '.') {
		f, convErr := strconv.ParseFloat(tok, 64)
		if convErr != nil {
			return nil, expectedKeyword("number", tok)
		}
		return Real(f), nil
	}
	num, convErr := strconv.ParseInt(tok, 10, 64)
	if convErr != nil {
		return nil, expectedKeyword("number", tok)
	}

	if num >= 0 {
		if ref, ok := p.tryReference(num); ok {
			// Registering the slot now is what lets forward references
			// resolve once the object definition arrives.
			if p.doc != nil {
				p.doc.ObjectFromPool(ref)
			}
			return ref, nil
		}
	}
	return Integer(num), nil
}

// tryReference speculatively consumes " gen R" after an object number.
// Everything consumed is unread when the pattern does not complete.
func (p *Parser) tryReference(num int64) (ObjectRef, bool) {
	var consumed []byte
	restore := func() {
		p.src.Unread(consumed)
	}
	readByte := func() (byte, bool) {
		b, err := p.src.ReadByte()
		if err != nil {
			return 0, false
		}
		consumed = append(consumed, b)
		return b, true
	}

	// At least one whitespace byte, then digits.
	b, ok := readByte()
	if !ok || !isWhitespace(b) {
		restore()
		return ObjectRef{}, false
	}
	for {
		peek, err := p.src.Peek()
		if err != nil || !isWhitespace(peek) {
			break
		}
		readByte()
	}
	var genDigits []byte
	for {
		peek, err := p.src.Peek()
		if err != nil || !isDigit(peek) {
			break
		}
		b, _ := readByte()
		genDigits = append(genDigits, b)
	}
	if len(genDigits) == 0 {
		restore()
		return ObjectRef{}, false
	}
	for {
		peek, err := p.src.Peek()
		if err != nil || !isWhitespace(peek) {
			break
		}
		readByte()
	}
	peek, err := p.src.Peek()
	if err != nil || peek != 'R' {
		restore()
		return ObjectRef{}, false
	}
	p.src.ReadByte()
	// R must stand alone; "12 0 Rotate" is not a reference.
	if next, err := p.src.Peek(); err == nil && !isWhitespace(next) && !isDelimiter(next) {
		p.src.UnreadByte('R')
		restore()
		return ObjectRef{}, false
	}
	gen, _ := strconv.ParseInt(string(genDigits), 10, 64)
	return ObjectRef{Number: uint32(num), Generation: uint16(gen)}, true
}

// parseStreamPayload parses the payload after the stream keyword has
// been consumed, copies it into the document's scratch file, and
// returns the resulting stream. The /Length entry is preferred for
// sizing; when it is missing, unresolvable or wrong, the payload runs
// to the next endstream keyword.
func (p *Parser) parseStreamPayload(dict Dict) (*Stream, error) {
	// One EOL follows the keyword: LF or CRLF per spec, and a bare CR
	// from sloppy writers is accepted too.
	if b, err := p.src.Peek(); err == nil && (b == '\r' || b == '\n') {
		p.src.ReadByte()
		if b == '\r' {
			if next, err := p.src.Peek(); err == nil && next == '\n' {
				p.src.ReadByte()
			}
		}
	}

	length := int64(-1)
	if p.doc != nil {
		if n, ok := p.doc.Resolve(dict.Get(NameLength)).(Integer); ok {
			length = int64(n)
		}
	} else if n, ok := dict.GetInt(NameLength); ok {
		length = int64(n)
	}

	var data []byte
	if length >= 0 {
		buf, err := p.src.ReadFull(int(length))
		if err != nil {
			return nil, ioError(err)
		}
		data = buf
	}

	// Consume up to and including endstream. With a correct /Length
	// only the trailing EOL remains before the keyword; anything more
	// means the length was wrong and the extra bytes belong to the
	// payload.
	extra, err := p.readThroughEndstream()
	if err != nil {
		return nil, err
	}
	extra = trimTrailingEOL(extra)
	if len(extra) > 0 {
		data = append(data, extra...)
	}

	stream := NewStream(dict, p.doc.ScratchFile())
	if err := stream.SetPayload(data); err != nil {
		return nil, err
	}
	return stream, nil
}

// readThroughEndstream consumes bytes up to and including the next
// endstream keyword and returns everything before it.
func (p *Parser) readThroughEndstream() ([]byte, error) {
	marker := []byte("endstream")
	var buf []byte
	for {
		b, err := p.src.ReadByte()
		if err != nil {
			return nil, expectedKeyword("endstream", "EOF")
		}
		buf = append(buf, b)
		if len(buf) >= len(marker) && bytes.Equal(buf[len(buf)-len(marker):], marker) {
			return buf[:len(buf)-len(marker)], nil
		}
	}
}

// trimTrailingEOL removes one trailing CRLF, LF or CR.
func trimTrailingEOL(b []byte) []byte {
	if n := len(b); n > 0 {
		if b[n-1] == '\n' {
			if n > 1 && b[n-2] == '\r' {
				return b[:n-2]
			}
			return b[:n-1]
		}
		if b[n-1] == '\r' {
			return b[:n-1]
		}
	}
	return b
}
