package core

import (
	"bytes"
	"io"
	"strconv"
)

// Character classes of the PDF file syntax.

// isWhitespace reports whether b is PDF whitespace: null, tab, LF, FF,
// CR or space.
func isWhitespace(b byte) bool {
	return b == 0 || b == '\t' || b == '\n' || b == '\f' || b == '\r' || b == ' '
}

// isDelimiter reports whether b terminates a name or token.
func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// skipSpaces consumes whitespace and comments. Comments run from % to
// end of line and count as whitespace everywhere outside strings.
// Reaching end of input is not an error here.
func (p *Parser) skipSpaces() error {
	for {
		b, err := p.src.Peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ioError(err)
		}
		switch {
		case isWhitespace(b):
			p.src.ReadByte()
		case b == '%':
			if _, err := p.src.ReadLine(); err != nil && err != io.EOF {
				return ioError(err)
			}
		default:
			return nil
		}
	}
}

// readToken skips whitespace and reads a run of bytes up to the next
// whitespace or delimiter. An empty token means the next byte is a
// delimiter, or the input is exhausted.
func (p *Parser) readToken() (string, error) {
	if err := p.skipSpaces(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for {
		b, err := p.src.Peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", ioError(err)
		}
		if isWhitespace(b) || isDelimiter(b) {
			break
		}
		p.src.ReadByte()
		buf.WriteByte(b)
	}
	return buf.String(), nil
}

// readBytes reads exactly n raw bytes as a string.
func (p *Parser) readBytes(n int) (string, error) {
	buf, err := p.src.ReadFull(n)
	if err != nil {
		return "", ioError(err)
	}
	return string(buf), nil
}

// expectKeyword consumes the literal keyword or fails.
func (p *Parser) expectKeyword(kw string) error {
	actual, err := p.readBytes(len(kw))
	if err != nil {
		return err
	}
	if actual != kw {
		return expectedKeyword(kw, actual)
	}
	return nil
}

// readInt reads a whitespace-delimited integer token. A failed read has
// consumed the offending token, which is what lets callers retry past
// stray keywords (the Ghostscript double-endobj case).
func (p *Parser) readInt() (int64, error) {
	tok, err := p.readToken()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.ParseInt(tok, 10, 64)
	if convErr != nil {
		return 0, expectedKeyword("integer", tok)
	}
	return n, nil
}

// readNumberToken reads the longest prefix that can form a PDF number:
// an optional sign followed by digits and at most one decimal point.
// Exponents are not part of the PDF grammar.
func (p *Parser) readNumberToken() (string, error) {
	var buf bytes.Buffer
	sawDot := false
	for {
		b, err := p.src.Peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", ioError(err)
		}
		switch {
		case isDigit(b):
		case b == '.':
			if sawDot {
				return buf.String(), nil
			}
			sawDot = true
		case (b == '+' || b == '-') && buf.Len() == 0:
		default:
			return buf.String(), nil
		}
		p.src.ReadByte()
		buf.WriteByte(b)
	}
	return buf.String(), nil
}

// readName reads a name object. The leading slash has not been consumed
// yet. #xx escapes are decoded; a malformed escape keeps its bytes.
func (p *Parser) readName() (Name, error) {
	if err := p.expectKeyword("/"); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for {
		b, err := p.src.Peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", ioError(err)
		}
		if isWhitespace(b) || isDelimiter(b) {
			break
		}
		p.src.ReadByte()
		if b == '#' {
			h1, err1 := p.src.Peek()
			if err1 == nil && isHexDigit(h1) {
				p.src.ReadByte()
				h2, err2 := p.src.Peek()
				if err2 == nil && isHexDigit(h2) {
					p.src.ReadByte()
					buf.WriteByte(hexValue(h1)<<4 | hexValue(h2))
					continue
				}
				buf.WriteByte('#')
				buf.WriteByte(h1)
				continue
			}
		}
		buf.WriteByte(b)
	}
	return Name(buf.String()), nil
}

// readLiteralString reads a (…) string. The opening parenthesis has not
// been consumed yet.
func (p *Parser) readLiteralString() (String, error) {
	if err := p.expectKeyword("("); err != nil {
		return String{}, err
	}
	var buf bytes.Buffer
	depth := 1
	for depth > 0 {
		b, err := p.src.ReadByte()
		if err != nil {
			return String{}, ioError(err)
		}
		switch b {
		case '(':
			depth++
			buf.WriteByte(b)
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(b)
			}
		case '\\':
			next, err := p.src.ReadByte()
			if err != nil {
				return String{}, ioError(err)
			}
			switch next {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(next)
			case '\r', '\n':
				// Line continuation: the backslash and the line break
				// both vanish.
				if next == '\r' {
					if peek, err := p.src.Peek(); err == nil && peek == '\n' {
						p.src.ReadByte()
					}
				}
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := next - '0'
				for i := 0; i < 2; i++ {
					peek, err := p.src.Peek()
					if err != nil || !isOctalDigit(peek) {
						break
					}
					p.src.ReadByte()
					val = val*8 + (peek - '0')
				}
				buf.WriteByte(val)
			default:
				// Unknown escapes keep the escaped character.
				buf.WriteByte(next)
			}
		default:
			buf.WriteByte(b)
		}
	}
	return String{Data: buf.Bytes()}, nil
}

// readHexStringBody reads a <…> string after the opening angle bracket
// has already been consumed. Whitespace inside the string is skipped
// and non-hex garbage is ignored; an odd trailing nibble reads as if
// followed by zero.
func (p *Parser) readHexStringBody() (String, error) {
	var digits []byte
	for {
		b, err := p.src.ReadByte()
		if err != nil {
			return String{}, ioError(err)
		}
		if b == '>' {
			break
		}
		if isHexDigit(b) {
			digits = append(digits, b)
		}
	}
	out := make([]byte, 0, (len(digits)+1)/2)
	for i := 0; i < len(digits); i += 2 {
		hi := hexValue(digits[i])
		var lo byte
		if i+1 < len(digits) {
			lo = hexValue(digits[i+1])
		}
		out = append(out, hi<<4|lo)
	}
	return String{Data: out, Hex: true}, nil
}
