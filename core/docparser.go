package core

import (
	"io"
	"strconv"
	"strings"
)

const pdfHeader = "%PDF-"

// Parse runs the linear scan over the whole file and returns the
// populated document. The input source is closed when Parse returns,
// success or failure; on failure the document and its scratch file are
// released before the error is returned.
func (p *Parser) Parse() (*Document, error) {
	defer p.src.Close()

	scratch := p.scratch
	if scratch == nil {
		var err error
		scratch, err = NewScratchFile(p.tempDir)
		if err != nil {
			return nil, err
		}
	}
	p.doc = NewDocument(scratch)

	doc, err := p.parseDocument()
	if err != nil {
		p.doc.Close()
		return nil, err
	}
	return doc, nil
}

func (p *Parser) parseDocument() (*Document, error) {
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	if err := p.skipHeaderFillBytes(); err != nil {
		return nil, err
	}

	// Main loop. PDF files routinely carry random bytes after the
	// final %%EOF; an error is swallowed if the last completed section
	// was an end-of-file marker.
	sawEOF := false
	for !p.src.IsEOF() {
		isEOF, err := p.parseFileObject()
		if err == nil {
			sawEOF = isEOF
			err = p.skipSpaces()
		}
		if err != nil {
			if sawEOF {
				break
			}
			return nil, err
		}
	}

	// No trailer section means a PDF 1.5+ file whose entry points live
	// in cross-reference streams; synthesize the trailer from their
	// dictionaries.
	if p.doc.Trailer() == nil {
		trailer := Dict{}
		for _, obj := range p.doc.ObjectsByType("XRef") {
			if stream, ok := obj.Value().(*Stream); ok {
				for k, v := range stream.Dict {
					if !trailer.Has(k) {
						trailer[k] = v
					}
				}
			}
		}
		p.doc.SetTrailer(trailer)
	}

	if !p.doc.IsEncrypted() {
		if err := p.doc.DereferenceObjectStreams(); err != nil {
			return nil, err
		}
	}
	return p.doc, nil
}

// parseHeader validates the %PDF- header line. Garbage bytes before the
// marker are trimmed; the three bytes after it are the version.
func (p *Parser) parseHeader() error {
	header, err := p.src.ReadLine()
	if err != nil {
		return corruptHeader("")
	}
	p.doc.HeaderString = header

	if len(header) < len(pdfHeader)+1 {
		return corruptHeader(header)
	}
	start := strings.Index(header, pdfHeader)
	if start < 0 {
		return corruptHeader(header)
	}
	if start > 0 {
		header = header[start:]
	}

	end := len(pdfHeader) + 3
	if end > len(header) {
		end = len(header)
	}
	version, err := strconv.ParseFloat(header[len(pdfHeader):end], 32)
	if err != nil {
		return corruptHeader(header)
	}
	p.doc.Version = float32(version)
	return nil
}

// skipHeaderFillBytes discards the binary fill marker some writers put
// on the line after the header (PDF spec 3.4.1). Anything that does not
// start with a digit cannot be an object, so one line is dropped.
func (p *Parser) skipHeaderFillBytes() error {
	if err := p.skipSpaces(); err != nil {
		return err
	}
	b, err := p.src.Peek()
	if err != nil {
		return nil
	}
	if !isDigit(b) {
		if _, err := p.src.ReadLine(); err != nil && err != io.EOF {
			return ioError(err)
		}
	}
	return nil
}

// parseFileObject parses one file-level section, dispatching on the
// peeked byte: a cross-reference table, a trailer, a startxref/%%EOF
// pair, or an indirect object. It reports whether the section ended
// with an end-of-file marker.
func (p *Parser) parseFileObject() (bool, error) {
	b, err := p.src.Peek()
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, ioError(err)
	}

	switch b {
	case 'x':
		return false, p.parseXrefTable()
	case 't', 's':
		if b == 't' {
			if err := p.parseTrailer(); err != nil {
				return false, err
			}
			b, err = p.src.Peek()
			if err != nil {
				return false, nil
			}
		}
		if b == 's' {
			if err := p.parseStartXref(); err != nil {
				return false, err
			}
			if err := p.expectEOFMarker(); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	default:
		return false, p.parseIndirectObject()
	}
}

// parseIndirectObject parses "num gen obj … endobj" and installs the
// value in the pool. Two tolerances from the wild are honored here: a
// duplicated endobj before the object number (retry the number read
// once), and a missing endobj after the value (a following number means
// the next object has started; unread it and move on).
func (p *Parser) parseIndirectObject() error {
	num, err := p.readInt()
	if err != nil {
		num, err = p.readInt()
		if err != nil {
			return err
		}
	}
	if err := p.skipSpaces(); err != nil {
		return err
	}
	gen, err := p.readInt()
	if err != nil {
		return err
	}
	if err := p.skipSpaces(); err != nil {
		return err
	}
	if err := p.expectKeyword("obj"); err != nil {
		return err
	}

	value, err := p.parseDirObject()
	if err != nil {
		return err
	}

	endKey, err := p.readToken()
	if err != nil {
		return err
	}
	if endKey == "stream" {
		dict, ok := value.(Dict)
		if !ok {
			return &ParseError{Kind: KindStreamNotPrecededByDict}
		}
		stream, err := p.parseStreamPayload(dict)
		if err != nil {
			return err
		}
		value = stream
		endKey, err = p.readToken()
		if err != nil {
			return err
		}
	}

	key := ObjectRef{Number: uint32(num), Generation: uint16(gen)}
	p.doc.ObjectFromPool(key).SetValue(value)

	if endKey != "endobj" && !p.src.IsEOF() {
		if _, convErr := strconv.ParseFloat(endKey, 64); convErr == nil {
			// The next object's number; endobj never arrived.
			p.src.Unread([]byte(endKey + " "))
		} else if endKey == "xref" || endKey == "trailer" || endKey == "startxref" || endKey == "" {
			// The next file section has started; endobj never arrived.
			p.src.Unread([]byte(endKey))
		} else {
			// One more try, for writers that leave garbage between the
			// value and its endobj.
			second, err := p.readToken()
			if err != nil {
				return err
			}
			if second != "endobj" {
				return expectedKeyword("endobj", endKey)
			}
		}
	}
	return p.skipSpaces()
}

// parseXrefTable reads a cross-reference table, keeping only the
// subsection headers. The entries themselves are skipped line by line;
// the pool is populated by parsing every object, so the offsets would
// never be used.
func (p *Parser) parseXrefTable() error {
	line, err := p.src.ReadLine()
	if err != nil {
		return ioError(err)
	}
	if strings.TrimSpace(line) != "xref" {
		return nil
	}
	for {
		start, err := p.readInt()
		if err != nil {
			return err
		}
		count, err := p.readInt()
		if err != nil {
			return err
		}
		if err := p.skipSpaces(); err != nil {
			return err
		}
		for i := int64(0); i < count; i++ {
			if p.src.IsEOF() {
				break
			}
			b, err := p.src.Peek()
			if err != nil || b == 't' || !isDigit(b) {
				break
			}
			if _, err := p.src.ReadLine(); err != nil && err != io.EOF {
				return ioError(err)
			}
			if err := p.skipSpaces(); err != nil {
				return err
			}
		}
		p.doc.AddXRefSection(XRefSection{Start: start, Count: count})
		if err := p.skipSpaces(); err != nil {
			return err
		}
		b, err := p.src.Peek()
		if err != nil || !isDigit(b) {
			return nil
		}
	}
}

// parseTrailer reads a trailer section and merges it into the document
// trailer. With a linear scan the first trailer seen is the most recent
// incremental update, so on conflicting keys the existing entry wins.
func (p *Parser) parseTrailer() error {
	line, err := p.src.ReadLine()
	if err != nil {
		return ioError(err)
	}
	if strings.TrimSpace(line) != "trailer" {
		return nil
	}
	if err := p.skipSpaces(); err != nil {
		return err
	}
	obj, err := p.parseDirObject()
	if err != nil {
		return err
	}
	parsed, ok := obj.(Dict)
	if !ok {
		return expectedKeyword("dictionary", obj.Type().String())
	}
	trailer := p.doc.Trailer()
	if trailer == nil {
		p.doc.SetTrailer(parsed)
	} else {
		for k, v := range parsed {
			if !trailer.Has(k) {
				trailer[k] = v
			}
		}
	}
	return p.skipSpaces()
}

// parseStartXref reads the startxref line and its offset. The offset is
// the entry point for random-access readers; the linear scan has no use
// for it.
func (p *Parser) parseStartXref() error {
	line, err := p.src.ReadLine()
	if err != nil {
		return ioError(err)
	}
	if strings.TrimSpace(line) != "startxref" {
		return nil
	}
	if err := p.skipSpaces(); err != nil {
		return err
	}
	_, err = p.readInt()
	return err
}

// expectEOFMarker requires the %%EOF comment after startxref. A file
// that simply ends instead is accepted.
func (p *Parser) expectEOFMarker() error {
	if err := p.skipSpacesNoComment(); err != nil {
		return err
	}
	if p.src.IsEOF() {
		return nil
	}
	var got []byte
	for len(got) < len("%%EOF") {
		b, err := p.src.ReadByte()
		if err != nil {
			break
		}
		got = append(got, b)
	}
	if string(got) != "%%EOF" {
		if p.src.IsEOF() {
			// The file just ends; close enough.
			return nil
		}
		return &ParseError{Kind: KindExpectedEOF, Actual: string(got)}
	}
	return nil
}

// skipSpacesNoComment consumes whitespace only, leaving % alone so the
// %%EOF marker survives.
func (p *Parser) skipSpacesNoComment() error {
	for {
		b, err := p.src.Peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ioError(err)
		}
		if !isWhitespace(b) {
			return nil
		}
		p.src.ReadByte()
	}
}
