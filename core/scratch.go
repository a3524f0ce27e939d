package core

import (
	"fmt"
	"io"
	"os"
)

// ScratchFile is the random-access temp file a document spills stream
// payloads into. It is an append-only arena: Allocate hands out an
// offset, WriteAt fills it, ReaderAt reads it back. The owning document
// closes and deletes the file; every stream handle into it becomes
// invalid at that point.
type ScratchFile struct {
	file   *os.File
	size   int64
	closed bool
}

// NewScratchFile creates a scratch file under dir. An empty dir means
// the system temp directory.
func NewScratchFile(dir string) (*ScratchFile, error) {
	f, err := os.CreateTemp(dir, "carousel-scratch-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	return &ScratchFile{file: f}, nil
}

// Allocate reserves n bytes and returns the offset of the reservation.
func (s *ScratchFile) Allocate(n int64) (int64, error) {
	if s.closed {
		return 0, ErrDocumentClosed
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid allocation size: %d", n)
	}
	offset := s.size
	s.size += n
	return offset, nil
}

// WriteAt writes b at the given offset.
func (s *ScratchFile) WriteAt(offset int64, b []byte) error {
	if s.closed {
		return ErrDocumentClosed
	}
	if _, err := s.file.WriteAt(b, offset); err != nil {
		return fmt.Errorf("failed to write scratch data: %w", err)
	}
	return nil
}

// ReaderAt returns a reader over n bytes starting at offset. The reader
// borrows the scratch file and must not be used after Close.
func (s *ScratchFile) ReaderAt(offset, n int64) (io.Reader, error) {
	if s.closed {
		return nil, ErrDocumentClosed
	}
	return io.NewSectionReader(s.file, offset, n), nil
}

// ReadAt reads back n bytes starting at offset.
func (s *ScratchFile) ReadAt(offset, n int64) ([]byte, error) {
	r, err := s.ReaderAt(offset, n)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read scratch data: %w", err)
	}
	return buf, nil
}

// Closed reports whether the scratch file has been released.
func (s *ScratchFile) Closed() bool {
	return s.closed
}

// Close closes and deletes the scratch file. It is idempotent.
func (s *ScratchFile) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	name := s.file.Name()
	err := s.file.Close()
	if rmErr := os.Remove(name); err == nil {
		err = rmErr
	}
	return err
}
