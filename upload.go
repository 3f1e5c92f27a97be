package imagegen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// ChunkSize is the largest slice FileStream.Next hands out.
const ChunkSize = 64 << 10

// ErrStreamConsumed is returned by WriteTo on a stream that was already read.
var ErrStreamConsumed = errors.New("file stream already consumed")

// FileStream yields a file's bytes in chunks from a single reused buffer. It
// can be drained once; sending again requires a new stream from the path.
type FileStream struct {
	path string
	f    *os.File
	buf  []byte

	started bool
	err     error // sticky; io.EOF once exhausted

	closeOnce sync.Once
	closeErr  error
}

// OpenFileStream opens path for sequential reading.
func OpenFileStream(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, imageReadErr(err)
	}
	return &FileStream{path: path, f: f}, nil
}

// Next returns the next chunk. The slice is only valid until the following
// call. At end of file it returns io.EOF, and keeps returning it.
func (s *FileStream) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.started = true
	if s.buf == nil {
		s.buf = make([]byte, ChunkSize)
	}
	for {
		n, err := s.f.Read(s.buf)
		if n > 0 {
			if err != nil && err != io.EOF {
				s.err = imageReadErr(err)
			}
			return s.buf[:n], nil
		}
		switch {
		case err == io.EOF:
			s.err = io.EOF
			s.Close()
			return nil, io.EOF
		case err != nil:
			s.err = imageReadErr(err)
			return nil, s.err
		}
	}
}

// WriteTo drains the stream into w.
func (s *FileStream) WriteTo(w io.Writer) (int64, error) {
	if s.started {
		return 0, ErrStreamConsumed
	}
	var total int64
	for {
		chunk, err := s.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		n, err := w.Write(chunk)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
}

// Close releases the file handle. It is safe to call more than once.
func (s *FileStream) Close() error {
	s.closeOnce.Do(func() {
		if err := s.f.Close(); err != nil {
			s.closeErr = fmt.Errorf("close %s: %w", s.path, err)
		}
	})
	return s.closeErr
}
