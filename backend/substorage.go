package backend

import (
	"io"
	"io/fs"
	"os"
)

// SubStorage is a window of size bytes starting at offset in the underlying Storage,
// typically a single partition of a disk. Offsets passed to ReadAt and Seek are
// relative to the start of the window.
type SubStorage struct {
	underlying Storage
	offset     int64
	size       int64
}

func Sub(u Storage, offset, size int64) Storage {
	return &SubStorage{
		underlying: u,
		offset:     offset,
		size:       size,
	}
}

// backend.Storage interface guard
var _ Storage = (*SubStorage)(nil)

func (s *SubStorage) Stat() (fs.FileInfo, error) {
	return s.underlying.Stat()
}

// Read reads from the current position of the underlying storage, clipped to the window.
func (s *SubStorage) Read(b []byte) (int, error) {
	pos, err := s.underlying.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	n, err := s.ReadAt(b, pos-s.offset)
	if n > 0 {
		if _, serr := s.underlying.Seek(pos+int64(n), io.SeekStart); serr != nil && err == nil {
			err = serr
		}
	}
	return n, err
}

func (s *SubStorage) Close() error {
	return s.underlying.Close()
}

func (s *SubStorage) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off >= s.size {
		return 0, io.EOF
	}
	if remaining := s.size - off; int64(len(p)) > remaining {
		n, err = s.underlying.ReadAt(p[:remaining], s.offset+off)
		if err == nil {
			err = io.EOF
		}
		return n, err
	}
	return s.underlying.ReadAt(p, s.offset+off)
}

func (s *SubStorage) Seek(offset int64, whence int) (int64, error) {
	var (
		pos int64
		err error
	)

	switch whence {
	case io.SeekStart:
		pos, err = s.underlying.Seek(offset+s.offset, io.SeekStart)
	case io.SeekCurrent:
		pos, err = s.underlying.Seek(offset, io.SeekCurrent)
	case io.SeekEnd:
		pos, err = s.underlying.Seek(s.offset+s.size+offset, io.SeekStart)
	default:
		return -1, ErrNotSuitable
	}

	if err != nil {
		return -1, err
	}

	return pos - s.offset, nil
}

func (s *SubStorage) Sys() (*os.File, error) {
	return s.underlying.Sys()
}
