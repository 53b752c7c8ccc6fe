package testhelper

import (
	"fmt"
	"io"
	"os"

	"github.com/diskfs/go-fatdecode/backend"
)

type reader func(b []byte, offset int64) (int, error)
type seeker func(offset int64, whence int) (int64, error)

// FileImpl implement github.com/diskfs/go-fatdecode/backend.Storage
// used for testing to enable stubbing out files
type FileImpl struct {
	Reader reader
	// Seeker overrides the default position tracking when set
	Seeker seeker
	Info   os.FileInfo
	pos    int64
}

func (f *FileImpl) Stat() (os.FileInfo, error) {
	return f.Info, nil
}

// Read reads from the current position, as set by Seek
func (f *FileImpl) Read(b []byte) (int, error) {
	n, err := f.Reader(b, f.pos)
	if n > 0 {
		f.pos += int64(n)
	}
	return n, err
}

func (f *FileImpl) Close() error {
	return nil
}

// ReadAt read at a particular offset
func (f *FileImpl) ReadAt(b []byte, offset int64) (int, error) {
	return f.Reader(b, offset)
}

// Seek sets the position used by Read. Without a Seeker only io.SeekStart and
// io.SeekCurrent are supported.
func (f *FileImpl) Seek(offset int64, whence int) (int64, error) {
	if f.Seeker != nil {
		pos, err := f.Seeker(offset, whence)
		if err == nil {
			f.pos = pos
		}
		return pos, err
	}
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += f.pos
	default:
		return 0, fmt.Errorf("FileImpl does not implement Seek() with whence %d", whence)
	}
	if offset < 0 {
		return 0, fmt.Errorf("negative position %d", offset)
	}
	f.pos = offset
	return offset, nil
}

func (f *FileImpl) Sys() (*os.File, error) {
	return nil, backend.ErrNotSuitable
}

// BytesFile returns a FileImpl serving the contents of b, like a disk image of exactly len(b) bytes
func BytesFile(b []byte) *FileImpl {
	return &FileImpl{
		Reader: func(p []byte, offset int64) (int, error) {
			if offset >= int64(len(b)) {
				return 0, io.EOF
			}
			n := copy(p, b[offset:])
			if n < len(p) {
				return n, io.EOF
			}
			return n, nil
		},
	}
}
