// Package compressed provides a backend.Storage for disk images shipped xz or lz4 compressed.
//
// Neither format supports random access, so the image is inflated into memory once, and
// the resulting bytes are served through the usual seek-and-read interface. Uncompressed
// input is handed back untouched.
package compressed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/diskfs/go-fatdecode/backend"
	"github.com/diskfs/go-fatdecode/backend/file"
	"github.com/pierrec/lz4"
	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
)

// Format is the compression format of an image
type Format int

const (
	// None is an uncompressed image
	None Format = iota
	// XZ is an image compressed with xz
	XZ
	// LZ4 is an image compressed with the lz4 frame format
	LZ4
)

var (
	xzMagic  = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (f Format) String() string {
	switch f {
	case XZ:
		return "xz"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// Detect sniffs the leading magic bytes of r
func Detect(r io.ReaderAt) Format {
	b := make([]byte, len(xzMagic))
	n, _ := r.ReadAt(b, 0)
	b = b[:n]
	switch {
	case bytes.HasPrefix(b, xzMagic):
		return XZ
	case bytes.HasPrefix(b, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// New returns a Storage for f, inflating it into memory when it is compressed.
// When the content is inflated, f is closed once it has been fully read.
func New(f backend.File) (backend.Storage, Format, error) {
	format := Detect(f)
	if format == None {
		if s, ok := f.(backend.Storage); ok {
			return s, None, nil
		}
		return file.New(f), None, nil
	}

	info, err := f.Stat()
	if err != nil {
		return nil, format, fmt.Errorf("could not stat compressed image: %w", err)
	}
	if info == nil {
		return nil, format, errors.New("compressed image has no file info")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, format, fmt.Errorf("could not rewind compressed image: %w", err)
	}

	var r io.Reader
	switch format {
	case XZ:
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, format, fmt.Errorf("could not read xz stream: %w", err)
		}
		r = xr
	case LZ4:
		r = lz4.NewReader(f)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return nil, format, fmt.Errorf("could not decompress %s image after %d bytes: %w", format, n, err)
	}
	log.Debugf("inflated %s image from %d to %d bytes", format, info.Size(), n)
	if err := f.Close(); err != nil {
		return nil, format, fmt.Errorf("could not close compressed image: %w", err)
	}

	return &memoryStorage{
		Reader: bytes.NewReader(buf.Bytes()),
		info:   memoryFileInfo{FileInfo: info, size: n},
	}, format, nil
}

type memoryStorage struct {
	*bytes.Reader
	info memoryFileInfo
}

// backend.Storage interface guard
var _ backend.Storage = (*memoryStorage)(nil)

func (m *memoryStorage) Stat() (fs.FileInfo, error) {
	return m.info, nil
}

func (m *memoryStorage) Close() error {
	return nil
}

func (m *memoryStorage) Sys() (*os.File, error) {
	return nil, backend.ErrNotSuitable
}

// memoryFileInfo reports the inflated size, everything else comes from the compressed file
type memoryFileInfo struct {
	fs.FileInfo
	size int64
}

func (i memoryFileInfo) Size() int64 {
	return i.size
}

func (i memoryFileInfo) Mode() fs.FileMode {
	return i.FileInfo.Mode() &^ fs.ModeType
}
