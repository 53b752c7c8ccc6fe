package backend

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

var (
	ErrNotSuitable = errors.New("backing file is not suitable")
)

// File is the read-only view of a backing store: seek-and-read plus positional reads.
type File interface {
	fs.File
	io.ReaderAt
	io.Seeker
	io.Closer
}

type Storage interface {
	File
	// OS-specific file for ioctl calls via fd
	Sys() (*os.File, error)
}
