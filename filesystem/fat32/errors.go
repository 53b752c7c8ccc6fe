package fat32

import "errors"

// These errors are returned wrapped with context; check for them with errors.Is.
var (
	// ErrOpen the backing store could not be opened or did not hold a usable volume
	ErrOpen = errors.New("could not open FAT filesystem")
	// ErrRead fewer bytes than a required region were available
	ErrRead = errors.New("could not read required region")
	// ErrDegenerateLayout the boot sector describes a zero-sized sector or cluster
	ErrDegenerateLayout = errors.New("degenerate filesystem layout")
	// ErrInvalidClusterNumber data clusters are numbered from 2
	ErrInvalidClusterNumber = errors.New("invalid cluster number")
	// ErrShortRead the storage ended before a full cluster was read
	ErrShortRead = errors.New("short read")
	// ErrSeekFailure the storage could not be positioned at the computed offset
	ErrSeekFailure = errors.New("seek failure")
	// ErrIndexOutOfRange a directory record index past the end of the buffer
	ErrIndexOutOfRange = errors.New("directory record index out of range")
)
