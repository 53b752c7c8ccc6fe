// Package filesystem provides interfaces and constants required for filesystem implementations.
// All interesting implementations are in subpackages, e.g. github.com/diskfs/go-fatdecode/filesystem/fat32
package filesystem

// FileSystem is a read-only reference to a single filesystem on a disk
type FileSystem interface {
	// Type return the type of filesystem
	Type() Type
	// ReadCluster returns the raw contents of a single data cluster
	ReadCluster(cluster uint32) ([]byte, error)
	// Close releases the backing storage
	Close() error
}

// Type represents the type of filesystem this is
type Type int

const (
	// TypeFat32 is a FAT32 compatible filesystem
	TypeFat32 Type = iota
)

func (t Type) String() string {
	switch t {
	case TypeFat32:
		return "fat32"
	default:
		return "unknown"
	}
}
