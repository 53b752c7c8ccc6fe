// Package fat32 decodes FAT32 volumes read-only: the boot sector, the volume layout, raw
// data clusters and the short-name directory entries stored in them.
//
// It does not follow cluster chains through the File Allocation Table, so a directory
// is decoded one cluster at a time.
package fat32

import (
	"errors"
	"fmt"
	"io"

	"github.com/diskfs/go-fatdecode/backend"
	"github.com/diskfs/go-fatdecode/backend/file"
	"github.com/diskfs/go-fatdecode/filesystem"
	log "github.com/sirupsen/logrus"
)

// FileSystem is a handle on a FAT32 volume. It owns its backing storage, and every read goes
// through it.
//
// A FileSystem is not safe for concurrent use: a cluster read is a seek followed by a read,
// so callers that share one must serialize access.
type FileSystem struct {
	backend backend.Storage
	layout  Layout
}

// filesystem.FileSystem interface guard
var _ filesystem.FileSystem = (*FileSystem)(nil)

// Read reads a filesystem from the given storage, which must start with the boot sector.
// Use backend.Sub for a volume inside a partition.
//
// returns ErrRead if the boot record cannot be read in full, or ErrDegenerateLayout if the
// geometry it describes cannot address a cluster
func Read(b backend.Storage) (*FileSystem, error) {
	br, err := readBootRecord(b)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"bytesPerSector":       br.bytesPerSector,
		"sectorsPerCluster":    br.sectorsPerCluster,
		"reservedSectors":      br.reservedSectors,
		"fatCopies":            br.fatCopies,
		"sectorsPerFAT":        br.sectorsPerFAT,
		"rootDirectoryCluster": br.rootDirectoryCluster,
		"fsInfoSector":         br.fsInfoSector,
	}).Debug("read boot record")

	layout, err := layoutFromBootRecord(br)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"fatStart":      layout.FATStart,
		"clustersStart": layout.ClustersStart,
		"clusterSize":   layout.ClusterSize,
		"rootDir":       layout.RootDir,
	}).Debug("computed layout")

	return &FileSystem{
		backend: b,
		layout:  layout,
	}, nil
}

// Open opens the image or device at path read-only and reads the filesystem on it.
// Every failure is reported as ErrOpen, wrapping the cause.
func Open(path string) (*FileSystem, error) {
	b, err := file.OpenFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	fs, err := Read(b)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w %s: %w", ErrOpen, path, err), b.Close())
	}
	return fs, nil
}

// Type returns the type code for the filesystem. Always returns filesystem.TypeFat32
func (fs *FileSystem) Type() filesystem.Type {
	return filesystem.TypeFat32
}

// Layout returns the geometry of the volume
func (fs *FileSystem) Layout() Layout {
	return fs.layout
}

// Close releases the backing storage
func (fs *FileSystem) Close() error {
	return fs.backend.Close()
}

// ReadCluster returns the contents of a data cluster in a new slice of Layout().ClusterSize bytes.
//
// It always seeks to the absolute position of the cluster first, so it does not depend on
// where an earlier read left the storage.
//
// returns ErrInvalidClusterNumber for clusters below 2, ErrSeekFailure if the position cannot
// be reached and ErrShortRead if the storage ends within the cluster
func (fs *FileSystem) ReadCluster(cluster uint32) ([]byte, error) {
	offset, err := fs.layout.ClusterOffset(cluster)
	if err != nil {
		return nil, err
	}
	pos, err := fs.backend.Seek(offset, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("%w: cluster %d at offset %d: %w", ErrSeekFailure, cluster, offset, err)
	}
	if pos != offset {
		return nil, fmt.Errorf("%w: cluster %d at offset %d, storage is at %d", ErrSeekFailure, cluster, offset, pos)
	}
	b := make([]byte, fs.layout.ClusterSize)
	n, err := io.ReadFull(fs.backend, b)
	if err != nil {
		return nil, fmt.Errorf("%w: cluster %d at offset %d, read %d of %d bytes: %w", ErrShortRead, cluster, offset, n, len(b), err)
	}
	log.Tracef("read cluster %d at offset %d", cluster, offset)
	return b, nil
}

// ReadDirectory reads a directory cluster and decodes its entries
func (fs *FileSystem) ReadDirectory(cluster uint32) ([]DirectoryEntry, error) {
	b, err := fs.ReadCluster(cluster)
	if err != nil {
		return nil, err
	}
	return DecodeDirectory(b)
}

// ReadRootDirectory decodes the first cluster of the root directory
func (fs *FileSystem) ReadRootDirectory() ([]DirectoryEntry, error) {
	return fs.ReadDirectory(fs.layout.RootDir)
}
