// Package disk provides utilities for working directly with a disk
//
// Most of the provided functions are intelligent wrappers around implementations of
// github.com/diskfs/go-fatdecode/partition/mbr and github.com/diskfs/go-fatdecode/filesystem/fat32
package disk

import (
	"fmt"
	"io/fs"

	"github.com/diskfs/go-fatdecode/backend"
	"github.com/diskfs/go-fatdecode/backend/compressed"
	"github.com/diskfs/go-fatdecode/filesystem/fat32"
	"github.com/diskfs/go-fatdecode/partition/mbr"
	log "github.com/sirupsen/logrus"
)

// Disk is a reference to a single disk block device or image that has been Open()
type Disk struct {
	Backend           backend.Storage
	Info              fs.FileInfo
	Type              Type
	Size              int64
	LogicalBlocksize  int64
	PhysicalBlocksize int64
	// Table is nil when the disk holds no MBR partition table
	Table *mbr.Table
	// Compression is the format the image was stored in before it was inflated
	Compression compressed.Format
}

// Type represents the type of disk this is
type Type int

const (
	// File is a file-based disk image
	File Type = iota
	// Device is an OS-managed block device
	Device
)

func (t Type) String() string {
	switch t {
	case File:
		return "file"
	case Device:
		return "device"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// GetPartitionTable retrieves the MBR partition table for a Disk
//
// returns an error if the Disk is invalid or the first sector holds no partition table
func (d *Disk) GetPartitionTable() (*mbr.Table, error) {
	return mbr.Read(d.Backend, int(d.LogicalBlocksize), int(d.PhysicalBlocksize))
}

// DefaultPartition returns the partition a filesystem is most likely on: the first FAT
// partition of the table, or 0 for the entire disk if there is none
func (d *Disk) DefaultPartition() int {
	if d.Table == nil {
		return 0
	}
	return d.Table.FirstFAT()
}

// GetFilesystem gets the FAT32 filesystem that already exists on a disk image
//
// pass the desired partition number, or 0 to read the filesystem on the entire block device / disk image
//
// The filesystem reads through the storage of the disk, so closing it closes the disk as well.
//
// returns error if there was an error reading the filesystem, or the partition table is invalid and did not
// request the entire disk.
func (d *Disk) GetFilesystem(partition int) (*fat32.FileSystem, error) {
	var (
		size, start int64
	)

	switch {
	case partition == 0:
		size = d.Size
		start = 0
	case partition < 0:
		return nil, NewInvalidPartitionError(partition)
	case d.Table == nil:
		return nil, &NoPartitionTableError{}
	case partition > len(d.Table.Partitions):
		return nil, NewMaxPartitionsExceededError(partition, len(d.Table.Partitions))
	default:
		p, err := d.Table.GetPartition(partition)
		if err != nil {
			return nil, NewInvalidPartitionError(partition)
		}
		if !p.Type.IsFAT() {
			log.Warnf("partition %d has type %s, reading it as FAT anyway", partition, p.Type)
		}
		size = p.GetSize()
		start = p.GetStart()
	}

	log.Debugf("reading filesystem on partition %d, start %d size %d", partition, start, size)
	fat32FS, err := fat32.Read(backend.Sub(d.Backend, start, size))
	if err != nil {
		return nil, NewUnknownFilesystemError(partition, err)
	}
	return fat32FS, nil
}

// Close releases the storage of the disk
func (d *Disk) Close() error {
	return d.Backend.Close()
}
