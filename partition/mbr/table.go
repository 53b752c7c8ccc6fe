// Package mbr reads Master Boot Record partition tables, to locate a FAT volume inside a disk image
package mbr

import (
	"errors"
	"fmt"

	"github.com/diskfs/go-fatdecode/backend"
)

const (
	mbrSize               = 512
	partitionEntriesStart = 446
	partitionEntriesCount = 4
	signatureStart        = 510
)

// ErrNoTable is returned when the first sector does not hold a plausible partition table.
// An unpartitioned FAT volume carries the same 0x55AA signature, so the entries must make sense too.
var ErrNoTable = errors.New("no MBR partition table")

// Table represents an MBR partition table read from a disk
type Table struct {
	Partitions         []*Partition
	LogicalSectorSize  int
	PhysicalSectorSize int
}

// Type report the type of table, always the string "mbr"
func (t *Table) Type() string {
	return "mbr"
}

func tableFromBytes(b []byte, logicalSectorSize int) (*Table, error) {
	if len(b) != mbrSize {
		return nil, fmt.Errorf("data for partition was %d bytes instead of expected %d", len(b), mbrSize)
	}
	if b[signatureStart] != 0x55 || b[signatureStart+1] != 0xaa {
		return nil, fmt.Errorf("%w: invalid MBR Signature %x", ErrNoTable, b[signatureStart:mbrSize])
	}

	parts := make([]*Partition, 0, partitionEntriesCount)
	used := 0
	for i := 0; i < partitionEntriesCount; i++ {
		start := partitionEntriesStart + i*partitionEntrySize
		p, err := partitionFromBytes(b[start:start+partitionEntrySize], logicalSectorSize)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrNoTable, i+1, err)
		}
		if p.Type != Empty {
			if p.Start == 0 || p.Size == 0 {
				return nil, fmt.Errorf("%w: entry %d of type %s has start %d size %d", ErrNoTable, i+1, p.Type, p.Start, p.Size)
			}
			used++
		}
		parts = append(parts, p)
	}
	if used == 0 {
		return nil, fmt.Errorf("%w: all entries are empty", ErrNoTable)
	}

	return &Table{
		Partitions:         parts,
		LogicalSectorSize:  logicalSectorSize,
		PhysicalSectorSize: logicalSectorSize,
	}, nil
}

// Read read a partition table from a disk, given the logical block size and physical block size
func Read(f backend.File, logicalSectorSize, physicalSectorSize int) (*Table, error) {
	b := make([]byte, mbrSize)
	read, err := f.ReadAt(b, 0)
	if read != mbrSize {
		if err == nil {
			err = fmt.Errorf("read only %d bytes of MBR", read)
		}
		return nil, fmt.Errorf("error reading MBR from file: %w", err)
	}

	table, err := tableFromBytes(b, logicalSectorSize)
	if err != nil {
		return nil, err
	}
	table.PhysicalSectorSize = physicalSectorSize
	return table, nil
}

// GetPartition returns partition n, counted from 1
func (t *Table) GetPartition(n int) (*Partition, error) {
	if n < 1 || n > len(t.Partitions) {
		return nil, fmt.Errorf("partition %d out of range 1-%d", n, len(t.Partitions))
	}
	p := t.Partitions[n-1]
	if p.Type == Empty {
		return nil, fmt.Errorf("partition %d is empty", n)
	}
	return p, nil
}

// FirstFAT returns the number of the first partition holding a FAT filesystem, or 0 if there is none
func (t *Table) FirstFAT() int {
	for i, p := range t.Partitions {
		if p.Type.IsFAT() {
			return i + 1
		}
	}
	return 0
}
