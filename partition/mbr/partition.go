package mbr

import (
	"encoding/binary"
	"fmt"
)

const partitionEntrySize = 16

// Type constants for the MBR partition types a FAT volume may carry, and a few common others
type Type byte

// List of MBR partition types
const (
	Empty       Type = 0x00
	Fat12       Type = 0x01
	Fat16Small  Type = 0x04
	Extended    Type = 0x05
	Fat16       Type = 0x06
	NTFS        Type = 0x07
	Fat32CHS    Type = 0x0b
	Fat32LBA    Type = 0x0c
	Fat16LBA    Type = 0x0e
	ExtendedLBA Type = 0x0f
	Linux       Type = 0x83
	LinuxLVM    Type = 0x8e
	EFISystem   Type = 0xef
)

// IsFAT reports whether partitions of this type hold a FAT filesystem
func (t Type) IsFAT() bool {
	switch t {
	case Fat12, Fat16Small, Fat16, Fat32CHS, Fat32LBA, Fat16LBA, EFISystem:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case Empty:
		return "empty"
	case Fat12:
		return "fat12"
	case Fat16Small, Fat16, Fat16LBA:
		return "fat16"
	case Fat32CHS, Fat32LBA:
		return "fat32"
	case Extended, ExtendedLBA:
		return "extended"
	case NTFS:
		return "ntfs"
	case Linux:
		return "linux"
	case LinuxLVM:
		return "lvm"
	case EFISystem:
		return "efi"
	default:
		return fmt.Sprintf("0x%02x", byte(t))
	}
}

// Partition represents the structure of a single partition on the disk
type Partition struct {
	Bootable      bool
	Type          Type
	Start         uint32 // Start first absolute LBA sector for partition
	Size          uint32 // Size number of sectors in partition
	StartCylinder byte
	StartHead     byte
	StartSector   byte
	EndCylinder   byte
	EndHead       byte
	EndSector     byte
	// we need this for calculations
	logicalSectorSize int
}

// partitionFromBytes create a partition entry from 16 bytes
func partitionFromBytes(b []byte, logicalSectorSize int) (*Partition, error) {
	if len(b) != partitionEntrySize {
		return nil, fmt.Errorf("data for partition was %d bytes instead of expected %d", len(b), partitionEntrySize)
	}
	var bootable bool
	switch b[0] {
	case 0x00:
		bootable = false
	case 0x80:
		bootable = true
	default:
		return nil, fmt.Errorf("invalid partition status 0x%02x", b[0])
	}

	return &Partition{
		Bootable:          bootable,
		StartHead:         b[1],
		StartSector:       b[2],
		StartCylinder:     b[3],
		Type:              Type(b[4]),
		EndHead:           b[5],
		EndSector:         b[6],
		EndCylinder:       b[7],
		Start:             binary.LittleEndian.Uint32(b[8:12]),
		Size:              binary.LittleEndian.Uint32(b[12:16]),
		logicalSectorSize: logicalSectorSize,
	}, nil
}

// GetSize returns the size of the partition in bytes
func (p *Partition) GetSize() int64 {
	return int64(p.Size) * int64(p.logicalSectorSize)
}

// GetStart returns the start position of the partition in bytes
func (p *Partition) GetStart() int64 {
	return int64(p.Start) * int64(p.logicalSectorSize)
}
