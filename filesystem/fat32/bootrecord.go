package fat32

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/diskfs/go-fatdecode/backend"
)

// BootRecordSize is the number of leading bytes of the volume read to decode the boot record
const BootRecordSize = 256

// bootRecord holds the geometry fields of the boot sector. It only lives long enough
// to compute a Layout.
type bootRecord struct {
	bytesPerSector       uint16
	sectorsPerCluster    uint8
	reservedSectors      uint16
	fatCopies            uint8
	sectorsPerFAT        uint32
	rootDirectoryCluster uint32
	fsInfoSector         uint16
}

// bootRecordFromBytes decodes the boot record from the start of the volume.
// There is no validation of the signature or filesystem type.
func bootRecordFromBytes(b []byte) (*bootRecord, error) {
	if len(b) < BootRecordSize {
		return nil, fmt.Errorf("%w: boot record needs %d bytes, have %d", ErrRead, BootRecordSize, len(b))
	}
	return &bootRecord{
		bytesPerSector:       binary.LittleEndian.Uint16(b[0x0b:0x0d]),
		sectorsPerCluster:    b[0x0d],
		reservedSectors:      binary.LittleEndian.Uint16(b[0x0e:0x10]),
		fatCopies:            b[0x10],
		sectorsPerFAT:        binary.LittleEndian.Uint32(b[0x24:0x28]),
		rootDirectoryCluster: binary.LittleEndian.Uint32(b[0x2c:0x30]),
		fsInfoSector:         binary.LittleEndian.Uint16(b[0x30:0x32]),
	}, nil
}

// readBootRecord reads and decodes the boot record at absolute offset 0 of f
func readBootRecord(f backend.File) (*bootRecord, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: could not seek to boot sector: %w", ErrRead, err)
	}
	b := make([]byte, BootRecordSize)
	n, err := io.ReadFull(f, b)
	if err != nil {
		return nil, fmt.Errorf("%w: read %d of %d boot record bytes: %w", ErrRead, n, BootRecordSize, err)
	}
	return bootRecordFromBytes(b)
}
