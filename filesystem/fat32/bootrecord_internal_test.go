package fat32

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/diskfs/go-fatdecode/testhelper"
	"github.com/google/go-cmp/cmp"
)

func getValidBootRecord() *bootRecord {
	return &bootRecord{
		bytesPerSector:       512,
		sectorsPerCluster:    1,
		reservedSectors:      32,
		fatCopies:            2,
		sectorsPerFAT:        8,
		rootDirectoryCluster: 2,
		fsInfoSector:         1,
	}
}

func TestBootRecordFromBytes(t *testing.T) {
	t.Run("short byte slice", func(t *testing.T) {
		b := make([]byte, BootRecordSize-1)
		br, err := bootRecordFromBytes(b)
		if br != nil {
			t.Fatalf("returned boot record was non-nil")
		}
		if !errors.Is(err, ErrRead) {
			t.Errorf("error %v instead of expected %v", err, ErrRead)
		}
	})
	t.Run("valid data", func(t *testing.T) {
		b := testhelper.DefaultFATImage().BootSector()
		br, err := bootRecordFromBytes(b)
		if err != nil {
			t.Fatalf("returned unexpected non-nil error: %v", err)
		}
		if diff := cmp.Diff(getValidBootRecord(), br, cmp.AllowUnexported(bootRecord{})); diff != "" {
			t.Errorf("mismatched boot record (-want +got):\n%s", diff)
		}
	})
	t.Run("fixed offsets little-endian", func(t *testing.T) {
		b := make([]byte, BootRecordSize)
		binary.LittleEndian.PutUint16(b[0x0b:], 0x0400)
		b[0x0d] = 0x08
		binary.LittleEndian.PutUint16(b[0x0e:], 0x1234)
		b[0x10] = 0x03
		binary.LittleEndian.PutUint32(b[0x24:], 0xa1b2c3d4)
		binary.LittleEndian.PutUint32(b[0x2c:], 0x00010005)
		binary.LittleEndian.PutUint16(b[0x30:], 0x0006)
		br, err := bootRecordFromBytes(b)
		if err != nil {
			t.Fatalf("returned unexpected non-nil error: %v", err)
		}
		expected := bootRecord{
			bytesPerSector:       1024,
			sectorsPerCluster:    8,
			reservedSectors:      0x1234,
			fatCopies:            3,
			sectorsPerFAT:        0xa1b2c3d4,
			rootDirectoryCluster: 0x00010005,
			fsInfoSector:         6,
		}
		if *br != expected {
			t.Errorf("mismatched boot record, actual %+v expected %+v", *br, expected)
		}
	})
	t.Run("no signature validation", func(t *testing.T) {
		b := testhelper.DefaultFATImage().BootSector()
		b[0], b[510], b[511] = 0, 0, 0
		if _, err := bootRecordFromBytes(b); err != nil {
			t.Errorf("returned unexpected non-nil error: %v", err)
		}
	})
}

func TestReadBootRecord(t *testing.T) {
	tests := []struct {
		name string
		f    *testhelper.FileImpl
		err  error
	}{
		{"valid", testhelper.BytesFile(testhelper.DefaultFATImage().Bytes()), nil},
		{"truncated", testhelper.BytesFile(make([]byte, 100)), ErrRead},
		{"empty", testhelper.BytesFile(nil), ErrRead},
		{"read error", &testhelper.FileImpl{
			Reader: func(b []byte, offset int64) (int, error) {
				return 0, errors.New("device went away")
			},
		}, ErrRead},
		{"seek error", &testhelper.FileImpl{
			Reader: func(b []byte, offset int64) (int, error) {
				return len(b), nil
			},
			Seeker: func(offset int64, whence int) (int64, error) {
				return 0, io.ErrClosedPipe
			},
		}, ErrRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br, err := readBootRecord(tt.f)
			if !errors.Is(err, tt.err) || (tt.err == nil && err != nil) {
				t.Fatalf("mismatched errors, actual %v expected %v", err, tt.err)
			}
			if tt.err == nil && *br != *getValidBootRecord() {
				t.Errorf("mismatched boot record %+v", *br)
			}
		})
	}
}

// the boot record is read from offset 0 even when the storage was positioned elsewhere
func TestReadBootRecordSeeksToStart(t *testing.T) {
	f := testhelper.BytesFile(testhelper.DefaultFATImage().Bytes())
	if _, err := f.Seek(4096, io.SeekStart); err != nil {
		t.Fatalf("unexpected seek error: %v", err)
	}
	br, err := readBootRecord(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if br.bytesPerSector != 512 {
		t.Errorf("read boot record from wrong position, bytes per sector %d", br.bytesPerSector)
	}
}
