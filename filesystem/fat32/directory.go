package fat32

import (
	"fmt"
)

// DecodeDirectory decodes the 32-byte records of a directory cluster in the order they appear.
// A record starting with 0x00 ends the directory and nothing after it is examined; a record
// starting with 0xE5 is a deleted entry and is skipped. A trailing partial record is ignored.
//
// Decoding holds no state, so calling it again on the same bytes yields the same entries.
func DecodeDirectory(b []byte) ([]DirectoryEntry, error) {
	count := len(b) / directoryEntrySize
	entries := make([]DirectoryEntry, 0, count)
	for i := 0; i < count; i++ {
		record, err := directoryRecord(b, i)
		if err != nil {
			return nil, err
		}
		switch record[0] {
		case entryEndOfDirectory:
			return entries, nil
		case entryDeleted:
			continue
		}
		entries = append(entries, directoryEntryFromBytes(record))
	}
	return entries, nil
}

// directoryRecord returns record index of b. It is an error to ask for a record that
// does not fit entirely in b.
func directoryRecord(b []byte, index int) ([]byte, error) {
	if index < 0 || (index+1)*directoryEntrySize > len(b) {
		return nil, fmt.Errorf("%w: record %d of a %d byte buffer", ErrIndexOutOfRange, index, len(b))
	}
	start := index * directoryEntrySize
	return b[start : start+directoryEntrySize], nil
}
