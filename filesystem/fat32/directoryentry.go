package fat32

import (
	"encoding/binary"
	"io/fs"
	"strings"
	"time"

	"github.com/diskfs/go-fatdecode/util/timestamp"
)

// Attribute is the attribute byte of a directory entry
type Attribute byte

const (
	AttrReadOnly    Attribute = 0x01
	AttrHidden      Attribute = 0x02
	AttrSystem      Attribute = 0x04
	AttrVolumeLabel Attribute = 0x08
	AttrDirectory   Attribute = 0x10
	AttrArchive     Attribute = 0x20
	// AttrLongName marks a VFAT long filename record
	AttrLongName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeLabel
)

func (a Attribute) IsReadOnly() bool    { return a&AttrReadOnly != 0 }
func (a Attribute) IsHidden() bool      { return a&AttrHidden != 0 }
func (a Attribute) IsSystem() bool      { return a&AttrSystem != 0 }
func (a Attribute) IsVolumeLabel() bool { return a&AttrVolumeLabel != 0 && !a.IsLongName() }
func (a Attribute) IsDirectory() bool   { return a&AttrDirectory != 0 }
func (a Attribute) IsArchive() bool     { return a&AttrArchive != 0 }
func (a Attribute) IsLongName() bool    { return a&0x3f == AttrLongName }

// String renders the attributes in the RHSVDA order used by DOS attrib
func (a Attribute) String() string {
	flags := []struct {
		set bool
		c   byte
	}{
		{a.IsReadOnly(), 'R'},
		{a.IsHidden(), 'H'},
		{a.IsSystem(), 'S'},
		{a&AttrVolumeLabel != 0, 'V'},
		{a.IsDirectory(), 'D'},
		{a.IsArchive(), 'A'},
	}
	b := make([]byte, len(flags))
	for i, f := range flags {
		b[i] = '-'
		if f.set {
			b[i] = f.c
		}
	}
	return string(b)
}

const (
	directoryEntrySize = 32

	entryEndOfDirectory byte = 0x00
	entryDeleted        byte = 0xe5
	// entryKanjiE5 stands in for a real leading 0xE5 in a name
	entryKanjiE5 byte = 0x05

	nameFill      = " "
	nameSeparator = "."
)

// DirectoryEntry is a single decoded 32-byte directory record
type DirectoryEntry struct {
	// Name is the base name without trailing spaces, a ".", and the 3-byte extension as stored
	Name         string
	IsDirectory  bool
	StartCluster uint32
	// FileSize is only meaningful for files
	FileSize   uint32
	Attributes Attribute
	// ModTime last write time; zero if the record holds no valid date
	ModTime time.Time
}

// directoryEntryFromBytes decodes one record, which must be directoryEntrySize bytes
func directoryEntryFromBytes(b []byte) DirectoryEntry {
	attr := Attribute(b[0x0b])
	hi := binary.LittleEndian.Uint16(b[0x14:0x16])
	lo := binary.LittleEndian.Uint16(b[0x1a:0x1c])
	return DirectoryEntry{
		Name:         strings.TrimRight(string(b[0:8]), nameFill) + nameSeparator + string(b[8:11]),
		IsDirectory:  attr.IsDirectory(),
		StartCluster: uint32(hi)<<16 | uint32(lo),
		FileSize:     binary.LittleEndian.Uint32(b[0x1c:0x20]),
		Attributes:   attr,
		ModTime:      timestamp.FromDOS(binary.LittleEndian.Uint16(b[0x18:0x1a]), binary.LittleEndian.Uint16(b[0x16:0x18])),
	}
}

// ShortName is the name as a user would type it: the extension is trimmed and the
// separator left out when there is no extension, and a leading 0x05 is shown as 0xE5.
func (d DirectoryEntry) ShortName() string {
	i := len(d.Name) - len(nameSeparator) - 3
	if i < 0 {
		return d.Name
	}
	base, ext := d.Name[:i], d.Name[i+len(nameSeparator):]
	if len(base) > 0 && base[0] == entryKanjiE5 {
		base = string([]byte{entryDeleted}) + base[1:]
	}
	ext = strings.TrimRight(ext, nameFill)
	if ext == "" {
		return base
	}
	return base + nameSeparator + ext
}

// FileInfo exposes the entry as an fs.FileInfo
func (d DirectoryEntry) FileInfo() fs.FileInfo {
	return entryFileInfo{entry: d}
}

type entryFileInfo struct {
	entry DirectoryEntry
}

func (e entryFileInfo) Name() string {
	return e.entry.ShortName()
}

func (e entryFileInfo) Size() int64 {
	if e.entry.IsDirectory {
		return 0
	}
	return int64(e.entry.FileSize)
}

func (e entryFileInfo) Mode() fs.FileMode {
	mode := fs.FileMode(0o644)
	if e.entry.Attributes.IsReadOnly() {
		mode = 0o444
	}
	if e.entry.IsDirectory {
		mode |= fs.ModeDir | 0o111
	}
	return mode
}

func (e entryFileInfo) ModTime() time.Time {
	return e.entry.ModTime
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsDirectory
}

func (e entryFileInfo) Sys() any {
	return e.entry
}
