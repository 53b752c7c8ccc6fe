package testhelper

import (
	"encoding/binary"
	"strings"
)

// FATImage describes a synthetic FAT32 volume for tests. Only the fields the decoder reads
// are filled into the boot sector, plus the jump instruction and boot signature so that
// the result also looks plausible to other tools.
type FATImage struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	FATCopies         uint8
	SectorsPerFAT     uint32
	RootCluster       uint32
	FSInfoSector      uint16
	// DataClusters is the minimum number of data clusters to allocate
	DataClusters uint32
	// Clusters holds content by cluster number; content is truncated to the cluster size
	Clusters map[uint32][]byte
}

// DefaultFATImage is a small volume: 512 byte sectors, 1 sector per cluster,
// 32 reserved sectors and 2 FATs of 8 sectors each, so data starts at byte 24576.
func DefaultFATImage() FATImage {
	return FATImage{
		BytesPerSector:    512,
		SectorsPerCluster: 1,
		ReservedSectors:   32,
		FATCopies:         2,
		SectorsPerFAT:     8,
		RootCluster:       2,
		FSInfoSector:      1,
		DataClusters:      16,
		Clusters:          map[uint32][]byte{},
	}
}

// ClustersStart is the byte offset of cluster 2
func (img FATImage) ClustersStart() int64 {
	return (int64(img.ReservedSectors) + int64(img.FATCopies)*int64(img.SectorsPerFAT)) * int64(img.BytesPerSector)
}

// ClusterSize is the number of bytes per cluster
func (img FATImage) ClusterSize() int {
	return int(img.SectorsPerCluster) * int(img.BytesPerSector)
}

// BootSector returns the first sector of the volume
func (img FATImage) BootSector() []byte {
	size := int(img.BytesPerSector)
	if size < 512 {
		size = 512
	}
	b := make([]byte, size)
	copy(b[0:3], []byte{0xeb, 0x58, 0x90})
	copy(b[3:11], "MSWIN4.1")
	binary.LittleEndian.PutUint16(b[0x0b:0x0d], img.BytesPerSector)
	b[0x0d] = img.SectorsPerCluster
	binary.LittleEndian.PutUint16(b[0x0e:0x10], img.ReservedSectors)
	b[0x10] = img.FATCopies
	b[0x15] = 0xf8
	binary.LittleEndian.PutUint32(b[0x24:0x28], img.SectorsPerFAT)
	binary.LittleEndian.PutUint32(b[0x2c:0x30], img.RootCluster)
	binary.LittleEndian.PutUint16(b[0x30:0x32], img.FSInfoSector)
	copy(b[0x52:0x5a], "FAT32   ")
	b[510], b[511] = 0x55, 0xaa
	return b
}

// Bytes renders the whole image
func (img FATImage) Bytes() []byte {
	count := img.DataClusters
	for n := range img.Clusters {
		if n >= 2 && n-1 > count {
			count = n - 1
		}
	}
	clusterSize := img.ClusterSize()
	start := img.ClustersStart()
	b := make([]byte, start+int64(count)*int64(clusterSize))
	copy(b, img.BootSector())

	// each FAT copy marks every populated cluster as a single-cluster chain
	fatSize := int64(img.SectorsPerFAT) * int64(img.BytesPerSector)
	for i := int64(0); i < int64(img.FATCopies); i++ {
		fat := b[int64(img.ReservedSectors)*int64(img.BytesPerSector)+i*fatSize:][:fatSize]
		if len(fat) < 8 {
			continue
		}
		binary.LittleEndian.PutUint32(fat[0:4], 0x0ffffff8)
		binary.LittleEndian.PutUint32(fat[4:8], 0x0fffffff)
		for n := range img.Clusters {
			if int64(n)*4+4 <= fatSize {
				binary.LittleEndian.PutUint32(fat[n*4:n*4+4], 0x0fffffff)
			}
		}
	}

	for n, content := range img.Clusters {
		if n < 2 {
			continue
		}
		off := start + int64(n-2)*int64(clusterSize)
		if len(content) > clusterSize {
			content = content[:clusterSize]
		}
		copy(b[off:], content)
	}
	return b
}

// DirRecord builds one 32-byte short-name directory record. name and ext are upper-cased
// and space padded to 8 and 3 bytes.
func DirRecord(name, ext string, attr byte, cluster, size uint32) []byte {
	b := make([]byte, 32)
	copy(b[0:8], padRight(strings.ToUpper(name), 8))
	copy(b[8:11], padRight(strings.ToUpper(ext), 3))
	b[11] = attr
	binary.LittleEndian.PutUint16(b[0x14:0x16], uint16(cluster>>16))
	binary.LittleEndian.PutUint16(b[0x1a:0x1c], uint16(cluster))
	binary.LittleEndian.PutUint32(b[0x1c:0x20], size)
	return b
}

// Directory concatenates records into directory content
func Directory(records ...[]byte) []byte {
	var b []byte
	for _, r := range records {
		b = append(b, r...)
	}
	return b
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

// MBREntry is one primary partition for PartitionedImage
type MBREntry struct {
	Bootable bool
	Type     byte
	Start    uint32 // in 512 byte sectors
	Size     uint32 // in 512 byte sectors
}

// MBR renders a 512 byte master boot record holding up to four entries
func MBR(entries ...MBREntry) []byte {
	b := make([]byte, 512)
	for i, e := range entries {
		if i >= 4 {
			break
		}
		p := b[446+i*16 : 446+(i+1)*16]
		if e.Bootable {
			p[0] = 0x80
		}
		p[4] = e.Type
		binary.LittleEndian.PutUint32(p[8:12], e.Start)
		binary.LittleEndian.PutUint32(p[12:16], e.Size)
	}
	b[510], b[511] = 0x55, 0xaa
	return b
}

// PartitionedImage places each volume at the start sector of the matching entry after the MBR.
// Volumes longer than their entry are truncated to its size.
func PartitionedImage(entries []MBREntry, volumes ...[]byte) []byte {
	end := int64(512)
	for _, e := range entries {
		if last := int64(e.Start+e.Size) * 512; last > end {
			end = last
		}
	}
	b := make([]byte, end)
	copy(b, MBR(entries...))
	for i, v := range volumes {
		if i >= len(entries) {
			break
		}
		e := entries[i]
		dst := b[int64(e.Start)*512 : int64(e.Start+e.Size)*512]
		copy(dst, v)
	}
	return b
}
