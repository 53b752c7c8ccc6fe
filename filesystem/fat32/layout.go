package fat32

import (
	"fmt"
)

// firstDataCluster is the number of the cluster at the very start of the data region
const firstDataCluster = 2

// Layout is the geometry of a volume, derived once from the boot record
type Layout struct {
	// FATStart sector where the first File Allocation Table begins
	FATStart uint32
	// ClustersStart byte offset of the data region, i.e. of cluster 2
	ClustersStart int64
	// SectorsPerCluster sectors in each cluster
	SectorsPerCluster uint8
	// ClusterSize bytes in each cluster
	ClusterSize uint32
	// RootDir cluster holding the start of the root directory
	RootDir uint32

	BytesPerSector uint16
	FATCopies      uint8
	SectorsPerFAT  uint32
	FSInfoSector   uint16
}

// layoutFromBootRecord computes the volume geometry. It never returns a layout with
// a zero cluster size.
func layoutFromBootRecord(br *bootRecord) (Layout, error) {
	if br.bytesPerSector == 0 {
		return Layout{}, fmt.Errorf("%w: 0 bytes per sector", ErrDegenerateLayout)
	}
	if br.sectorsPerCluster == 0 {
		return Layout{}, fmt.Errorf("%w: 0 sectors per cluster", ErrDegenerateLayout)
	}
	fatSectors := uint64(br.fatCopies) * uint64(br.sectorsPerFAT)
	return Layout{
		FATStart:          uint32(br.reservedSectors),
		ClustersStart:     int64((uint64(br.reservedSectors) + fatSectors) * uint64(br.bytesPerSector)),
		SectorsPerCluster: br.sectorsPerCluster,
		ClusterSize:       uint32(br.sectorsPerCluster) * uint32(br.bytesPerSector),
		RootDir:           br.rootDirectoryCluster,
		BytesPerSector:    br.bytesPerSector,
		FATCopies:         br.fatCopies,
		SectorsPerFAT:     br.sectorsPerFAT,
		FSInfoSector:      br.fsInfoSector,
	}, nil
}

// FATOffset byte offset of the first File Allocation Table
func (l Layout) FATOffset() int64 {
	return int64(l.FATStart) * int64(l.BytesPerSector)
}

// ClusterOffset returns the byte offset of a data cluster. Data clusters are numbered from 2,
// so cluster 2 sits at ClustersStart.
func (l Layout) ClusterOffset(cluster uint32) (int64, error) {
	if cluster < firstDataCluster {
		return 0, fmt.Errorf("%w: %d, data clusters start at %d", ErrInvalidClusterNumber, cluster, firstDataCluster)
	}
	return l.ClustersStart + int64(cluster-firstDataCluster)*int64(l.ClusterSize), nil
}
