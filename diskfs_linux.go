package diskfs

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// getSectorSizes get the logical and physical sector sizes for a block device
func getSectorSizes(f *os.File) (int64, int64, error) {
	/*
		ioctl(fd, BLKSSZGET, &logicalsectsize);
		ioctl(fd, BLKPBSZGET, &physicalsectsize);
	*/
	fd := f.Fd()
	logicalSectorSize, err := unix.IoctlGetInt(int(fd), unix.BLKSSZGET)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device logical sector size: %w", err)
	}
	physicalSectorSize, err := unix.IoctlGetInt(int(fd), unix.BLKPBSZGET)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device physical sector size: %w", err)
	}
	return int64(logicalSectorSize), int64(physicalSectorSize), nil
}
