// Package diskfs opens disks and disk images holding FAT32 filesystems for reading.
//
// It works on block devices in /dev as well as on image files, including images shipped
// xz or lz4 compressed. Nothing is mounted: the bytes are decoded directly.
//
// A typical session:
//
//	d, err := diskfs.Open("/tmp/disk.img")
//	fs, err := d.GetFilesystem(d.DefaultPartition())
//	entries, err := fs.ReadRootDirectory()
//	b, err := fs.ReadCluster(entries[0].StartCluster)
package diskfs

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/diskfs/go-fatdecode/backend"
	"github.com/diskfs/go-fatdecode/backend/compressed"
	"github.com/diskfs/go-fatdecode/backend/file"
	"github.com/diskfs/go-fatdecode/disk"
	log "github.com/sirupsen/logrus"
)

// when we use a disk image, we cannot get the logical sector size from the disk via the kernel
// so we use the default sector size of 512
const defaultBlocksize int64 = 512

// Open a Disk from a path to a device, read-only
// Should pass a path to a block device e.g. /dev/sda or a path to a file /tmp/foo.img
// The provided device must exist at the time you call Open()
func Open(device string) (*disk.Disk, error) {
	if device == "" {
		return nil, errors.New("must pass device name")
	}
	if _, err := os.Stat(device); os.IsNotExist(err) {
		return nil, fmt.Errorf("provided device %s does not exist", device)
	}
	storage, err := file.OpenFromPath(device)
	if err != nil {
		return nil, fmt.Errorf("could not open device %s read-only: %w", device, err)
	}
	d, err := initDisk(storage)
	if err != nil {
		return nil, errors.Join(err, storage.Close())
	}
	return d, nil
}

// OpenBackend reads a Disk from storage that is already open, e.g. from file.New.
// It is treated as an image file, never as a block device.
func OpenBackend(b backend.Storage) (*disk.Disk, error) {
	return initDisk(b)
}

func initDisk(b backend.Storage) (*disk.Disk, error) {
	var (
		diskType disk.Type
		size     int64
		lblksize = defaultBlocksize
		pblksize = defaultBlocksize
	)

	// get device information
	devInfo, err := b.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not get info for device: %w", err)
	}
	mode := devInfo.Mode()
	switch {
	case mode.IsRegular():
		diskType = disk.File
		size = devInfo.Size()
	case mode&os.ModeDevice != 0:
		diskType = disk.Device
		f, err := b.Sys()
		if err != nil {
			return nil, fmt.Errorf("block device %s has no file descriptor: %w", devInfo.Name(), err)
		}
		size, err = f.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("could not get size of device %s: %w", devInfo.Name(), err)
		}
		lblksize, pblksize, err = getSectorSizes(f)
		if err != nil {
			return nil, fmt.Errorf("unable to get block sizes for device %s: %w", devInfo.Name(), err)
		}
	default:
		return nil, fmt.Errorf("device %s is neither a block device nor a regular file", devInfo.Name())
	}
	if size <= 0 {
		return nil, fmt.Errorf("could not get file size for device %s", devInfo.Name())
	}

	format := compressed.None
	if diskType == disk.File {
		b, format, err = compressed.New(b)
		if err != nil {
			return nil, err
		}
		if format != compressed.None {
			if devInfo, err = b.Stat(); err != nil {
				return nil, fmt.Errorf("could not get info for inflated image: %w", err)
			}
			size = devInfo.Size()
		}
	}

	d := &disk.Disk{
		Backend:           b,
		Info:              devInfo,
		Type:              diskType,
		Size:              size,
		LogicalBlocksize:  lblksize,
		PhysicalBlocksize: pblksize,
		Compression:       format,
	}
	table, err := d.GetPartitionTable()
	if err != nil {
		log.Debugf("%s: %v", devInfo.Name(), err)
	} else {
		d.Table = table
	}
	log.WithFields(log.Fields{
		"type":        diskType,
		"size":        size,
		"compression": format,
		"partitioned": d.Table != nil,
	}).Debugf("opened %s", devInfo.Name())
	return d, nil
}
