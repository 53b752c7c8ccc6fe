package diskfs_test

import (
	"fmt"
	"log"

	diskfs "github.com/diskfs/go-fatdecode"
	"github.com/diskfs/go-fatdecode/filesystem/fat32"
)

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// List the root directory of the first FAT partition of a disk image, or of the whole
// image when it has no partition table.
func ExampleOpen() {
	d, err := diskfs.Open("/tmp/disk.img")
	check(err)
	fs, err := d.GetFilesystem(d.DefaultPartition())
	check(err)
	defer fs.Close()

	entries, err := fs.ReadRootDirectory()
	check(err)
	for _, e := range entries {
		if e.Attributes.IsVolumeLabel() || e.Attributes.IsLongName() {
			continue
		}
		fmt.Printf("%-12s %10d %s\n", e.ShortName(), e.FileSize, e.ModTime.Format("2006-01-02 15:04"))
	}
}

// Dump the first cluster of a file.
func ExampleOpen_readCluster() {
	fs, err := fat32.Open("/tmp/fat32.img")
	check(err)
	defer fs.Close()

	entries, err := fs.ReadRootDirectory()
	check(err)
	for _, e := range entries {
		if e.IsDirectory || e.StartCluster < 2 {
			continue
		}
		b, err := fs.ReadCluster(e.StartCluster)
		check(err)
		if int64(len(b)) > int64(e.FileSize) {
			b = b[:e.FileSize]
		}
		fmt.Printf("%s: %q\n", e.ShortName(), b)
	}
}
