package main

import (
	"fmt"

	diskfs "github.com/diskfs/go-fatdecode"
	"github.com/diskfs/go-fatdecode/disk"
	"github.com/diskfs/go-fatdecode/filesystem/fat32"
	"github.com/spf13/cobra"
)

// autoPartition picks the first FAT partition, or the whole disk when there is no partition table
const autoPartition = -1

var partition int

func newCmd() *cobra.Command {
	var (
		flagQuiet       bool
		flagVerbose     int
		flagVerboseName = "verbose"
	)
	cmd := &cobra.Command{
		Use:               "fatdump",
		Short:             "inspect FAT32 disk images and devices",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Set up logging
			return setupLogging(flagQuiet, flagVerbose, cmd.Flag(flagVerboseName).Changed)
		},
	}

	cmd.AddCommand(infoCmd())
	cmd.AddCommand(lsCmd())
	cmd.AddCommand(clusterCmd())

	cmd.PersistentFlags().IntVarP(&partition, "partition", "p", autoPartition, "Partition holding the filesystem, 0 for the entire disk. Default is the first FAT partition, or the entire disk if there is no partition table.")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet execution")
	cmd.PersistentFlags().IntVarP(&flagVerbose, flagVerboseName, "v", 1, "Verbosity of logging: 0 = quiet, 1 = info, 2 = debug, 3 = trace. Default is info. Setting it explicitly will create structured logging lines.")

	return cmd
}

// openFilesystem opens the image and the filesystem selected by --partition.
// Closing the filesystem closes the disk as well.
func openFilesystem(image string) (*disk.Disk, *fat32.FileSystem, int, error) {
	d, err := diskfs.Open(image)
	if err != nil {
		return nil, nil, 0, err
	}
	p := partition
	if p == autoPartition {
		p = d.DefaultPartition()
	}
	fs, err := d.GetFilesystem(p)
	if err != nil {
		_ = d.Close()
		return nil, nil, p, fmt.Errorf("%s: %w", image, err)
	}
	return d, fs, p, nil
}
