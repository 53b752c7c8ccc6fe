package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/diskfs/go-fatdecode/partition/mbr"
	"github.com/spf13/cobra"
	"gopkg.in/djherbis/times.v1"
)

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info IMAGE",
		Short: "report the disk, partition table and filesystem layout of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image := args[0]
			ts, err := times.Stat(image)
			if err != nil {
				return fmt.Errorf("error reading times of %s: %w", image, err)
			}
			d, fs, p, err := openFilesystem(image)
			if err != nil {
				return err
			}
			defer fs.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			row := func(k string, v any) { fmt.Fprintf(w, "%s:\t%v\n", k, v) }

			row("image", image)
			row("type", d.Type)
			row("size", d.Size)
			row("compression", d.Compression)
			row("logical sector size", d.LogicalBlocksize)
			row("physical sector size", d.PhysicalBlocksize)
			row("modified", ts.ModTime().Format(time.RFC3339))
			row("accessed", ts.AccessTime().Format(time.RFC3339))
			if ts.HasChangeTime() {
				row("changed", ts.ChangeTime().Format(time.RFC3339))
			}
			if ts.HasBirthTime() {
				row("created", ts.BirthTime().Format(time.RFC3339))
			}

			if d.Table == nil {
				row("partition table", "none")
			} else {
				row("partition table", d.Table.Type())
				for i, part := range d.Table.Partitions {
					if part.Type == mbr.Empty {
						continue
					}
					row(fmt.Sprintf("  partition %d", i+1), fmt.Sprintf("%s bootable=%v start=%d size=%d", part.Type, part.Bootable, part.GetStart(), part.GetSize()))
				}
			}

			l := fs.Layout()
			row("filesystem partition", p)
			row("filesystem", fs.Type())
			row("bytes per sector", l.BytesPerSector)
			row("sectors per cluster", l.SectorsPerCluster)
			row("cluster size", l.ClusterSize)
			row("reserved sectors", l.FATStart)
			row("fat copies", l.FATCopies)
			row("sectors per fat", l.SectorsPerFAT)
			row("fat offset", l.FATOffset())
			row("fs info sector", l.FSInfoSector)
			row("clusters start", l.ClustersStart)
			row("root directory cluster", l.RootDir)
			return w.Flush()
		},
	}
	return cmd
}
