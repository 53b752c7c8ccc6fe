package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/diskfs/go-fatdecode/filesystem/fat32"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func lsCmd() *cobra.Command {
	var (
		cluster uint32
		all     bool
	)
	cmd := &cobra.Command{
		Use:   "ls IMAGE",
		Short: "list the entries of one directory cluster",
		Long: `List the entries stored in one cluster of a directory.
		Without --cluster the first cluster of the root directory is listed.
		Volume labels and long filename records are hidden unless --all is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fs, _, err := openFilesystem(args[0])
			if err != nil {
				return err
			}
			defer fs.Close()

			if cluster == 0 {
				cluster = fs.Layout().RootDir
			}
			entries, err := fs.ReadDirectory(cluster)
			if err != nil {
				return err
			}
			log.Debugf("cluster %d holds %d entries", cluster, len(entries))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			for _, e := range entries {
				if !all && (e.Attributes.IsVolumeLabel() || e.Attributes.IsLongName()) {
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t %s\n", e.Attributes, e.FileSize, e.StartCluster, modTime(e), displayName(e))
			}
			return w.Flush()
		},
	}
	cmd.Flags().Uint32Var(&cluster, "cluster", 0, "directory cluster to list, default is the root directory")
	cmd.Flags().BoolVar(&all, "all", false, "also show volume labels and long filename records")

	return cmd
}

func modTime(e fat32.DirectoryEntry) string {
	if e.ModTime.IsZero() {
		return "-"
	}
	return e.ModTime.Format("2006-01-02 15:04:05")
}

func displayName(e fat32.DirectoryEntry) string {
	if e.IsDirectory {
		return e.ShortName() + "/"
	}
	return e.ShortName()
}
