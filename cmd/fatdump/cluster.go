package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/diskfs/go-fatdecode/util"
	"github.com/spf13/cobra"
)

func clusterCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "cluster IMAGE N",
		Short: "hex dump one data cluster",
		Long: `Hex dump data cluster N of the filesystem.
		Row positions are offsets from the start of the filesystem.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				return errors.New("width must be positive")
			}
			n, err := strconv.ParseUint(args[1], 0, 32)
			if err != nil {
				return fmt.Errorf("invalid cluster number %q: %w", args[1], err)
			}
			_, fs, _, err := openFilesystem(args[0])
			if err != nil {
				return err
			}
			defer fs.Close()

			b, err := fs.ReadCluster(uint32(n))
			if err != nil {
				return err
			}
			offset, err := fs.Layout().ClusterOffset(uint32(n))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), util.DumpByteSlice(b, width, offset))
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 16, "bytes per row")

	return cmd
}
