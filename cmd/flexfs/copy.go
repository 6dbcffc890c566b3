package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flexfs/flexfs"
)

func newCopyCommand(log *logrus.Logger) *cobra.Command {
	var conn connOpts
	var createParents bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Copy a file, reporting progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flexfs.NewLogrusLogger(log)
			access, closeFn, err := conn.resolve(logger)
			if err != nil {
				return err
			}
			defer closeFn()

			src := flexfs.NewSource(args[0])
			dest := flexfs.Destination{Path: args[1], CreateParents: createParents}
			if overwrite {
				dest.OnNameConflict = flexfs.ConflictOverwrite
			} else {
				dest.OnNameConflict = flexfs.ConflictAutoRename
			}

			destPath, err := flexfs.Copy(access, src, access, dest, func(n uint64) {
				fmt.Printf("\rcopied %d bytes", n)
			}, nil)
			fmt.Println()
			if err != nil {
				return err
			}
			fmt.Printf("copied to %s\n", destPath)
			return nil
		},
	}
	conn.addFlags(cmd.Flags())
	cmd.Flags().BoolVar(&createParents, "create-parents", false, "create missing destination parent directories")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing destination instead of auto-renaming")
	return cmd
}
