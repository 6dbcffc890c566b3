package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flexfs/flexfs"
)

func newMoveCommand(log *logrus.Logger) *cobra.Command {
	var conn connOpts
	var createParents bool

	cmd := &cobra.Command{
		Use:   "move <src> <dst>",
		Short: "Move (rename) a file within one backend",
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

			if err := flexfs.Move(access, src, dest, nil); err != nil {
				return err
			}
			fmt.Printf("moved to %s\n", src.CurrentPath)
			return nil
		},
	}
	conn.addFlags(cmd.Flags())
	cmd.Flags().BoolVar(&createParents, "create-parents", false, "create missing destination parent directories")
	return cmd
}
