package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flexfs/flexfs"
)

func newLsCommand(log *logrus.Logger) *cobra.Command {
	var conn connOpts

	cmd := &cobra.Command{
		Use:   "ls <path>",
		Short: "List a directory's entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flexfs.NewLogrusLogger(log)
			access, closeFn, err := conn.resolve(logger)
			if err != nil {
				return err
			}
			defer closeFn()

			entries, err := access.Ls(args[0], nil)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s %10s %s\n", e.Attr.ModeString(), sizeOf(e.Attr), e.Name)
			}
			return nil
		},
	}
	conn.addFlags(cmd.Flags())
	return cmd
}

func sizeOf(attr flexfs.Attributes) string {
	if attr.Size == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *attr.Size)
}
