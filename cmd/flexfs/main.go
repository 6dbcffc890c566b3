// Command flexfs is a small CLI demonstrating the flexfs backends:
// listing, copying and moving files, and watching a directory for new
// entries, against either the local filesystem or a remote SFTP server.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flexfs/flexfs"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	log := logrus.New()

	root := &cobra.Command{
		Use:           "flexfs",
		Short:         "Inspect and move files across local and SFTP backends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "info", "logrus level (trace, debug, info, warn, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		levelStr, _ := cmd.Flags().GetString("log-level")
		level, err := logrus.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	}

	root.AddCommand(
		newLsCommand(log),
		newCopyCommand(log),
		newMoveCommand(log),
		newWatchCommand(log),
	)
	return root
}

var _ flexfs.Logger = (*flexfs.LogrusLogger)(nil)
