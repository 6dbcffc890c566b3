package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flexfs/flexfs"
)

func newWatchCommand(log *logrus.Logger) *cobra.Command {
	var conn connOpts

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Print newly-seen entries in a directory until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flexfs.NewLogrusLogger(log)
			access, closeFn, err := conn.resolve(logger)
			if err != nil {
				return err
			}
			defer closeFn()

			cancel := flexfs.NewCancelToken()
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			go func() {
				<-sig
				cancel.Signal()
			}()

			watcher, err := access.CreateWatcher(args[0], cancel)
			if err != nil {
				return err
			}

			for {
				added, err := watcher.Watch(cancel)
				if flexfs.Is(err, flexfs.KindCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
				for _, e := range added {
					fmt.Printf("+ %s\n", e.Name)
				}
			}
		},
	}
	conn.addFlags(cmd.Flags())
	return cmd
}
