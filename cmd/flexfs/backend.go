package main

import (
	"github.com/spf13/pflag"

	"github.com/flexfs/flexfs"
	"github.com/flexfs/flexfs/local"
	fsftp "github.com/flexfs/flexfs/sftp"
)

// connOpts gathers the flags common to every subcommand that needs to
// resolve a flexfs.Access: either the local filesystem or an SFTP host.
type connOpts struct {
	sftpHost string
	sftpPort uint16
	sftpUser string
	sftpPass string

	allowUnknownHostKey bool
	knownHostsFile      string
}

func (o *connOpts) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.sftpHost, "sftp-host", "", "SFTP server host (empty selects the local backend)")
	flags.Uint16Var(&o.sftpPort, "sftp-port", 22, "SFTP server port")
	flags.StringVar(&o.sftpUser, "sftp-user", "", "SFTP username")
	flags.StringVar(&o.sftpPass, "sftp-pass", "", "SFTP password")
	flags.BoolVar(&o.allowUnknownHostKey, "allow-unknown-host-key", true, "accept and remember an unseen host key")
	flags.StringVar(&o.knownHostsFile, "known-hosts", "", "known-hosts file path (empty uses an in-memory store)")
}

// resolve opens a flexfs.Access per the flags: local if sftp-host is
// unset, otherwise a freshly connected SFTP session. The returned close
// func must be called once the backend is no longer needed.
func (o *connOpts) resolve(log flexfs.Logger) (access flexfs.Access, closeFn func() error, err error) {
	if o.sftpHost == "" {
		return local.New(), func() error { return nil }, nil
	}

	opts := fsftp.Options{
		Host:                o.sftpHost,
		Port:                &o.sftpPort,
		User:                o.sftpUser,
		AllowUnknownHostKey: &o.allowUnknownHostKey,
		Logger:              log,
	}
	if o.sftpPass != "" {
		opts.Password = &o.sftpPass
	}
	if o.knownHostsFile != "" {
		opts.KnownHosts = fsftp.NewFileKnownHosts(o.knownHostsFile)
	}

	session, err := fsftp.Connect(opts, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	return fsftp.NewBackend(session), session.Close, nil
}
