// Package sftp implements flexfs.Access over the SFTP protocol, built on
// golang.org/x/crypto/ssh for transport/authentication and
// github.com/pkg/sftp for the SFTP subsystem itself.
package sftp

import (
	"time"

	"github.com/flexfs/flexfs"
)

// SSHLogVerbosity gates how much of the underlying SSH transport's activity
// is forwarded to the configured flexfs.Logger.
type SSHLogVerbosity int

const (
	NoLog SSHLogVerbosity = iota
	Warning
	Protocol
	Packet
	Functions
)

// Options configures a Session. Host and User are required; the rest have
// documented defaults.
type Options struct {
	Host string
	Port *uint16 // defaults to 22

	User     string
	Password *string // nil means password auth is not attempted

	// Identities supplies the IdentityFactory used for publickey auth. A
	// nil value disables publickey auth entirely.
	Identities IdentityFactory

	// KnownHosts supplies the host-key verification collaborator. A nil
	// value defaults to a fresh in-memory KnownHosts per Connect, so every
	// host is unknown; AllowUnknownHostKey then decides whether the
	// connection proceeds, and nothing is kept past the process.
	KnownHosts KnownHosts

	// AllowUnknownHostKey permits connecting to a host with no known-hosts
	// entry; the offending key is persisted via KnownHosts.Persist on
	// success. Defaults to true; set explicitly to false to opt out.
	AllowUnknownHostKey *bool

	// AllowChangedHostKey permits connecting even when the presented host
	// key does not match a prior known-hosts entry. Defaults to false:
	// a changed key is refused and reported as KindHostKeyChanged.
	AllowChangedHostKey bool

	// WatcherScanInterval is the polling interval used by CreateWatcher.
	// Defaults to 5 seconds.
	WatcherScanInterval time.Duration

	// DialTimeout bounds the initial TCP connect. Defaults to 30 seconds.
	DialTimeout time.Duration

	SSHLoggingVerbosity SSHLogVerbosity

	Logger flexfs.Logger
}

// WithDefaults returns a copy of o with documented defaults filled in.
func (o Options) WithDefaults() Options {
	if o.Port == nil {
		p := uint16(22)
		o.Port = &p
	}
	if o.WatcherScanInterval == 0 {
		o.WatcherScanInterval = 5 * time.Second
	}
	if o.DialTimeout == 0 {
		o.DialTimeout = 30 * time.Second
	}
	if o.KnownHosts == nil {
		o.KnownHosts = NewMemoryKnownHosts()
	}
	if o.Logger == nil {
		o.Logger = flexfs.NullLogger{}
	}
	if o.AllowUnknownHostKey == nil {
		t := true
		o.AllowUnknownHostKey = &t
	}
	return o
}

func (o Options) allowUnknownHostKey() bool {
	return o.AllowUnknownHostKey != nil && *o.AllowUnknownHostKey
}
