package sftp

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/flexfs/flexfs"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Stage identifies one of the five session lifecycle steps, reported to a
// caller's progress/cancellation hook.
type Stage int

const (
	StageDial Stage = iota
	StageHostKeyVerify
	StageAuth
	StageSFTPInit
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageDial:
		return "dial"
	case StageHostKeyVerify:
		return "host-key-verify"
	case StageAuth:
		return "auth"
	case StageSFTPInit:
		return "sftp-init"
	case StageReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Session owns one SFTP connection end to end: TCP transport, SSH client
// and SFTP subsystem, torn down in strict reverse order.
type Session struct {
	opts Options

	conn      net.Conn
	sshClient *ssh.Client
	client    *sftp.Client
}

// Connect runs the five-stage lifecycle: TCP dial, host-key verification,
// authentication (tried in the fixed order None, Publickey, Password,
// regardless of the server's advertised order), SFTP subsystem init, and
// readiness. onStage, if non-nil, is invoked before each stage begins and
// again for StageReady on success; cancel is checked at every stage
// boundary, matching the original session's connect_status_callback which
// is registered before Connect and checked across all five stages, not
// only inside the authentication loop.
func Connect(opts Options, onStage func(Stage), cancel *flexfs.CancelToken) (*Session, error) {
	opts = opts.WithDefaults()
	s := &Session{opts: opts}

	report := func(st Stage) error {
		if opts.SSHLoggingVerbosity >= Protocol {
			opts.Logger.Log(time.Now(), "sftp", flexfs.LevelDebug, "entering stage "+st.String())
		}
		if onStage != nil {
			onStage(st)
		}
		return flexfs.CheckCancelled(cancel)
	}

	if err := report(StageDial); err != nil {
		return nil, err
	}
	addr := fmt.Sprintf("%s:%d", opts.Host, *opts.Port)
	conn, err := net.DialTimeout("tcp", addr, opts.DialTimeout)
	if err != nil {
		return nil, flexfs.WrapError(flexfs.KindTransport, err).WithOp("dial").WithPath(addr)
	}
	s.conn = conn

	if err := report(StageHostKeyVerify); err != nil {
		conn.Close()
		return nil, err
	}

	config := &ssh.ClientConfig{
		User:            opts.User,
		Timeout:         opts.DialTimeout,
		HostKeyCallback: s.verifyHostKey,
		Auth:            s.authMethods(),
	}

	if err := report(StageAuth); err != nil {
		conn.Close()
		return nil, err
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, classifyHandshakeErr(err)
	}
	s.sshClient = ssh.NewClient(sshConn, chans, reqs)

	if err := report(StageSFTPInit); err != nil {
		s.sshClient.Close()
		return nil, err
	}

	client, err := sftp.NewClient(s.sshClient)
	if err != nil {
		s.sshClient.Close()
		return nil, flexfs.WrapError(flexfs.KindProtocol, err).WithOp("sftp-init")
	}
	s.client = client

	if err := report(StageReady); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// authMethods assembles the auth methods in the fixed order {Publickey,
// Password}; the "None" step of the fixed order happens implicitly, as
// golang.org/x/crypto/ssh always issues an initial no-credentials request
// to learn the server's advertised method set before trying any configured
// AuthMethod.
func (s *Session) authMethods() []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	if s.opts.Identities != nil {
		identities, err := s.opts.Identities.Create()
		if err == nil && len(identities) > 0 {
			var signers []ssh.Signer
			for _, id := range identities {
				signer, err := ssh.ParsePrivateKey(id.PEM)
				if err != nil {
					continue
				}
				signers = append(signers, signer)
			}
			if len(signers) > 0 {
				methods = append(methods, ssh.PublicKeys(signers...))
			}
		}
	}

	if s.opts.Password != nil {
		methods = append(methods, ssh.Password(*s.opts.Password))
	}

	return methods
}

// verifyHostKey computes the SHA-1 hex hash of the presented key and
// consults the configured KnownHosts collaborator before the handshake is
// allowed to proceed.
func (s *Session) verifyHostKey(hostname string, _ net.Addr, key ssh.PublicKey) error {
	sum := sha1.Sum(key.Marshal())
	hash := hex.EncodeToString(sum[:])

	result, err := s.opts.KnownHosts.Verify(hostname, hash)
	if err != nil {
		return flexfs.WrapError(flexfs.KindOther, err).WithOp("known-hosts-verify").WithHostKey(hostname, hash)
	}

	switch result {
	case Known:
		return nil
	case Changed:
		if !s.opts.AllowChangedHostKey {
			return flexfs.NewError(flexfs.KindHostKeyChanged, "host key changed").WithHostKey(hostname, hash)
		}
		return s.opts.KnownHosts.Persist(hostname, hash)
	default: // Unknown
		if !s.opts.allowUnknownHostKey() {
			return flexfs.NewError(flexfs.KindHostKeyUnknown, "host key unknown").WithHostKey(hostname, hash)
		}
		return s.opts.KnownHosts.Persist(hostname, hash)
	}
}

// classifyHandshakeErr unwraps a handshake failure. x/crypto/ssh wraps
// whatever verifyHostKey returned inside its own handshake error, so a
// host-key rejection raised from that callback is recovered here rather
// than being flattened into a generic auth failure.
func classifyHandshakeErr(err error) error {
	var fe *flexfs.Error
	if errors.As(err, &fe) {
		return fe
	}
	return flexfs.WrapError(flexfs.KindAuthFailed, err).WithOp("ssh-handshake")
}

// Close tears the session down in strict reverse order: SFTP handle, then
// SSH client (which also closes the underlying TCP connection).
func (s *Session) Close() error {
	var firstErr error
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			firstErr = err
		}
	}
	if s.sshClient != nil {
		if err := s.sshClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Client returns the underlying *sftp.Client for backend use.
func (s *Session) Client() *sftp.Client {
	return s.client
}
