// Package sftptest provides an in-process SSH/SFTP server for exercising
// flexfs/sftp without a real network endpoint, adapted from the teacher's
// absfs-backed Server to use pkg/sftp's own in-memory request handler.
package sftptest

import (
	"net"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Server is an SFTP server over an in-memory filesystem, suitable for
// tests that need a real SSH/SFTP round trip without a real network peer.
type Server struct {
	config *ssh.ServerConfig
}

// Config configures a test Server's SSH acceptance.
type Config struct {
	HostKey ssh.Signer

	// PasswordCallback validates password auth. If both this and
	// PublicKeyCallback are nil, NoClientAuth is used instead.
	PasswordCallback  func(conn ssh.ConnMetadata, password []byte) (*ssh.Permissions, error)
	PublicKeyCallback func(conn ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error)
}

// NewServer builds a Server. If cfg.HostKey is nil, a fresh ephemeral RSA
// key is generated.
func NewServer(cfg Config) (*Server, error) {
	sshConfig := &ssh.ServerConfig{}

	if cfg.PasswordCallback == nil && cfg.PublicKeyCallback == nil {
		sshConfig.NoClientAuth = true
	} else {
		sshConfig.PasswordCallback = cfg.PasswordCallback
		sshConfig.PublicKeyCallback = cfg.PublicKeyCallback
	}

	hostKey := cfg.HostKey
	if hostKey == nil {
		key, err := GenerateHostKey()
		if err != nil {
			return nil, err
		}
		hostKey = key
	}
	sshConfig.AddHostKey(hostKey)

	return &Server{config: sshConfig}, nil
}

// Serve accepts connections on listener until it is closed, serving each
// one against a fresh in-memory filesystem.
func (s *Server) Serve(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConnection(conn)
	}
}

// ServeConn handles a single connection against a fresh in-memory
// filesystem, for tests that want to dial a net.Pipe() directly.
func (s *Server) ServeConn(conn net.Conn) error {
	return s.handleConnection(conn)
}

func (s *Server) handleConnection(conn net.Conn) error {
	sshConn, chans, reqs, err := ssh.NewServerConn(conn, s.config)
	if err != nil {
		conn.Close()
		return err
	}
	defer sshConn.Close()

	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		channel, requests, err := newChannel.Accept()
		if err != nil {
			continue
		}

		go handleChannel(channel, requests)
	}

	return nil
}

func handleChannel(channel ssh.Channel, requests <-chan *ssh.Request) {
	defer channel.Close()

	for req := range requests {
		ok := false
		if req.Type == "subsystem" && string(req.Payload[4:]) == "sftp" {
			ok = true
			if req.WantReply {
				req.Reply(ok, nil)
			}
			serveSFTP(channel)
			return
		}
		if req.WantReply {
			req.Reply(ok, nil)
		}
	}
}

// serveSFTP runs a fresh in-memory-backed SFTP request server on channel,
// using pkg/sftp's own InMemHandler rather than an absfs adapter.
func serveSFTP(channel ssh.Channel) {
	handlers := sftp.InMemHandler()
	server := sftp.NewRequestServer(channel, handlers)
	server.Serve()
	server.Close()
}
