package sftptest

import "net"

// Listen starts Server.Serve on a real loopback TCP listener and returns
// its address, so a test can dial it with flexfs/sftp.Connect without a
// real remote host. The listener is closed when stop is called.
func (s *Server) Listen() (addr string, stop func(), err error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	go s.Serve(ln)
	return ln.Addr().String(), func() { ln.Close() }, nil
}
