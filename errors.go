package flexfs

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is a stable error classification, independent of backend or OS.
type Kind int

const (
	KindNotFound Kind = iota
	KindAlreadyExists
	KindNotADirectory
	KindIsADirectory
	KindPermissionDenied
	KindInvalidArgument
	KindIO
	KindProtocol
	KindTransport
	KindAuthFailed
	KindHostKeyUnknown
	KindHostKeyChanged
	KindCancelled
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotADirectory:
		return "not_a_directory"
	case KindIsADirectory:
		return "is_a_directory"
	case KindPermissionDenied:
		return "permission_denied"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindIO:
		return "io"
	case KindProtocol:
		return "protocol"
	case KindTransport:
		return "transport"
	case KindAuthFailed:
		return "auth_failed"
	case KindHostKeyUnknown:
		return "host_key_unknown"
	case KindHostKeyChanged:
		return "host_key_changed"
	case KindCancelled:
		return "cancelled"
	default:
		return "other"
	}
}

// Error is the single structured error type used throughout flexfs. Every
// error raised by this module's operations carries a stable Kind and a
// correlation ID, plus whichever of the optional fields the operation that
// raised it knows about.
type Error struct {
	Kind Kind
	ID   uuid.UUID

	Path  string
	Path2 string // second path, e.g. the new path of a rename
	Op    string // syscall or SFTP RPC name
	Errno int    // underlying POSIX errno or SFTP status code, 0 if unknown

	Host       string // set for HostKeyUnknown / HostKeyChanged
	PubkeyHash string // sha1 hex hash of the offending host key

	Message string
	Err     error // wrapped underlying error, if any
}

// NewError constructs an Error of the given kind with a fresh correlation
// ID and no other context.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, ID: uuid.New(), Message: message}
}

// WrapError constructs an Error of the given kind wrapping err, with a
// fresh correlation ID.
func WrapError(kind Kind, err error) *Error {
	return &Error{Kind: kind, ID: uuid.New(), Err: err}
}

func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

func (e *Error) WithPath2(path2 string) *Error {
	e.Path2 = path2
	return e
}

func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

func (e *Error) WithErrno(errno int) *Error {
	e.Errno = errno
	return e
}

func (e *Error) WithHostKey(host, hash string) *Error {
	e.Host = host
	e.PubkeyHash = hash
	return e
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.String()
	}

	s := fmt.Sprintf("flexfs: %s", msg)
	if e.Op != "" {
		s = fmt.Sprintf("%s: %s", e.Op, s)
	}
	if e.Path != "" {
		if e.Path2 != "" {
			s = fmt.Sprintf("%s (%s -> %s)", s, e.Path, e.Path2)
		} else {
			s = fmt.Sprintf("%s (%s)", s, e.Path)
		}
	}
	return fmt.Sprintf("%s [%s]", s, e.ID)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether err is a flexfs *Error of the given kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	if ok := asError(err, &fe); ok {
		return fe.Kind == kind
	}
	return false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if fe, ok := err.(*Error); ok {
			*target = fe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
