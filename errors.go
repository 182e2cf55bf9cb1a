package rsync

import "fmt"

// ArchiveErrorKind enumerates the failure taxonomy of the codec and
// syncer, mirroring spec.md §7.
type ArchiveErrorKind int

const (
	ErrBadMagic ArchiveErrorKind = iota
	ErrMalformedLength
	ErrMalformedInt
	ErrMalformedReal
	ErrPrematureEnd
	ErrMissingRoot
	ErrDanglingRoot
	ErrNoSourceRoot
	ErrNoDestinationRoot
	ErrVersionIncompatible
	ErrTypeIncompatible
	ErrMissingMember
	ErrTypeMismatchOnSetValue
	ErrUnknownTimeBase
)

var archiveErrorKindNames = map[ArchiveErrorKind]string{
	ErrBadMagic:               "BadMagic",
	ErrMalformedLength:        "MalformedLength",
	ErrMalformedInt:           "MalformedInt",
	ErrMalformedReal:          "MalformedReal",
	ErrPrematureEnd:           "PrematureEnd",
	ErrMissingRoot:            "MissingRoot",
	ErrDanglingRoot:           "DanglingRoot",
	ErrNoSourceRoot:           "NoSourceRoot",
	ErrNoDestinationRoot:      "NoDestinationRoot",
	ErrVersionIncompatible:    "VersionIncompatible",
	ErrTypeIncompatible:       "TypeIncompatible",
	ErrMissingMember:          "MissingMember",
	ErrTypeMismatchOnSetValue: "TypeMismatchOnSetValue",
	ErrUnknownTimeBase:        "UnknownTimeBase",
}

func (k ArchiveErrorKind) String() string {
	if s, ok := archiveErrorKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// ArchiveError is the single failure kind raised by the codec and syncer.
// It carries the offending data (truncated in Error() the way edb's
// DataError elides long buffers) so a caller can log a useful excerpt
// without dumping an entire archive.
type ArchiveError struct {
	Kind ArchiveErrorKind
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func archiveErrf(kind ArchiveErrorKind, data []byte, off int, err error, format string, args ...any) error {
	return &ArchiveError{Kind: kind, Data: data, Off: off, Err: err, Msg: fmt.Sprintf(format, args...)}
}

func (e *ArchiveError) Unwrap() error { return e.Err }

func (e *ArchiveError) Is(target error) bool {
	t, ok := target.(*ArchiveError)
	return ok && t.Kind == e.Kind
}

func (e *ArchiveError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	excerpt := ""
	if n > 0 {
		if n <= prefixLen+suffixLen {
			excerpt = fmt.Sprintf(" (%d bytes) %x", n, e.Data)
		} else {
			p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
			excerpt = fmt.Sprintf(" (%d bytes) %x...%x", n, p, s)
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v%s", e.Kind, e.Msg, e.Err, excerpt)
	}
	return fmt.Sprintf("%s: %s%s", e.Kind, e.Msg, excerpt)
}
