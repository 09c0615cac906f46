package tetengo

import "fmt"

// Kind classifies a failure raised by the trie or lattice cores.
type Kind int

const (
	// DuplicateKey is raised by the trie builder when two entries share a key.
	DuplicateKey Kind = iota + 1
	// NotFound is raised by lookup and subtrie when no matching transition
	// exists (Step reports a missing transition as ok=false instead).
	NotFound
	// CorruptFormat is raised by deserialize/mmap-open on a malformed stream.
	CorruptFormat
	// OutOfRange is raised by storage access on an invalid index.
	OutOfRange
	// InvalidOperation is raised when a builder or a read-only view is misused.
	InvalidOperation
	// UnreachableStep is raised when a lattice candidate references a
	// preceding step that was never pushed, or when settling EOS finds no
	// reachable node in the last pushed step.
	UnreachableStep
	// EmptyLattice is raised when an operation requires a settled lattice
	// (SettleEOS not yet called).
	EmptyLattice
	// NoPath is raised when BOS and EOS are disconnected.
	NoPath
)

func (k Kind) String() string {
	switch k {
	case DuplicateKey:
		return "DuplicateKey"
	case NotFound:
		return "NotFound"
	case CorruptFormat:
		return "CorruptFormat"
	case OutOfRange:
		return "OutOfRange"
	case InvalidOperation:
		return "InvalidOperation"
	case UnreachableStep:
		return "UnreachableStep"
	case EmptyLattice:
		return "EmptyLattice"
	case NoPath:
		return "NoPath"
	default:
		return "Unknown"
	}
}

// Error is the common failure type shared by the trie and lattice cores.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, tetengo.Err(tetengo.NotFound)).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// New creates an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an *Error of the given kind, preserving cause.
func Wrap(kind Kind, message string, cause error) *Error {
	tracer().Debugf("tetengo.Wrap: kind=%s message=%s cause=%v", kind, message, cause)
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Err returns a sentinel of the given kind suitable for errors.Is comparisons.
func Err(kind Kind) error {
	return &Error{Kind: kind}
}
