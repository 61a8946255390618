package cc

import "fmt"

// ErrorKind enumerates classification failure categories.
type ErrorKind uint8

const (
	// ErrConfig indicates an unsupported machine configuration.
	ErrConfig ErrorKind = iota + 1
	// ErrUsage indicates invalid use of the API, such as passing the same
	// descriptor instance twice.
	ErrUsage
	// ErrVarArgs indicates misuse of the variadic wrapper.
	ErrVarArgs
	// ErrUnsupported indicates a construct the convention cannot pass, such
	// as a bare array argument.
	ErrUnsupported
	// ErrInternal indicates a broken invariant inside the allocator. The
	// routing algorithm checks limits before every placement, so seeing this
	// is a defect in the classifier, not an input error.
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConfig:
		return "config"
	case ErrUsage:
		return "usage"
	case ErrVarArgs:
		return "varargs"
	case ErrUnsupported:
		return "unsupported"
	case ErrInternal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a classification error with a machine-checkable kind.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, or 0 when err is not a
// classification error.
func KindOf(err error) ErrorKind {
	if ce, ok := err.(*Error); ok {
		return ce.Kind
	}
	return 0
}
