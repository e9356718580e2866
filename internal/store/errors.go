package store

import (
	"errors"
	"fmt"
)

// ErrNoChange may be returned by a mutator to report that the document
// came out identical. The mutation succeeds without a backend write.
var ErrNoChange = errors.New("document unchanged")

// Kind classifies a store error so callers can branch without parsing
// messages.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindInsufficientFunds  Kind = "insufficient_funds"
	KindAlreadyOwned       Kind = "already_owned"
	KindConflict           Kind = "conflict"
	KindBackendUnavailable Kind = "backend_unavailable"
	KindCorrupt            Kind = "corrupt"
)

// Error is a domain failure with a stable kind and a human-readable
// message. Mutators return these instead of writing anything.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFoundf reports a referenced entity that doesn't exist.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidInputf reports malformed or missing request fields.
func InvalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// InsufficientFundsf reports a balance too low for the operation.
func InsufficientFundsf(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientFunds, Message: fmt.Sprintf(format, args...)}
}

// AlreadyOwnedf reports an item already present in a buyer's inventory.
func AlreadyOwnedf(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyOwned, Message: fmt.Sprintf(format, args...)}
}

// Conflictf reports a lost optimistic-concurrency race.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unavailablef reports an I/O or transport failure.
func Unavailablef(format string, args ...any) *Error {
	return &Error{Kind: KindBackendUnavailable, Message: fmt.Sprintf(format, args...)}
}

// Corruptf reports stored content that failed to parse.
func Corruptf(format string, args ...any) *Error {
	return &Error{Kind: KindCorrupt, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or the empty kind for non-store errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsKind reports whether err is a store error of the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
