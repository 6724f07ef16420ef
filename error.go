package navsearch

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("navsearch error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// FetchKind identifies which stage of the index build a fetch belongs to.
type FetchKind string

// Fetch kinds. A registry failure aborts the build, a manifest failure drops
// one category, a page failure drops one page.
const (
	FetchRegistry FetchKind = "registry"
	FetchManifest FetchKind = "manifest"
	FetchPage     FetchKind = "page"
)

// FetchError is returned by a Source when a document cannot be retrieved or decoded.
type FetchError struct {
	Kind   FetchKind
	Target string // URL or path of the document
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Kind, e.Target, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchKind reports whether err contains a FetchError of the given kind.
func IsFetchKind(err error, kind FetchKind) bool {
	var e *FetchError
	return errors.As(err, &e) && e.Kind == kind
}
