package errors

import (
	"fmt"
	"strings"
)

// Kind identifies the pipeline stage an error belongs to.
type Kind string

const (
	KindGeneric   Kind = ""
	KindDownload  Kind = "DownloadError"
	KindTranscode Kind = "TranscodeError"
	KindNotFound  Kind = "NotFoundError"
	KindPublish   Kind = "PublishError"
)

// Stage errors. errors.Is matches any error of the same kind against these.
var (
	ErrDownload  = &Error{kind: KindDownload, message: "download failed"}
	ErrTranscode = &Error{kind: KindTranscode, message: "transcode failed"}
	ErrNotFound  = &Error{kind: KindNotFound, message: "file not found"}
	ErrPublish   = &Error{kind: KindPublish, message: "publish failed"}

	// ErrToolNotFound is the cause of a TranscodeError raised when the external
	// transcoding binary cannot be resolved on PATH.
	ErrToolNotFound = New("transcoding tool not found")

	// Configuration errors
	ErrInvalidConfig = New("invalid configuration")
	ErrInvalidURL    = New("invalid url")
)

// Error represents a standardized error
type Error struct {
	kind    Kind
	message string
	output  string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Download builds a DownloadError.
func Download(cause error, format string, args ...interface{}) *Error {
	return &Error{kind: KindDownload, message: fmt.Sprintf(format, args...), cause: cause}
}

// Transcode builds a TranscodeError carrying the tool's diagnostic output.
func Transcode(cause error, output string, format string, args ...interface{}) *Error {
	return &Error{kind: KindTranscode, message: fmt.Sprintf(format, args...), output: output, cause: cause}
}

// NotFound builds a NotFoundError for a missing local file.
func NotFound(itemType string, path string) *Error {
	return &Error{kind: KindNotFound, message: fmt.Sprintf("%s not found: %s", itemType, path)}
}

// Publish builds a PublishError.
func Publish(cause error, format string, args ...interface{}) *Error {
	return &Error{kind: KindPublish, message: fmt.Sprintf(format, args...), cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	if e.kind != KindGeneric {
		b.WriteString(string(e.kind))
		b.WriteString(": ")
	}
	b.WriteString(e.message)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the stage kind of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Output returns raw diagnostic output captured from an external tool, if any.
func (e *Error) Output() string {
	return e.output
}

// Is checks if the error matches target. Stage errors match by kind, plain
// errors by message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.kind != KindGeneric || e.kind != KindGeneric {
		return e.kind == t.kind
	}
	return e.message == t.message
}

// KindOf walks the chain of err and returns the first stage kind found.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok && e.kind != KindGeneric {
			return e.kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindGeneric
		}
		err = u.Unwrap()
	}
	return KindGeneric
}

// OutputOf returns the first non-empty tool output found in the chain of err.
func OutputOf(err error) string {
	for err != nil {
		if e, ok := err.(*Error); ok && e.output != "" {
			return e.output
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
