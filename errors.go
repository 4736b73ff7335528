package hhsav

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error kinds.
var (
	// ErrCancelled indicates the file-selection collaborator returned no path.
	// Callers usually treat it as a silent no-op.
	ErrCancelled = errors.New("cancelled")

	// ErrIO indicates a filesystem read or write failed.
	ErrIO = errors.New("io failed")

	// ErrDecompress indicates the input is not a valid compressed stream.
	ErrDecompress = errors.New("decompress failed")

	// ErrCompress indicates the compressor failed internally.
	ErrCompress = errors.New("compress failed")

	// ErrParse indicates decompressed or loaded text is not a valid document.
	ErrParse = errors.New("parse failed")

	// ErrSerialize indicates a document could not be serialized.
	ErrSerialize = errors.New("serialize failed")

	// ErrUnsupported indicates a format cannot represent the given document.
	ErrUnsupported = errors.New("unsupported")

	// ErrPath indicates an invalid or unresolvable document path.
	ErrPath = errors.New("invalid path")

	// ErrUnknownCommand indicates the shell invoked a command that is not registered.
	ErrUnknownCommand = errors.New("unknown command")
)

// Error represents a failed codec or bridge operation.
// It wraps a sentinel error with the operation, optional file path, and the
// underlying cause.
type Error struct {
	Err   error  // Underlying sentinel error (ErrParse, ErrIO, etc.)
	Op    string // Operation that failed (decompress, parse, write, ...)
	Path  string // File path involved, if any
	Cause error  // Original error from the underlying library
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates an Error for a failed operation.
func newError(sentinel error, op string, cause error) error {
	return &Error{
		Err:   sentinel,
		Op:    op,
		Cause: cause,
	}
}

// NewError creates an Error for a failed operation. Packages layered on top
// of the codec use it so their failures share the same taxonomy.
func NewError(sentinel error, op string, cause error) error {
	return newError(sentinel, op, cause)
}

// NewPathError creates an Error for a failed operation on a file.
func NewPathError(sentinel error, op, path string, cause error) error {
	return &Error{
		Err:   sentinel,
		Op:    op,
		Path:  path,
		Cause: cause,
	}
}

// Cancellation messages shown to the shell. They match the wording the
// desktop editor has always used.
const (
	MessageNoFileSelected = "No file selected"
	MessageSaveCancelled  = "Save cancelled"
)

// Cancelled returns an ErrCancelled error carrying msg as its cause.
func Cancelled(op, msg string) error {
	return &Error{Err: ErrCancelled, Op: op, Cause: errors.New(msg)}
}

// IsCancelled reports whether err signals a cancelled file selection.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Message flattens err into the single human-readable string handed to the
// application shell. Cancellations surface their bare message so the shell
// can match and ignore them.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && errors.Is(e.Err, ErrCancelled) && e.Cause != nil {
		return e.Cause.Error()
	}
	return err.Error()
}
