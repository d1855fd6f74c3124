// Package errors provides structured error handling for snapsheet.
//
// The sheet engine itself never returns errors from input handling: rejected
// requests report false and degenerate numbers are absorbed. Errors exist for
// construction, configuration loading, and panics recovered inside a frame.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid profile, sequence, or config file.
	KindConfig
	// KindLifecycle indicates input reaching a disposed sheet.
	KindLifecycle
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindLifecycle:
		return "lifecycle"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// SheetError represents a structured error raised by snapsheet.
type SheetError struct {
	// Op is the operation that failed (e.g., "sheet.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Path is the config file involved, if any.
	Path string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SheetError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// Config builds a KindConfig error for op.
func Config(op string, err error) *SheetError {
	return &SheetError{Op: op, Kind: KindConfig, Err: err}
}

// Lifecycle builds a KindLifecycle error for op.
func Lifecycle(op string, err error) *SheetError {
	return &SheetError{Op: op, Kind: KindLifecycle, Err: err}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "sheet.settle").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by snapsheet.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *SheetError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
