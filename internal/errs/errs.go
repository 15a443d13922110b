// Package errs defines the error kinds the core and driver raise, each
// carrying the exit code the CLI surfaces to the shell.
package errs

import (
	"errors"
	"fmt"
)

// Code is a process exit code, per the CLI surface's error-handling design.
type Code int

const (
	CodeOK             Code = 0
	CodeGeneric        Code = 1
	CodeFileNotFound   Code = 2
	CodeConfig         Code = 3
	CodeFontLoad       Code = 4
	CodeCharset        Code = 5
	CodeRender         Code = 6
	CodeWrite          Code = 7
	CodeUnexpected     Code = 99
)

// Kind names the cause of an error, independent of its Go representation.
type Kind int

const (
	KindConfigValidation Kind = iota
	KindFileNotFound
	KindParseError
	KindFontLoad
	KindGlyphRenderFailed
	KindWriteError
)

func (k Kind) exitCode() Code {
	switch k {
	case KindConfigValidation, KindParseError:
		return CodeConfig
	case KindFileNotFound:
		return CodeFileNotFound
	case KindFontLoad:
		return CodeFontLoad
	case KindGlyphRenderFailed:
		return CodeRender
	case KindWriteError:
		return CodeWrite
	default:
		return CodeUnexpected
	}
}

// Error is the concrete error type raised by the core and driver. Path and
// CodePoint are optional context, included in the message when set.
type Error struct {
	Kind      Kind
	Message   string
	Path      string
	CodePoint int
	HasCP     bool
	Err       error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.HasCP {
		msg = fmt.Sprintf("%s (U+%04X)", msg, e.CodePoint)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns the exit code for the given error, matching it against
// *Error where possible and falling back to a generic/unexpected code.
func ExitCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.exitCode()
	}
	return CodeGeneric
}

func ConfigValidation(msg string) error { return &Error{Kind: KindConfigValidation, Message: msg} }

func FileNotFound(path string) error {
	return &Error{Kind: KindFileNotFound, Message: "file not found", Path: path}
}

func ParseError(msg, path string, err error) error {
	return &Error{Kind: KindParseError, Message: msg, Path: path, Err: err}
}

func FontLoad(msg, path string, err error) error {
	return &Error{Kind: KindFontLoad, Message: msg, Path: path, Err: err}
}

func GlyphRenderFailed(cp int, err error) error {
	return &Error{Kind: KindGlyphRenderFailed, Message: "glyph render failed", CodePoint: cp, HasCP: true, Err: err}
}

func WriteError(path string, err error) error {
	return &Error{Kind: KindWriteError, Message: "write failed", Path: path, Err: err}
}
