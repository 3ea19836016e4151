// Package enverr holds the two error classes of the type environment.
//
// An Internal error means an invariant the compiler itself guarantees was broken:
// it is raised with panic and should abort the compilation run.
// A Decode error means persisted data (an interface file) was malformed:
// it is returned as an error to the caller, who may report it and retry.
package enverr

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes internal errors include the frame that raised them when printed
const enableDebugErrorPrinting bool = true
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	UnknownConstructor
	ArgumentIndexOutOfRange
	DanglingReference
	UnknownDataDeclType
	UnknownTypeKind
	UnknownTypeTag
	UnknownKindTag
	MalformedDeclaration
)

// Internal is an internal-consistency failure.
// Use New to build one, and Raise to abort with it.
type Internal struct {
	Code    ErrCode
	Message string
	stack   []byte
}

func (e *Internal) Error() string {
	return fmt.Sprintf("internal error (E%03d): %s", e.Code, e.Message)
}

func (e *Internal) Stack() []byte {
	return e.stack
}

// NewInternal captures the current stack alongside the message
func NewInternal(code ErrCode, format string, args ...any) *Internal {
	return &Internal{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		stack:   debug.Stack(),
	}
}

// Raise panics with an *Internal error. It never returns.
func Raise(code ErrCode, format string, args ...any) {
	panic(NewInternal(code, format, args...))
}

// Decode reports persisted data that could not be understood, together with the offending value
type Decode struct {
	Code  ErrCode
	What  string
	Value string
}

func (e *Decode) Error() string {
	return fmt.Sprintf("(E%03d) cannot decode %s from %s", e.Code, e.What, e.Value)
}

func NewDecode(code ErrCode, what string, value any) *Decode {
	return &Decode{Code: code, What: what, Value: fmt.Sprintf("%v", value)}
}

// FormatWithCode renders err for humans. Internal errors also print
// the frame that raised them when enableDebugErrorPrinting is set.
func FormatWithCode(err error) string {
	e, ok := err.(*Internal)
	if !ok {
		return err.Error()
	}
	if enableDebugErrorPrinting && e.stack != nil {
		stack := string(e.stack)
		if !enableDebugFullStacktrace {
			stack = raisingFrame(stack)
		}
		return fmt.Sprintf("%s: %s", stack, e.Error())
	}
	return e.Error()
}

const enverrPackage = "github.com/cottand/typenv/frontend/enverr."

// raisingFrame picks the file:line of the first frame outside runtime/debug and this package.
// Frames come in pairs after the goroutine header: the function, then its indented location.
func raisingFrame(stack string) string {
	lines := strings.Split(stack, "\n")
	for i := 1; i+1 < len(lines); i += 2 {
		fn := lines[i]
		if strings.HasPrefix(fn, "runtime/debug.") || strings.HasPrefix(fn, enverrPackage) {
			continue
		}
		return strings.TrimSpace(lines[i+1])
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
