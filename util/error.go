package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// NError is an identified error. Errors derived from the same NError by Wrap,
// Errorf or Caller share its identity, so errors.Is matches them. An NError
// made by New belongs to the category of its parent as well.
type NError struct {
	*stack
	id      string
	msg     string
	parent  *NError
	wrapped error
}

func NewError(s string, a ...interface{}) *NError {
	return newError(nil, s, a...)
}

func newError(parent *NError, s string, a ...interface{}) *NError {
	var pcs [1]uintptr
	_ = runtime.Callers(3, pcs[:])
	f := errors.Frame(pcs[0])

	return &NError{
		id:     fmt.Sprintf("%+s:%d", f, f),
		msg:    strings.TrimSpace(fmt.Sprintf(s, a...)),
		parent: parent,
	}
}

// New creates a new error kind under er.
func (er *NError) New(s string, a ...interface{}) *NError {
	return newError(er, s, a...)
}

func (er *NError) Error() string {
	i := er.msg

	if er.wrapped != nil {
		j := er.wrapped.Error()
		if len(j) > 0 {
			i += "; " + j
		}
	}

	return i
}

func (er *NError) Unwrap() error {
	return er.wrapped
}

func (er *NError) Is(err error) bool {
	i, ok := err.(*NError) // nolint:errorlint
	if !ok {
		return false
	}

	if i.id == er.id {
		return true
	}

	return er.parent != nil && er.parent.Is(err)
}

func (*NError) As(err interface{}) bool { // nolint:govet
	_, ok := err.(*NError) // nolint:errorlint

	return ok
}

func (er *NError) Wrap(err error) *NError {
	return &NError{
		id:      er.id,
		msg:     er.msg,
		parent:  er.parent,
		stack:   callers(3),
		wrapped: err,
	}
}

func (er *NError) Errorf(s string, a ...interface{}) *NError {
	return &NError{
		id:      er.id,
		msg:     er.msg,
		parent:  er.parent,
		stack:   callers(3),
		wrapped: fmt.Errorf(s, a...),
	}
}

func (er *NError) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			ws := er.wrapped != nil || er.stack != nil

			if ws {
				_, _ = fmt.Fprintf(st, "%s", er.msg)
			}

			if er.stack != nil {
				er.stack.Format(st, verb)
			}

			if er.wrapped != nil {
				var d string
				if len(er.msg) > 0 {
					d = "; "
				}
				_, _ = fmt.Fprintf(st, "%s%+v", d, er.wrapped)
			}

			if ws {
				return
			}
		}

		fallthrough
	case 's':
		_, _ = io.WriteString(st, er.Error())
	case 'q':
		_, _ = fmt.Fprintf(st, "%q", er.Error())
	}
}

func (er *NError) Caller(n int) *NError {
	return &NError{
		id:      er.id,
		msg:     er.msg,
		parent:  er.parent,
		stack:   callers(n),
		wrapped: er.wrapped,
	}
}

func (er *NError) StackTrace() errors.StackTrace {
	if er.stack != nil {
		return er.stack.StackTrace()
	}

	if er.wrapped == nil {
		return nil
	}

	i, ok := er.wrapped.(stackTracer) // nolint:errorlint
	if !ok {
		return nil
	}

	return i.StackTrace()
}

// callers is from
// https://github.com/pkg/errors/blob/856c240a51a2bf8fb8269ea7f3f9b046aadde36e/stack.go#L163
func callers(skip int) *stack {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(skip, pcs[:])
	var st stack = pcs[0:n]
	return &st
}

type stack []uintptr

func (s *stack) Format(st fmt.State, verb rune) {
	if verb == 'v' && st.Flag('+') {
		for _, pc := range *s {
			_, _ = fmt.Fprintf(st, "\n%+v", errors.Frame(pc))
		}
	}
}

func (s *stack) StackTrace() errors.StackTrace {
	f := make([]errors.Frame, len(*s))
	for i := 0; i < len(f); i++ {
		f[i] = errors.Frame((*s)[i])
	}
	return f
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}
