package logging

import "github.com/rs/zerolog"

type HasLogger interface {
	Log() *zerolog.Logger
}

type SetLogging interface {
	SetLogging(*Logging) *Logging
}

// Logging is embedded by components; it starts as a no-op logger until a
// parent logger is installed by SetLogger or SetLogging.
type Logging struct {
	l    zerolog.Logger
	orig zerolog.Logger
	f    func(zerolog.Context) zerolog.Context
}

func NewLogging(f func(zerolog.Context) zerolog.Context) *Logging {
	nop := zerolog.Nop()
	return &Logging{
		l:    nop,
		orig: nop,
		f:    f,
	}
}

// NewModuleLogging is NewLogging with the "module" field set.
func NewModuleLogging(module string) *Logging {
	return NewLogging(func(c zerolog.Context) zerolog.Context {
		return c.Str("module", module)
	})
}

func (lg *Logging) Log() *zerolog.Logger {
	return &lg.l
}

func (lg *Logging) SetLogger(l zerolog.Logger) *Logging {
	lg.orig = l
	if lg.f != nil {
		lg.l = lg.f(lg.orig.With()).Logger()
	} else {
		lg.l = l
	}

	return lg
}

func (lg *Logging) SetLogging(l *Logging) *Logging {
	return lg.SetLogger(l.orig)
}
