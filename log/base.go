// Package log defines standard logging for gorsa.
package log

import "github.com/inconshreveable/log15"

type Logger interface {
	With(ctx ...interface{}) Logger

	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
}

type log15Adaptor struct {
	log15.Logger
}

func (l log15Adaptor) With(ctx ...interface{}) Logger {
	return log15Adaptor{
		Logger: l.New(ctx...),
	}
}

// NewLog15 adapts a configured log15 logger.
func NewLog15(l log15.Logger) Logger {
	return log15Adaptor{Logger: l}
}

func NewDebug() Logger {
	return log15Adaptor{
		Logger: log15.New(),
	}
}

// NewNop returns a logger that discards everything. This is the default
// for library consumers who do not configure logging.
func NewNop() Logger {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return log15Adaptor{Logger: l}
}
