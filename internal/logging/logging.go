// Package logging builds the zerolog loggers used by commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const permission = 0o664

type Build struct {
	writer  io.Writer
	path    string
	level   zerolog.Level
	console bool
}

func New() *Build {
	return &Build{level: zerolog.InfoLevel}
}

func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

func (b *Build) FromWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Console switches to zerolog's human-readable writer.
func (b *Build) Console(on bool) *Build {
	b.console = on
	return b
}

func (b *Build) Level(l zerolog.Level) *Build {
	b.level = l
	return b
}

// Make returns the logger and a close func for the log file, if any.
func (b *Build) Make() (zerolog.Logger, func() error, error) {
	w := b.writer
	if w == nil {
		w = os.Stderr
	}
	closeFn := func() error { return nil }
	if strings.TrimSpace(b.path) != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return zerolog.Nop(), closeFn, err
		}
		w = zerolog.SyncWriter(f)
		closeFn = f.Close
	}
	if b.console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: b.path != ""}
	}
	return zerolog.New(w).Level(b.level).With().Timestamp().Logger(), closeFn, nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(s)
}
