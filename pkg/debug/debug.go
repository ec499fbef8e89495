// Package debug builds the zerolog loggers used by the command line tools.
package debug

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Options controls how NewLogger renders events
type Options struct {
	// Level is the minimum level written
	Level zerolog.Level
	// Pretty renders with a zerolog.ConsoleWriter instead of JSON lines
	Pretty bool
	// Color colorizes the pretty output and the caller field
	Color bool
	// TimeFormat overrides the default millisecond timestamp
	TimeFormat string
}

// NewLogger returns a logger writing to w with the time and caller hooks attached
func NewLogger(w io.Writer, opts Options) zerolog.Logger {
	if opts.Pretty {
		w = zerolog.ConsoleWriter{
			Out:     w,
			NoColor: !opts.Color,
			// the time hook already writes a formatted string
			FormatTimestamp: func(i interface{}) string {
				return fmt.Sprintf("%v", i)
			},
		}
	}

	return zerolog.New(w).
		Level(opts.Level).
		Hook(CustomTimeHook{WithColor: opts.Color, Format: opts.TimeFormat}).
		Hook(CustomCallerHook{WithColor: opts.Color})
}

// ParseLevel maps a level name to a zerolog level, falling back to info
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func callerSkipFrameCount(e *zerolog.Event) int {
	// skipFrame is unexported, read it through reflection
	field := reflect.ValueOf(e).Elem().FieldByName("skipFrame")
	if field.IsValid() {
		return int(field.Int())
	}
	return 0
}

type CustomTimeHook struct {
	WithColor bool
	Format    string
}

func (t CustomTimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	format := t.Format
	if format == "" {
		// millisecond precision, no timezone
		format = "2006-01-02T15:04:05.0000Z"
	}
	e.Str(zerolog.TimestampFieldName, time.Now().Format(format))
}

type CustomCallerHook struct {
	WithColor bool
}

func (c CustomCallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(callerSkipFrameCount(e) + 3)
	if !ok {
		return
	}

	pkg := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		pkg, _ = SplitFuncName(fn.Name())
	}

	e.Str(zerolog.CallerFieldName, FormatCaller(pkg, file, line, c.WithColor))
}

// SplitFuncName splits a runtime function name such as
// github.com/walteh/djtmpls/pkg/watch.(*Watcher).Run into its package and function
func SplitFuncName(name string) (pkg, function string) {
	lastSlash := strings.LastIndexByte(name, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}

	firstDot := strings.IndexByte(name[lastSlash:], '.')
	if firstDot < 0 {
		return name, ""
	}
	firstDot += lastSlash

	return name[:firstDot], name[firstDot+1:]
}

// FormatCaller renders pkg:file.go:line, with the file in bold and the line in red
// when colorize is set
func FormatCaller(pkg, path string, line int, colorize bool) string {
	file := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		file = path[i+1:]
	}

	if !colorize {
		return fmt.Sprintf("%s:%s:%d", pkg, file, line)
	}

	sep := color.New(color.Faint).Sprint(":")
	return pkg + sep +
		color.New(color.Bold).Sprint(file) + sep +
		color.New(color.FgHiRed, color.Bold).Sprintf("%d", line)
}
