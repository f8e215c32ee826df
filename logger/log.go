// Package logger provides the leveled logger bkyml writes its diagnostics
// with.
//
// Diagnostics always go to standard error. Standard output carries nothing
// but the generated YAML, so that it can be redirected into a pipeline file.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	nocolor   = "0"
	red       = "31"
	green     = "38;5;48"
	yellow    = "33"
	gray      = "38;5;251"
	lightgray = "38;5;243"
	cyan      = "1;36"
)

const DateFormat = "2006-01-02 15:04:05"

var windowsColors bool

type Logger interface {
	Debug(format string, v ...any)
	Error(format string, v ...any)
	Fatal(format string, v ...any)
	Notice(format string, v ...any)
	Warn(format string, v ...any)
	Info(format string, v ...any)

	WithFields(fields ...Field) Logger
	SetLevel(level Level)
	Level() Level
}

// Printer formats and writes a single log line.
type Printer interface {
	Print(level Level, msg string, fields Fields)
}

// ConsoleLogger filters messages by level and hands them to a Printer.
type ConsoleLogger struct {
	level   Level
	exitFn  func(int)
	fields  Fields
	printer Printer
}

// NewConsoleLogger returns a logger at NOTICE level. exitFn is called with 1
// after a Fatal message has been printed.
func NewConsoleLogger(printer Printer, exitFn func(int)) *ConsoleLogger {
	return &ConsoleLogger{
		level:   NOTICE,
		exitFn:  exitFn,
		printer: printer,
	}
}

// WithFields returns a copy of the logger that adds fields to every line.
func (l *ConsoleLogger) WithFields(fields ...Field) Logger {
	clone := *l
	clone.fields = append(append(Fields{}, l.fields...), fields...)
	return &clone
}

// SetLevel sets the level for the logger
func (l *ConsoleLogger) SetLevel(level Level) {
	l.level = level
}

func (l *ConsoleLogger) Level() Level {
	return l.level
}

func (l *ConsoleLogger) Debug(format string, v ...any) {
	l.log(DEBUG, format, v...)
}

func (l *ConsoleLogger) Info(format string, v ...any) {
	l.log(INFO, format, v...)
}

func (l *ConsoleLogger) Notice(format string, v ...any) {
	l.log(NOTICE, format, v...)
}

func (l *ConsoleLogger) Warn(format string, v ...any) {
	l.log(WARN, format, v...)
}

func (l *ConsoleLogger) Error(format string, v ...any) {
	l.log(ERROR, format, v...)
}

func (l *ConsoleLogger) Fatal(format string, v ...any) {
	l.log(FATAL, format, v...)
	l.exitFn(1)
}

func (l *ConsoleLogger) log(level Level, format string, v ...any) {
	if level < l.level {
		return
	}
	l.printer.Print(level, fmt.Sprintf(format, v...), l.fields)
}

// ColorsAvailable reports whether f is a terminal that understands ANSI
// colour codes.
func ColorsAvailable(f *os.File) bool {
	// Set in init on Windows.
	if runtime.GOOS == "windows" && !windowsColors {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TextPrinter prints human readable lines, optionally coloured.
type TextPrinter struct {
	Colors bool

	mu     sync.Mutex
	writer io.Writer
}

func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{writer: w}
}

func (p *TextPrinter) Print(level Level, msg string, fields Fields) {
	now := time.Now().Format(DateFormat)

	var b strings.Builder
	if p.Colors {
		levelColor := green
		messageColor := nocolor

		switch level {
		case DEBUG:
			levelColor = gray
			messageColor = gray
		case NOTICE:
			levelColor = cyan
		case WARN:
			levelColor = yellow
		case ERROR:
			levelColor = red
		case FATAL:
			levelColor = red
			messageColor = red
		}

		fmt.Fprintf(&b, "\x1b[%sm%s %-6s\x1b[0m \x1b[%sm%s\x1b[0m", levelColor, now, level, messageColor, msg)
		for _, f := range fields {
			fmt.Fprintf(&b, " \x1b[%sm%s=\x1b[0m%s", lightgray, f.Key(), f.String())
		}
	} else {
		fmt.Fprintf(&b, "%s %-6s %s", now, level, msg)
		for _, f := range fields {
			fmt.Fprintf(&b, " %s=%s", f.Key(), f.String())
		}
	}
	b.WriteByte('\n')

	// One line at a time.
	p.mu.Lock()
	defer p.mu.Unlock()
	io.WriteString(p.writer, b.String()) //nolint:errcheck // Nowhere left to report a failed log write.
}

// JSONPrinter prints one JSON object per line.
type JSONPrinter struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

func (p *JSONPrinter) Print(level Level, msg string, fields Fields) {
	obj := make(map[string]string, len(fields)+3)
	for _, f := range fields {
		obj[f.Key()] = f.String()
	}
	obj["ts"] = time.Now().Format(time.RFC3339)
	obj["level"] = level.String()
	obj["msg"] = msg

	// A map of strings always marshals.
	line, _ := json.Marshal(obj)
	line = append(line, '\n')

	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer.Write(line) //nolint:errcheck // Nowhere left to report a failed log write.
}

// Discard is a logger that prints nothing.
var Discard Logger = NewConsoleLogger(NewTextPrinter(io.Discard), func(int) {})
