package logger

import (
	"fmt"
	"sync"
)

// Buffer is a Logger that keeps every message in memory, prefixed with its
// level in brackets ("[warn] ..."). It is meant for tests.
type Buffer struct {
	mu       sync.Mutex
	level    Level
	Messages []string
}

// NewBuffer returns a Buffer whose Messages is empty rather than nil, so
// tests can compare it against []string{}.
func NewBuffer() *Buffer {
	return &Buffer{Messages: []string{}}
}

func (b *Buffer) add(level, format string, v []any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Messages = append(b.Messages, fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, v...)))
}

func (b *Buffer) Debug(format string, v ...any)  { b.add("debug", format, v) }
func (b *Buffer) Info(format string, v ...any)   { b.add("info", format, v) }
func (b *Buffer) Notice(format string, v ...any) { b.add("notice", format, v) }
func (b *Buffer) Warn(format string, v ...any)   { b.add("warn", format, v) }
func (b *Buffer) Error(format string, v ...any)  { b.add("error", format, v) }

// Fatal records the message. Unlike ConsoleLogger it does not exit.
func (b *Buffer) Fatal(format string, v ...any) { b.add("fatal", format, v) }

// WithFields returns b; fields are not recorded.
func (b *Buffer) WithFields(...Field) Logger {
	return b
}

// SetLevel records the level so tests can check it. Messages below the level
// are still stored.
func (b *Buffer) SetLevel(level Level) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.level = level
}

func (b *Buffer) Level() Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}
