package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogEntry is one captured log line. Attrs holds the record attributes merged
// with those bound through Logger.With; grouped keys are joined with ".".
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// logStore is shared by a capture and every handler derived from it
type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogCapture is a slog.Handler that keeps entries in memory for assertions.
// Handlers derived with WithAttrs or WithGroup write to the same store, so the
// component loggers built with logger.With(slog.String("component", ...)) are
// captured with their component.
type LogCapture struct {
	store  *logStore
	bound  []slog.Attr
	prefix string
	t      testing.TB
}

// NewTestLogger returns a logger writing into a fresh capture
func NewTestLogger(t testing.TB) (*slog.Logger, *LogCapture) {
	capture := &LogCapture{store: &logStore{}, t: t}
	return slog.New(capture), capture
}

// Enabled implements slog.Handler; every level is captured
func (c *LogCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(c.bound)+r.NumAttrs())
	for _, a := range c.bound {
		addAttr(attrs, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(attrs, c.prefix, a)
		return true
	})

	c.store.mu.Lock()
	c.store.entries = append(c.store.entries, LogEntry{Level: r.Level, Message: r.Message, Attrs: attrs})
	c.store.mu.Unlock()

	if c.t != nil {
		c.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler
func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *c
	derived.bound = make([]slog.Attr, 0, len(c.bound)+len(attrs))
	derived.bound = append(derived.bound, c.bound...)
	for _, a := range attrs {
		if c.prefix != "" {
			a.Key = c.prefix + a.Key
		}
		derived.bound = append(derived.bound, a)
	}
	return &derived
}

// WithGroup implements slog.Handler
func (c *LogCapture) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	derived := *c
	derived.prefix = c.prefix + name + "."
	return &derived
}

func addAttr(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, member := range v.Group() {
			addAttr(dst, prefix+a.Key+".", member)
		}
		return
	}
	dst[prefix+a.Key] = v.Any()
}

// Entries returns a copy of everything captured so far
func (c *LogCapture) Entries() []LogEntry {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	out := make([]LogEntry, len(c.store.entries))
	copy(out, c.store.entries)
	return out
}

// EntriesAt returns the entries logged at level
func (c *LogCapture) EntriesAt(level slog.Level) []LogEntry {
	var out []LogEntry
	for _, e := range c.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// ForComponent returns the entries logged by the named component logger
func (c *LogCapture) ForComponent(component string) []LogEntry {
	var out []LogEntry
	for _, e := range c.Entries() {
		if e.Attrs["component"] == component {
			out = append(out, e)
		}
	}
	return out
}

// ContainsMessage reports whether any entry message contains message
func (c *LogCapture) ContainsMessage(message string) bool {
	for _, e := range c.Entries() {
		if strings.Contains(e.Message, message) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any entry carries key with value.
// Integers are compared as the int64 slog stores them.
func (c *LogCapture) ContainsAttr(key string, value any) bool {
	for _, e := range c.Entries() {
		if v, ok := e.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// AssertLogContains fails t unless an entry at level contains message
func AssertLogContains(t testing.TB, capture *LogCapture, level slog.Level, message string) {
	t.Helper()

	entries := capture.EntriesAt(level)
	for _, e := range entries {
		if strings.Contains(e.Message, message) {
			return
		}
	}

	t.Errorf("no %s log containing %q", level, message)
	for _, e := range entries {
		t.Logf("  - %s", e.Message)
	}
}
