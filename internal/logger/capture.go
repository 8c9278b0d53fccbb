package logger

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// in-memory slog handler that records every entry, used by tests to
// assert on what was logged. loggers derived with With share the records
// and stamp their attributes onto each entry
type Capture struct {
	store *captureStore
	attrs []slog.Attr
}

type captureStore struct {
	mu      sync.Mutex
	records []slog.Record
}

// returns a logger writing into a fresh capture at debug level
func NewCapture() (*slog.Logger, *Capture) {
	c := &Capture{store: &captureStore{}}
	return slog.New(c), c
}

func (c *Capture) Enabled(context.Context, slog.Level) bool {
	return true
}

func (c *Capture) Handle(_ context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(c.attrs...)

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.store.records = append(c.store.records, r)
	return nil
}

func (c *Capture) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Capture{
		store: c.store,
		attrs: append(slices.Clone(c.attrs), attrs...),
	}
}

// groups are flattened
func (c *Capture) WithGroup(string) slog.Handler {
	return c
}

// returns the number of records logged at exactly the given level
func (c *Capture) Count(level slog.Level) int {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	n := 0
	for _, r := range c.store.records {
		if r.Level == level {
			n++
		}
	}

	return n
}

// returns the messages logged at the given level, in order
func (c *Capture) Messages(level slog.Level) []string {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	var out []string
	for _, r := range c.store.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}

	return out
}

// returns the string value of an attribute on the first record with the
// given message
func (c *Capture) Attr(message, key string) (string, bool) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, r := range c.store.records {
		if r.Message != message {
			continue
		}

		var (
			value string
			found bool
		)

		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				value = a.Value.String()
				found = true
				return false
			}
			return true
		})

		return value, found
	}

	return "", false
}
