package nanotodo

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Option is a function that modifies Collection configuration
type Option func(*Collection)

// WithClock sets the time source used for timestamps
func WithClock(fn func() time.Time) Option {
	return func(c *Collection) {
		if fn != nil {
			c.now = fn
		}
	}
}

// WithIDFunc sets the identifier generator
func WithIDFunc(fn func() string) Option {
	return func(c *Collection) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLocale sets the BCP 47 locale used for alphabetical ordering
func WithLocale(locale string) Option {
	return func(c *Collection) {
		c.locale = locale
	}
}

func defaultIDFunc() string {
	return uuid.NewString()
}
