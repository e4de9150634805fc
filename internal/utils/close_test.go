package utils

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

type countingCloser struct {
	calls int
	err   error
}

func (c *countingCloser) Close() error {
	c.calls++
	return c.err
}

func TestClose(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ok", nil},
		{"error swallowed", errors.New("already closed")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &countingCloser{err: tt.err}
			Close(c)
			CloseLogged(c, "test", logger.NewNop())
			if c.calls != 2 {
				t.Errorf("Close called %d times, want 2", c.calls)
			}
		})
	}
}
