package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("nil error produces empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
	})

	t.Run("wraps the error under the error key", func(t *testing.T) {
		t.Parallel()
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.String())
	})
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("all nil produces empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	})

	t.Run("groups non-nil errors with positional keys", func(t *testing.T) {
		t.Parallel()

		attr := logger.Errors(errors.New("first"), nil, errors.New("third"))
		assert.Equal(t, "errors", attr.Key)

		group := attr.Value.Group()
		assert.Len(t, group, 2)
		assert.Equal(t, "0", group[0].Key)
		assert.Equal(t, "2", group[1].Key)
	})
}

func TestStringAttrs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fn   func(string) slog.Attr
		key  string
	}{
		{"Component", logger.Component, "component"},
		{"Event", logger.Event, "event"},
		{"Provider", logger.Provider, "provider"},
		{"Endpoint", logger.Endpoint, "endpoint"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, slog.Attr{}, tc.fn(""))

			attr := tc.fn("value")
			assert.Equal(t, tc.key, attr.Key)
			assert.Equal(t, "value", attr.Value.String())
		})
	}
}
