package binder_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/binder"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	bind := binder.Query()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Code  string `query:"code"`
			State string `query:"state"`
		}
		r := httptest.NewRequest("GET", "/?code=c1&state=s1", nil)
		require.NoError(t, bind(r, &target))
		assert.Equal(t, "c1", target.Code)
		assert.Equal(t, "s1", target.State)
	})

	t.Run("falls back to lowercased field name", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Term string
		}
		r := httptest.NewRequest("GET", "/?term=go", nil)
		require.NoError(t, bind(r, &target))
		assert.Equal(t, "go", target.Term)
	})

	t.Run("converts numeric and bool types", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Page   int     `query:"page"`
			Weight float64 `query:"weight"`
			Active bool    `query:"active"`
		}
		r := httptest.NewRequest("GET", "/?page=3&weight=1.5&active=true", nil)
		require.NoError(t, bind(r, &target))
		assert.Equal(t, 3, target.Page)
		assert.Equal(t, 1.5, target.Weight)
		assert.True(t, target.Active)
	})

	t.Run("binds multi-value parameters to slices", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Tags []string `query:"tag"`
		}
		r := httptest.NewRequest("GET", "/?tag=a&tag=b", nil)
		require.NoError(t, bind(r, &target))
		assert.Equal(t, []string{"a", "b"}, target.Tags)
	})

	t.Run("optional pointer fields", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Limit *int `query:"limit"`
		}
		r := httptest.NewRequest("GET", "/?limit=10", nil)
		require.NoError(t, bind(r, &target))
		require.NotNil(t, target.Limit)
		assert.Equal(t, 10, *target.Limit)

		var empty struct {
			Limit *int `query:"limit"`
		}
		r = httptest.NewRequest("GET", "/", nil)
		require.NoError(t, bind(r, &empty))
		assert.Nil(t, empty.Limit)
	})

	t.Run("skipped fields stay zero", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Secret string `query:"-"`
		}
		r := httptest.NewRequest("GET", "/?secret=x", nil)
		require.NoError(t, bind(r, &target))
		assert.Empty(t, target.Secret)
	})

	t.Run("missing parameters leave zero values", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Code string `query:"code"`
		}
		r := httptest.NewRequest("GET", "/", nil)
		require.NoError(t, bind(r, &target))
		assert.Empty(t, target.Code)
	})

	t.Run("conversion failure wraps ErrInvalidQuery", func(t *testing.T) {
		t.Parallel()

		var target struct {
			Page int `query:"page"`
		}
		r := httptest.NewRequest("GET", "/?page=abc", nil)
		require.ErrorIs(t, bind(r, &target), binder.ErrInvalidQuery)
	})

	t.Run("rejects non-pointer targets", func(t *testing.T) {
		t.Parallel()

		var target struct{}
		r := httptest.NewRequest("GET", "/", nil)
		require.ErrorIs(t, bind(r, target), binder.ErrInvalidQuery)
	})
}
