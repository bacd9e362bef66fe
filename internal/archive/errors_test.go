package archive

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindList, KindOf(E(KindList, "list messages", errors.New("boom"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))

	// Kind survives wrapping.
	wrapped := fmt.Errorf("outer: %w", E(KindFetch, "fetch message", errors.New("gone")))
	assert.Equal(t, KindFetch, KindOf(wrapped))
}

func TestErrorStringAndUnwrap(t *testing.T) {
	inner := errors.New("quota exceeded")
	err := E(KindList, "list messages", inner)

	assert.Equal(t, "list messages: quota exceeded", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "validate request", E(KindBadRequest, "validate request", nil).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil is 200", err: nil, want: http.StatusOK},
		{name: "bad request is 400", err: E(KindBadRequest, "validate", errors.New("missing")), want: http.StatusBadRequest},
		{name: "config is 500", err: E(KindConfig, "obtain", errors.New("missing secrets")), want: http.StatusInternalServerError},
		{name: "auth is 500", err: E(KindAuth, "obtain", errors.New("invalid_grant")), want: http.StatusInternalServerError},
		{name: "list is 500", err: E(KindList, "list", errors.New("boom")), want: http.StatusInternalServerError},
		{name: "unclassified is 500", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bad_request", KindBadRequest.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestKindPerMessage(t *testing.T) {
	for _, k := range []Kind{KindFetch, KindDecode, KindWrite} {
		assert.True(t, k.PerMessage(), k.String())
	}
	for _, k := range []Kind{KindBadRequest, KindConfig, KindAuth, KindList, KindUnknown} {
		assert.False(t, k.PerMessage(), k.String())
	}
}
