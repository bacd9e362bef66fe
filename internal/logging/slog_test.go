package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "non-nil error",
			err:  errors.New("boom"),
			want: "boom",
		},
		{
			name: "nil error omitted",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			logger.Info("op failed", Err(tt.err))

			if tt.want == "" {
				assert.NotContains(t, buf.String(), KeyError+"=")
			} else {
				assert.Contains(t, buf.String(), "error="+tt.want)
			}
		})
	}
}

func TestAnonymizeUser(t *testing.T) {
	assert.Empty(t, AnonymizeUser(""))

	h := AnonymizeUser("user@example.com")
	assert.True(t, strings.HasPrefix(h, "user:"))
	assert.NotContains(t, h, "example.com")

	// Same input must hash to the same value for log correlation.
	assert.Equal(t, h, AnonymizeUser("user@example.com"))
	assert.NotEqual(t, h, AnonymizeUser("other@example.com"))
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	assert.Equal(t, "[token:6 chars]", SanitizeToken("secret"))
	assert.NotContains(t, SanitizeToken("ya29.very-secret"), "ya29")
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithService(WithOperation(logger, "archive"), "gmail").Info("listing")

	out := buf.String()
	assert.Contains(t, out, "operation=archive")
	assert.Contains(t, out, "service=gmail")
}
