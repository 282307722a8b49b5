package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDOnEchoContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))

	SetRequestID(c, "abc-123")
	assert.Equal(t, "abc-123", GetRequestID(c))
}

func TestRequestIDAndLoggerOnContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Nil(t, GetLogger(ctx))

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	scoped := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx = WithLogger(WithRequestID(ctx, "req-1"), scoped)

	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
	assert.Same(t, scoped, GetLogger(ctx))
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "uuid", id: "0190c3c4-5b1e-7a3b-9c4d-1e2f3a4b5c6d", want: true},
		{name: "opaque token", id: "trace:abc/DEF_42", want: true},
		{name: "empty", id: "", want: false},
		{name: "space", id: "abc def", want: false},
		{name: "newline", id: "abc\nforged=1", want: false},
		{name: "non ascii", id: "ïd", want: false},
		{name: "max length", id: strings.Repeat("a", MaxRequestIDLength), want: true},
		{name: "too long", id: strings.Repeat("a", MaxRequestIDLength+1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRequestID(tt.id))
		})
	}
}
