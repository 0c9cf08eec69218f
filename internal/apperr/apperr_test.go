package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "Classified error",
			err:  New(NotFound, "video not found"),
			want: NotFound,
		},
		{
			name: "Wrapped classified error",
			err:  fmt.Errorf("loading video: %w", New(PermissionDenied, "not the owner")),
			want: PermissionDenied,
		},
		{
			name: "Plain error",
			err:  errors.New("boom"),
			want: Unknown,
		},
		{
			name: "Wrap keeps kind",
			err:  Wrap(Upstream, "object store upload failed", errors.New("connection refused")),
			want: Upstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(InvalidArgument, "bad id"), http.StatusBadRequest},
		{New(NotFound, "missing"), http.StatusNotFound},
		{New(PermissionDenied, "not owner"), http.StatusForbidden},
		{New(Conflict, "duplicate"), http.StatusConflict},
		{New(Upstream, "store down"), http.StatusBadGateway},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMessage_Unclassified(t *testing.T) {
	if got := Message(errors.New("sql: internal detail")); got != "internal server error" {
		t.Errorf("Message() leaked internals: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(Upstream, "mongo ping failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}
