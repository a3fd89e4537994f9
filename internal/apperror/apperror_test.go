package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
		wantCode   codes.Code
		retryable  bool
	}{
		{"validation", Validation("bad"), http.StatusBadRequest, codes.InvalidArgument, false},
		{"authentication", Authentication("no"), http.StatusUnauthorized, codes.Unauthenticated, false},
		{"authorization", Authorization("no"), http.StatusForbidden, codes.PermissionDenied, false},
		{"not found", NotFound("gone"), http.StatusNotFound, codes.NotFound, false},
		{"conflict", Conflict("dup"), http.StatusConflict, codes.AlreadyExists, false},
		{"unavailable", Unavailable("down", errors.New("timeout")), http.StatusServiceUnavailable, codes.Unavailable, true},
		{"invalid operation", InvalidOperation("protected"), http.StatusBadRequest, codes.FailedPrecondition, false},
		{"internal", Internal("boom", nil), http.StatusInternalServerError, codes.Internal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus())
			assert.Equal(t, tt.wantCode, tt.err.GRPCCode())
			assert.Equal(t, tt.retryable, tt.err.Retryable())
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	base := AuthenticationReason(ReasonTokenExpired, "token expired")
	wrapped := fmt.Errorf("failed to verify: %w", base)

	assert.Equal(t, KindAuthentication, KindOf(wrapped))
	assert.Equal(t, ReasonTokenExpired, ReasonOf(wrapped))
	assert.True(t, IsKind(wrapped, KindAuthentication))

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "token expired", got.Message)
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("raw")))
	assert.Equal(t, Reason(""), ReasonOf(errors.New("raw")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestError_MessageHidesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Unavailable("service temporarily unavailable", cause)

	assert.Equal(t, "service temporarily unavailable", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
