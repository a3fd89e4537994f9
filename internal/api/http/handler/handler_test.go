package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/studypartner-auth/internal/api/http/context"
	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// serve routes a single request through pattern, optionally as principal.
func serve(
	t *testing.T,
	cm *httpctx.Manager,
	principal *model.Principal,
	method, pattern, target, body string,
	h http.HandlerFunc,
) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if principal != nil {
				req = req.WithContext(cm.SetPrincipal(req.Context(), *principal))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.MethodFunc(method, pattern, h)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.RemoteAddr = "192.0.2.1:4321"
	req.Header.Set("User-Agent", "test-agent")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func dataMap(t *testing.T, env response.Envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	require.True(t, ok, "data is %T", env.Data)
	return m
}
