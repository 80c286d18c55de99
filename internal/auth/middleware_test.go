package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(t *testing.T) http.Handler {
	t.Helper()
	return JWTMiddleware("secret", "careerchat")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cl, ok := FromContext(r.Context())
		if !ok {
			t.Error("claims missing from context")
		} else {
			w.Header().Set("X-Subject", cl.Subject)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestJWTMiddleware_AcceptsValidToken(t *testing.T) {
	tok, err := NewToken("secret", "careerchat", "web", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	protected(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "web", rec.Header().Get("X-Subject"))
}

func TestJWTMiddleware_Rejects(t *testing.T) {
	bad, _ := NewToken("other", "careerchat", "web", time.Minute)

	for name, header := range map[string]string{
		"missing":   "",
		"no bearer": "Token abc",
		"bad sig":   "Bearer " + bad,
		"garbage":   "Bearer not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			protected(t).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
