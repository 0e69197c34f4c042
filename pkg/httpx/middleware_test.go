package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/habits/pkg/httpx"
	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "habits-test"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier := jwtx.NewCommonHS256([]byte(testSecret), testIssuer)

	var seen jwtx.Claims
	protected := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.UserIDFromContext(r.Context())
		require.True(t, ok)
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, claims.UserID, id)
		seen = claims
		w.WriteHeader(http.StatusNoContent)
	}), httpx.AuthnMiddleware(verifier))

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token round-trips its claims", func(t *testing.T) {
		claims := jwtx.NewUserClaims(42, "alice", "alice@example.com", testIssuer, time.Hour, time.Now().Add(-time.Second))
		token, err := signer.Sign(claims)
		require.NoError(t, err)

		rec := call("Bearer " + token)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, claims, seen)
	})

	t.Run("rejections carry a bearer challenge and JSON body", func(t *testing.T) {
		expired, err := signer.Sign(jwtx.NewUserClaims(1, "a", "a@example.com", testIssuer, time.Minute, time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		otherSigner, err := jwtx.NewSignerHS256([]byte(strings.Repeat("x", 32)))
		require.NoError(t, err)
		forged, err := otherSigner.Sign(jwtx.NewUserClaims(1, "a", "a@example.com", testIssuer, time.Hour, time.Now()))
		require.NoError(t, err)

		for name, header := range map[string]string{
			"missing":    "",
			"not bearer": "Basic abc",
			"empty":      "Bearer ",
			"garbage":    "Bearer not.a.jwt",
			"expired":    "Bearer " + expired,
			"forged":     "Bearer " + forged,
		} {
			t.Run(name, func(t *testing.T) {
				rec := call(header)
				require.Equal(t, http.StatusUnauthorized, rec.Code)
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer error=")

				var body httpx.ErrorBody
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				require.Equal(t, "unauthorized", body.Error)
			})
		}
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("preflight from allowed origin", func(t *testing.T) {
		h := httpx.CORS([]string{"https://app.example"})(next)
		req := httptest.NewRequest(http.MethodOptions, "/api/habits", nil)
		req.Header.Set("Origin", "https://app.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		h := httpx.CORS([]string{"https://app.example"})(next)
		req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard", func(t *testing.T) {
		h := httpx.CORS(httpx.SplitOrigins(" * "))(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSplitOrigins(t *testing.T) {
	require.Equal(t, []string{"https://a.example", "http://b.example"},
		httpx.SplitOrigins("https://a.example/, http://b.example ,"))
	require.Nil(t, httpx.SplitOrigins(""))
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := httpx.NewMetrics(reg)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	mux.Handle("GET /metrics", m.Handler())
	h := httpx.Chain(mux, m.Middleware())

	for _, path := range []string{"/items/1", "/items/2", "/nowhere"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP habits_http_requests_total HTTP requests by method, route pattern and status code.
# TYPE habits_http_requests_total counter
habits_http_requests_total{method="GET",route="GET /items/{id}",status="418"} 2
habits_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "habits_http_requests_total"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "habits_http_request_duration_seconds")
}
