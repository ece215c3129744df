package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/itbasis/go-clock"
)

const secret = "middleware-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error: %v", err)
	}
	return token
}

func protected() http.Handler {
	return Authenticate(secret)(RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte(id))
	})))
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.jwt", want: http.StatusUnauthorized},
		{
			name:   "wrong secret",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": "u1", "role": "admin", "exp": future}),
			want:   http.StatusUnauthorized,
		},
		{
			name:   "expired",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "u1", "role": "admin", "exp": past}),
			want:   http.StatusUnauthorized,
		},
		{
			name:   "wrong algorithm",
			header: "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), jwt.MapClaims{"user_id": "u1", "role": "admin", "exp": future}),
			want:   http.StatusUnauthorized,
		},
		{
			name:   "viewer",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "u1", "role": "viewer", "exp": future}),
			want:   http.StatusForbidden,
		},
		{
			name:   "unknown role",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "u1", "role": "root", "exp": future}),
			want:   http.StatusUnauthorized,
		},
		{
			name:   "admin",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "u1", "role": "admin", "exp": future}),
			want:   http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tournaments", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
			if tc.want == http.StatusOK && rec.Body.String() != "u1" {
				t.Errorf("body = %q, want user id", rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(4, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/tournaments", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	// Burst is half the window allowance.
	for i := 0; i < 2; i++ {
		if rec := call("10.0.0.1:5000"); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d status = %d", i+1, rec.Code)
		}
	}
	rec := call("10.0.0.1:5001")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
	if rec := call("10.0.0.2:5000"); rec.Code != http.StatusNoContent {
		t.Errorf("other client status = %d, want 204", rec.Code)
	}
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMock()
	clk.Set(start)
	limiter := newIPLimiter(4, time.Minute, clk)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if !limiter.allow(ip) {
			t.Fatalf("first request from %s was limited", ip)
		}
	}
	if got := limiter.size(); got != 3 {
		t.Fatalf("tracked %d clients, want 3", got)
	}

	clk.Set(start.Add(30 * time.Second))
	limiter.allow("10.0.0.1")
	if got := limiter.size(); got != 3 {
		t.Errorf("tracked %d clients before the idle window passed, want 3", got)
	}

	clk.Set(start.Add(70 * time.Second))
	limiter.allow("10.0.0.4")
	if got := limiter.size(); got != 2 {
		t.Errorf("tracked %d clients after the sweep, want 2 (recent and new)", got)
	}
}
