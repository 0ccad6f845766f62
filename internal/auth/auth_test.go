package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storex/internal/httpx"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

func newProviderServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.URL.Path != "/v1/sessions/verify" || r.Header.Get("Authorization") != "Bearer sk_test" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body.Token {
		case "user-token":
			_, _ = w.Write([]byte(`{"user_id":"user_1","session_id":"sess_1","public_metadata":{}}`))
		case "admin-token":
			_, _ = w.Write([]byte(`{"user_id":"admin_1","session_id":"sess_2","public_metadata":{"role":"admin"}}`))
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProviderClient_Verify(t *testing.T) {
	var calls int32
	srv := newProviderServer(t, &calls)
	pc := NewProviderClient(srv.URL, "sk_test")

	p, err := pc.Verify(context.Background(), "admin-token")
	require.NoError(t, err)
	assert.Equal(t, &Principal{UserID: "admin_1", SessionID: "sess_2", Role: "admin"}, p)

	_, err = pc.Verify(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = pc.Verify(context.Background(), "boom")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidSession))
}

func TestCachedVerifier_HitsProviderOnce(t *testing.T) {
	var calls int32
	srv := newProviderServer(t, &calls)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	v := NewCachedVerifier(NewProviderClient(srv.URL, "sk_test"), rdb, time.Minute)

	for i := 0; i < 3; i++ {
		p, err := v.Verify(context.Background(), "user-token")
		require.NoError(t, err)
		assert.Equal(t, "user_1", p.UserID)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.True(t, mr.Exists(cacheKey("user-token")))

	mr.FastForward(2 * time.Minute)
	_, err := v.Verify(context.Background(), "user-token")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCachedVerifier_DoesNotCacheRejections(t *testing.T) {
	var calls int32
	srv := newProviderServer(t, &calls)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	v := NewCachedVerifier(NewProviderClient(srv.URL, "sk_test"), rdb, time.Minute)

	_, err := v.Verify(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.False(t, mr.Exists(cacheKey("nope")))
}

func TestCachedVerifier_RedisDownFallsThrough(t *testing.T) {
	var calls int32
	srv := newProviderServer(t, &calls)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	v := NewCachedVerifier(NewProviderClient(srv.URL, "sk_test"), rdb, time.Minute)
	p, err := v.Verify(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, "user_1", p.UserID)
}

func gatedRouter(v Verifier, reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(httpx.ErrorHandler())
	r.POST("/admin", RequireAuth(v), RequireAdmin("admin"), func(c *gin.Context) {
		*reached = true
		c.Status(http.StatusCreated)
	})
	r.GET("/me", RequireAuth(v), func(c *gin.Context) {
		*reached = true
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, p)
	})
	return r
}

func staticVerifier() Verifier {
	return VerifierFunc(func(_ context.Context, token string) (*Principal, error) {
		switch token {
		case "user-token":
			return &Principal{UserID: "user_1"}, nil
		case "admin-token":
			return &Principal{UserID: "admin_1", Role: "admin"}, nil
		}
		return nil, ErrInvalidSession
	})
}

func TestGates(t *testing.T) {
	cases := []struct {
		name    string
		method  string
		path    string
		header  string
		cookie  string
		want    int
		reached bool
	}{
		{"no token", http.MethodPost, "/admin", "", "", http.StatusUnauthorized, false},
		{"bad token", http.MethodPost, "/admin", "Bearer nope", "", http.StatusUnauthorized, false},
		{"not admin", http.MethodPost, "/admin", "Bearer user-token", "", http.StatusForbidden, false},
		{"admin", http.MethodPost, "/admin", "Bearer admin-token", "", http.StatusCreated, true},
		{"cookie session", http.MethodGet, "/me", "", "user-token", http.StatusOK, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			r := gatedRouter(staticVerifier(), &reached)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "__session", Value: tc.cookie})
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.Equal(t, tc.reached, reached)
		})
	}
}
