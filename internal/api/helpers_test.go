package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storex/internal/auth"
	"github.com/MikeMC777/storex/internal/money"
	"github.com/MikeMC777/storex/internal/product"
	"github.com/MikeMC777/storex/internal/storage"
	"github.com/MikeMC777/storex/internal/telemetry"
)

const (
	adminToken = "tok-admin"
	aliceToken = "tok-alice"
	bobToken   = "tok-bob"
	adminRole  = "admin"
)

func stubVerifier() auth.Verifier {
	return auth.VerifierFunc(func(_ context.Context, token string) (*auth.Principal, error) {
		switch token {
		case adminToken:
			return &auth.Principal{UserID: "user_admin", SessionID: "s0", Role: adminRole}, nil
		case aliceToken:
			return &auth.Principal{UserID: "user_alice", SessionID: "s1"}, nil
		case bobToken:
			return &auth.Principal{UserID: "user_bob", SessionID: "s2"}, nil
		}
		return nil, auth.ErrInvalidSession
	})
}

func newTestRouter(t *testing.T) (*gin.Engine, *storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	return newTestRouterWith(t, store), store
}

func newTestRouterWith(t *testing.T, store *storage.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	r := NewRouter(Deps{
		Store:      store,
		Verifier:   stubVerifier(),
		AdminRole:  adminRole,
		CORSOrigin: "http://localhost:5173",
		Metrics:    telemetry.NewMetrics("test", reg),
		Gatherer:   reg,
	})
	return r
}

func do(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[struct {
		Error string `json:"error"`
	}](t, w).Error
}

func seedProduct(t *testing.T, store *storage.Store, id, name, price string, stock int) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, store.Products.Create(context.Background(), &product.Product{
		ID:        id,
		Name:      name,
		Price:     money.MustParse(price),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}
