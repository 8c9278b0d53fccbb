package keys

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"codeberg.org/sbomhub/server/internal/auth"
	apierrors "codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/kong"
	"codeberg.org/sbomhub/server/sbomhub/keys"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testEmail = "ada.lovelace@example.com"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // test server
}

// answers the consumer lookup every key operation starts with; other paths
// go to next
func ownedBy(customID string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/consumers/ada_lovelace" {
			writeJSON(w, http.StatusOK, kong.Consumer{
				ID:       "c1",
				Username: "ada_lovelace",
				CustomID: customID,
				Tags:     []string{"free"},
			})
			return
		}
		next(w, r)
	}
}

type harness struct {
	router *gin.Engine
	token  string
	calls  atomic.Int32
}

func newHarness(t *testing.T, gateway http.HandlerFunc) *harness {
	t.Helper()

	h := &harness{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.calls.Add(1)
		gateway(w, r)
	}))
	t.Cleanup(server.Close)

	client := kong.New(kong.Config{
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
	})

	codec, err := auth.NewCodec("test-secret-key-for-testing", time.Hour)
	require.NoError(t, err)

	h.token, err = codec.Issue(auth.Identity{UserID: "123", Email: testEmail, Name: "Ada"})
	require.NoError(t, err)

	h.router = gin.New()
	RegisterRoutes(h.router.Group("/api"), keys.NewService(client), codec)

	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+h.token)

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestListKeys(t *testing.T) {
	h := newHarness(t, ownedBy(testEmail, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/consumers/c1/key-auth", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []kong.Key{
				{ID: "k1", Key: "secret-one", Consumer: &kong.ConsumerRef{ID: "c1"}},
				{ID: "k2", Key: "secret-two"},
			},
		})
	}))

	w := h.do(http.MethodGet, "/api/keys", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body ListKeysResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "c1", body.Keys[0].ConsumerID)
	assert.Equal(t, "k2", body.Keys[1].ID)
}

func TestCreateKey(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantKey string
	}{
		{name: "generated", body: "", wantKey: ""},
		{name: "custom", body: `{"key":"my-custom-key-value"}`, wantKey: "my-custom-key-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, ownedBy(testEmail, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/consumers/c1/key-auth", r.URL.Path)

				var req map[string]string
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, tt.wantKey, req["key"])

				writeJSON(w, http.StatusCreated, kong.Key{ID: "k1", Key: "generated-or-custom"})
			}))

			w := h.do(http.MethodPost, "/api/keys", tt.body)
			require.Equal(t, http.StatusCreated, w.Code)

			var key keys.APIKey
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &key))
			assert.Equal(t, "k1", key.ID)
		})
	}
}

func TestCreateKey_RejectsShortKey(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway must not be called")
	})

	w := h.do(http.MethodPost, "/api/keys", `{"key":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(0), h.calls.Load())
}

func TestRevokeKey(t *testing.T) {
	h := newHarness(t, ownedBy(testEmail, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/consumers/c1/key-auth/k1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	w := h.do(http.MethodDelete, "/api/keys/k1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGatewayErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode int
		wantErr  string
		wantHits int32
	}{
		{name: "bad request", status: http.StatusBadRequest, wantCode: http.StatusBadRequest, wantErr: apierrors.CodeBadRequest, wantHits: 2},
		{name: "not found", status: http.StatusNotFound, wantCode: http.StatusNotFound, wantErr: apierrors.CodeNotFound, wantHits: 2},
		{name: "conflict", status: http.StatusConflict, wantCode: http.StatusConflict, wantErr: apierrors.CodeConflict, wantHits: 2},
		{name: "gateway credentials rejected", status: http.StatusUnauthorized, wantCode: http.StatusBadGateway, wantErr: apierrors.CodeBadGateway, wantHits: 2},
		{name: "gateway throttled", status: http.StatusTooManyRequests, wantCode: http.StatusBadGateway, wantErr: apierrors.CodeBadGateway, wantHits: 2},
		{name: "server error", status: http.StatusInternalServerError, wantCode: http.StatusBadGateway, wantErr: apierrors.CodeBadGateway, wantHits: 2},
		{name: "unavailable retried", status: http.StatusServiceUnavailable, wantCode: http.StatusBadGateway, wantErr: apierrors.CodeBadGateway, wantHits: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, ownedBy(testEmail, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"message": "nope"})
			}))

			w := h.do(http.MethodPost, "/api/keys", "")
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantHits, h.calls.Load())

			var body apierrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, body.Error)
		})
	}
}

func TestConsumer(t *testing.T) {
	h := newHarness(t, ownedBy(testEmail, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/consumers/c1/key-auth":
			writeJSON(w, http.StatusOK, map[string]any{"data": []kong.Key{{ID: "k1", Key: "secret-one"}}})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		}
	}))

	w := h.do(http.MethodGet, "/api/consumer", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info keys.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "c1", info.Consumer.ID)
	assert.Equal(t, testEmail, info.Consumer.CustomID)
	assert.Equal(t, []string{"free"}, info.Consumer.Tags)
	assert.Equal(t, 1, info.KeyCount)
}

func TestConsumer_NotProvisioned(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	})

	w := h.do(http.MethodGet, "/api/consumer", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKeys_ConsumerOfAnotherAccount(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "list", method: http.MethodGet, path: "/api/keys"},
		{name: "create", method: http.MethodPost, path: "/api/keys"},
		{name: "revoke", method: http.MethodDelete, path: "/api/keys/k1"},
		{name: "consumer", method: http.MethodGet, path: "/api/consumer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// same local part, different domain
			h := newHarness(t, ownedBy("ada.lovelace@other.org", func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected gateway call %s %s", r.Method, r.URL.Path)
				w.WriteHeader(http.StatusInternalServerError)
			}))

			w := h.do(tt.method, tt.path, "")
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, int32(1), h.calls.Load())

			var body apierrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, apierrors.CodeForbidden, body.Error)
			assert.NotContains(t, w.Body.String(), "other.org")
		})
	}
}

func TestKeys_RequireBearer(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway must not be called")
	})
	h.token = "not-a-token"

	w := h.do(http.MethodGet, "/api/keys", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
