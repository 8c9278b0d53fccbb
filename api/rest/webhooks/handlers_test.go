package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apierrors "codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/payments"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "whsec_test_secret"

var payload = []byte(`{"id":"evt_1","type":"customer.subscription.created","created":1700000000,"data":{"object":{"id":"sub_1"}}}`)

type recordingDispatcher struct {
	events []*payments.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event *payments.Event) error {
	d.events = append(d.events, event)
	return d.err
}

func sign(body []byte, secret string, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   body,
		Secret:    secret,
		Timestamp: at,
	}).Header
}

func newRouter(secret string, dispatcher payments.Dispatcher) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router, &Dependencies{
		Verifier:   payments.NewVerifier(secret, 5*time.Minute),
		Dispatcher: dispatcher,
	})
	return router
}

func post(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(payments.SignatureHeader, signature)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_Success(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	router := newRouter(testSecret, dispatcher)

	w := post(router, payload, sign(payload, testSecret, time.Now()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "customer.subscription.created", dispatcher.events[0].Type)
}

func TestWebhook_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		wantCode  int
	}{
		{name: "not configured", secret: "", body: payload, signature: "t=1,v1=00", wantCode: http.StatusInternalServerError},
		{name: "missing signature", secret: testSecret, body: payload, signature: "", wantCode: http.StatusBadRequest},
		{name: "invalid json", secret: testSecret, body: []byte("{nope"), signature: sign([]byte("{nope"), testSecret, time.Now()), wantCode: http.StatusBadRequest},
		{name: "bad signature", secret: testSecret, body: payload, signature: sign(payload, "whsec_other", time.Now()), wantCode: http.StatusBadRequest},
		{name: "stale signature", secret: testSecret, body: payload, signature: sign(payload, testSecret, time.Now().Add(-time.Hour)), wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &recordingDispatcher{}
			router := newRouter(tt.secret, dispatcher)

			w := post(router, tt.body, tt.signature)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Empty(t, dispatcher.events)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestWebhook_PayloadTooLarge(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	router := newRouter(testSecret, dispatcher)

	// valid json one byte over the limit
	body := jsonPadding(maxPayloadBytes + 1)

	w := post(router, body, sign(body, testSecret, time.Now()))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, dispatcher.events)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.CodePayloadTooLarge, resp.Error)
}

func TestWebhook_PayloadAtLimit(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	router := newRouter(testSecret, dispatcher)

	// read in full, then rejected for not being an event object
	body := jsonPadding(maxPayloadBytes)

	w := post(router, body, sign(body, testSecret, time.Now()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid event payload")
	assert.Empty(t, dispatcher.events)
}

// a json array holding one string, n bytes long in total
func jsonPadding(n int) []byte {
	body := make([]byte, 0, n)
	body = append(body, '[', '"')
	body = append(body, bytes.Repeat([]byte("a"), n-4)...)
	return append(body, '"', ']')
}

func TestWebhook_DispatchFailure(t *testing.T) {
	dispatcher := &recordingDispatcher{err: errors.New("billing store unavailable")}
	router := newRouter(testSecret, dispatcher)

	w := post(router, payload, sign(payload, testSecret, time.Now()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, dispatcher.events, 1)
}

func TestWebhookTest(t *testing.T) {
	for _, secret := range []string{"", testSecret} {
		router := newRouter(secret, payments.LogDispatcher{})

		req := httptest.NewRequest(http.MethodGet, "/stripe/webhook/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body TestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, secret != "", body.WebhookSecretConfigured)
		assert.Equal(t, "/stripe/webhook", body.Endpoint)
	}
}
