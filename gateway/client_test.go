package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtatkal/backend/analysis"
	"github.com/jobtatkal/backend/config"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(&config.Config{
		AIGatewayURL:       url,
		AIGatewayAPIKey:    "test-key",
		AIModel:            "test-model",
		HTTPTimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return c
}

func TestCompleteSendsTwoMessagesAndExtractsContent(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"objectives\":[\"A\",\"B\",\"C\"]}"}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	content, err := client.Complete(context.Background(), "system prompt", "user prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"objectives":["A","B","C"]}`, content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "system prompt", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "user prompt", gotReq.Messages[1].Content)
}

func TestCompleteStatusCodeMapping(t *testing.T) {
	tests := []struct {
		status int
		want   analysis.ErrorKind
	}{
		{http.StatusTooManyRequests, analysis.KindRateLimited},
		{http.StatusPaymentRequired, analysis.KindQuotaExhausted},
		{http.StatusInternalServerError, analysis.KindTransport},
		{http.StatusBadGateway, analysis.KindTransport},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			_, err := client.Complete(context.Background(), "s", "u")

			require.Error(t, err)
			assert.Equal(t, tt.want, analysis.KindOf(err))
		})
	}
}

func TestCompleteMalformedEnvelopeIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Complete(context.Background(), "s", "u")

	require.Error(t, err)
	assert.Equal(t, analysis.KindTransport, analysis.KindOf(err))
}

func TestCompleteMissingChoicesIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Complete(context.Background(), "s", "u")

	require.Error(t, err)
	assert.Equal(t, analysis.KindTransport, analysis.KindOf(err))
}

func TestCompleteNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(t, srv.URL)
	_, err := client.Complete(context.Background(), "s", "u")

	require.Error(t, err)
	assert.Equal(t, analysis.KindTransport, analysis.KindOf(err))
}

func TestNewClientRequiresConfig(t *testing.T) {
	_, err := NewClient(&config.Config{AIGatewayAPIKey: "k"})
	assert.Error(t, err)

	_, err = NewClient(&config.Config{AIGatewayURL: "http://localhost"})
	assert.Error(t, err)
}
