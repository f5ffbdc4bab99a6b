package driver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rss-firehose/config"
	"rss-firehose/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func testSummaryConfig(endpoint string) config.SummaryConfig {
	return config.SummaryConfig{
		APIKey:      "test-key",
		Endpoint:    endpoint,
		Model:       "test-model",
		Temperature: 0.7,
		MaxTokens:   500,
		TopP:        0.9,
	}
}

func TestComplete_Success(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"a fine summary"}}]}`))
	}))
	defer srv.Close()

	client := NewChatCompletionClient(testSummaryConfig(srv.URL), 5*time.Second, testLogger())

	text, err := client.Complete(context.Background(), "be brief", "summarize this")
	require.NoError(t, err)

	assert.Equal(t, "a fine summary", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, 0.7, gotReq.Temperature)
	assert.Equal(t, 500, gotReq.MaxTokens)
	assert.Equal(t, 0.9, gotReq.TopP)
}

func TestComplete_MissingCredential(t *testing.T) {
	cfg := testSummaryConfig("http://unused.invalid")
	cfg.APIKey = ""
	client := NewChatCompletionClient(cfg, 5*time.Second, testLogger())

	_, err := client.Complete(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, domain.ErrBackendNotConfigured)
}

func TestComplete_FailureModes(t *testing.T) {
	tests := map[string]struct {
		handler http.HandlerFunc
		wantErr error
	}{
		"no choices": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
			wantErr: domain.ErrNoCompletionChoice,
		},
		"empty content": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
			},
			wantErr: domain.ErrNoCompletionChoice,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			client := NewChatCompletionClient(testSummaryConfig(srv.URL), 5*time.Second, testLogger())

			_, err := client.Complete(context.Background(), "sys", "user")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestComplete_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewChatCompletionClient(testSummaryConfig(srv.URL), 5*time.Second, testLogger())

	_, err := client.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestComplete_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // already closed: connection refused

	client := NewChatCompletionClient(testSummaryConfig(srv.URL), 1*time.Second, testLogger())

	_, err := client.Complete(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}
