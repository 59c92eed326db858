package upload

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gitrecap/gitrecap/internal/contract"
	"github.com/gitrecap/gitrecap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var gotMethod, gotPath string
	var gotPayload schema.UploadPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(schema.UploadResponse{
			Success:    true,
			PreviewURL: "https://recap.dev/r/abc123",
		})
	}))
	defer server.Close()

	client, err := NewClient(&contract.Config{ServerURL: server.URL})
	require.NoError(t, err)

	payload := &schema.UploadPayload{
		Key:  "secret-key",
		Year: 2024,
		Data: &schema.Report{TotalCommits: 42},
	}
	resp, err := client.Send(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/report", gotPath)
	assert.Equal(t, "secret-key", gotPayload.Key)
	assert.Equal(t, 2024, gotPayload.Year)
	assert.Equal(t, 42, gotPayload.Data.TotalCommits)

	assert.True(t, resp.Success)
	assert.Equal(t, "https://recap.dev/r/abc123", resp.PreviewURL)
}

func TestClientSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(schema.UploadResponse{
			Success: false,
			Error:   "invalid key",
		})
	}))
	defer server.Close()

	client, err := NewClient(&contract.Config{ServerURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), &schema.UploadPayload{Key: "bad", Year: 2024})
	require.NoError(t, err)

	// The server-side rejection is the caller's to interpret
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid key", resp.Error)
}

func TestClientSendServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client, err := NewClient(&contract.Config{ServerURL: serverURL})
	require.NoError(t, err)

	_, err = client.Send(context.Background(), &schema.UploadPayload{Key: "k", Year: 2024})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recap service request failed")
}
