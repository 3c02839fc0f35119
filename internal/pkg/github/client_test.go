package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token", "tranvq/shift-data", "data/shifts.csv", "main")
	require.NoError(t, err)
	client.baseURL = server.URL
	client.httpClient = server.Client()
	return client
}

func TestNewClientRejectsBareRepoName(t *testing.T) {
	_, err := NewClient("token", "shift-data", "data/shifts.csv", "main")
	assert.Error(t, err)
}

func TestFetchDecodesContentAndSHA(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/tranvq/shift-data/contents/data/shifts.csv", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))

		json.NewEncoder(w).Encode(map[string]string{
			"content": base64.StdEncoding.EncodeToString([]byte("date,venue\n2024-06-12,M\n")),
			"sha":     "abc123",
		})
	})

	content, sha, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "date,venue\n2024-06-12,M\n", content)
	assert.Equal(t, "abc123", sha)
}

func TestFetchMissingFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, _, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutCarriesSHAAndBranch(t *testing.T) {
	var got putRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.Put(context.Background(), "date,venue\n", "abc123", "chore: log shift via bot")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.SHA)
	assert.Equal(t, "main", got.Branch)
	assert.Equal(t, "chore: log shift via bot", got.Message)

	decoded, err := base64.StdEncoding.DecodeString(got.Content)
	require.NoError(t, err)
	assert.Equal(t, "date,venue\n", string(decoded))
}

func TestPutVersionConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	err := client.Put(context.Background(), "content", "stale", "msg")
	assert.ErrorIs(t, err, ErrVersionConflict)
}
