package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(url string) *Client {
	return New(url, zap.NewNop().Sugar())
}

func TestCall_SendsJSONAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var m map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		assert.Equal(t, "Anna", m["name"])
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"name":"Anna"}`))
	}))
	defer ts.Close()

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	err := newTestClient(ts.URL).Post(context.Background(), EndpointUsers, map[string]string{"name": "Anna"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 7, out.ID)
	assert.Equal(t, "Anna", out.Name)
}

func TestCall_GetHasNoContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	var out []struct{}
	require.NoError(t, newTestClient(ts.URL).Get(context.Background(), EndpointEquipment, &out))
}

func TestCall_Non2xxBecomesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Equipment not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).Delete(context.Background(), EndpointEquipment, map[string]int{"id": 99}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, EndpointEquipment, apiErr.Endpoint)
	assert.Contains(t, apiErr.Body, "Equipment not found")
	assert.Contains(t, apiErr.Error(), "404")
}

func TestCall_TransportFailureHasStatusZero(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // immediately: every request now fails at transport level

	err := newTestClient(ts.URL).Get(context.Background(), EndpointHistory, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, EndpointHistory, apiErr.Endpoint)
	assert.Error(t, apiErr.Unwrap())
	assert.Contains(t, apiErr.Error(), "Network error")
}

func TestCall_TruncatedBodyHasStatusZero(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Content-Length promises more than is written: the client's body
		// read fails mid-stream, not at unmarshal time.
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte(`[{"id":1`))
	}))
	defer ts.Close()

	var out []struct{}
	err := newTestClient(ts.URL).Get(context.Background(), EndpointUsers, &out)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Error(t, apiErr.Unwrap())
	assert.Contains(t, apiErr.Error(), "read response")
}

func TestCall_MarshalErrorHasStatusZero(t *testing.T) {
	err := newTestClient("http://example.invalid").Post(context.Background(), EndpointUsers, map[string]any{"c": make(chan int)}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
}
