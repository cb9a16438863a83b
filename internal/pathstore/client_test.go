package pathstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "k")
	c.backoff = func(int) time.Duration { return time.Millisecond }
	return c
}

func TestBackoff_Bounds(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := Backoff(attempt)
		assert.GreaterOrEqual(t, d, 250*time.Millisecond)
		assert.Less(t, d, 7500*time.Millisecond)
	}
}

func TestGetNode_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Node{Key: "a/b", Value: json.RawMessage(`{"x":1}`)})
	})

	node, err := c.GetNode(t.Context(), "a/b")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.JSONEq(t, `{"x":1}`, string(node.Value))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetNode_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetNode(t.Context(), "a/b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(MaxRetries+1), calls.Load())
}

func TestPutNode_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad value", http.StatusBadRequest)
	})

	err := c.PutNode(t.Context(), "a/b", NodeRequest{Value: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad value")
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeleteNode_Missing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	ok, err := c.DeleteNode(t.Context(), "a/b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListChildren(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kv/a/*", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"nodes":[{"key_path":"a/1","value":"x"},{"key_path":"a/2","value":"y"}]}`))
	})

	nodes, err := c.ListChildren(t.Context(), "a", 5)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a/2", nodes[1].Key)
}
