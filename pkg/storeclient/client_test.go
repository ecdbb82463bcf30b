package storeclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/pkg/config"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingObserver) ObserveStoreRequest(operation, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, operation+"|"+outcome)
}

func TestClientGetDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`[{"id":"c1","title":"Go"}]`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(config.StoreConfig{BaseURL: srv.URL + "/"}, WithObserver(obs))

	var out []map[string]string
	require.NoError(t, client.Get(context.Background(), "/courses", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Go", out[0]["title"])
	assert.Equal(t, []string{"GET /courses|ok"}, obs.calls)
}

func TestClientPostSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["message"])
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := New(config.StoreConfig{BaseURL: srv.URL})
	var out struct {
		Success bool `json:"success"`
	}
	require.NoError(t, client.Post(context.Background(), "/notifications", map[string]string{"message": "hello"}, &out))
	assert.True(t, out.Success)
}

func TestClientStatusErrorCarriesStoreMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(config.StoreConfig{BaseURL: srv.URL}, WithObserver(obs))
	err := client.Post(context.Background(), "/admin/login", map[string]string{"userId": "a"}, nil)
	require.Error(t, err)

	se, ok := AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "Invalid credentials", se.Message)
	assert.Equal(t, []string{"POST /admin/login|status_error"}, obs.calls)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New(config.StoreConfig{BaseURL: url, Timeout: time.Second})
	err := client.Get(context.Background(), "/applications", &struct{}{})
	require.Error(t, err)
	_, isStatus := AsStatusError(err)
	assert.False(t, isStatus)
}

func TestOperationLabelDropsIDs(t *testing.T) {
	assert.Equal(t, "DELETE /notifications/:id", operationLabel(http.MethodDelete, "/notifications/abc123"))
	assert.Equal(t, "GET /meetlinks/all", operationLabel(http.MethodGet, "/meetlinks/all"))
	assert.Equal(t, "POST /admin/login", operationLabel(http.MethodPost, "/admin/login"))
	assert.Equal(t, "GET /applications", operationLabel(http.MethodGet, "/applications"))
}
