package jsonapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
)

func TestDoSendsAuthHeaderAndBody(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-API-KEY")
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`{"deviceId": 42}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "X-API-KEY", "secret")
	resp, err := c.Do(context.Background(), "create", http.MethodPost, "/devices/", map[string]any{"hostname": "x"})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"hostname": "x"}, gotBody)
	assert.Equal(t, map[string]any{"deviceId": float64(42)}, resp)
}

func TestDoNoBodyOmitsContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "api_key", "k")
	resp, err := c.Do(context.Background(), "read", http.MethodGet, "/x", nil)
	require.NoError(t, err)
	assert.Empty(t, gotContentType)
	assert.Equal(t, []any{}, resp)
}

func TestDoNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "bad key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "X-API-KEY", "wrong")
	_, err := c.Do(context.Background(), "create", http.MethodPost, "/devices/", map[string]any{})
	require.Error(t, err)

	var te *deployer.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusUnauthorized, te.StatusCode)
	assert.Equal(t, "create", te.Op)
	assert.Contains(t, te.Error(), "bad key")
}

func TestDoUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "X-API-KEY", "k")
	_, err := c.Do(context.Background(), "read", http.MethodGet, "/x", nil)

	var te *deployer.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "decode response")
}

func TestDoEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "X-API-KEY", "k")
	resp, err := c.Do(context.Background(), "read", http.MethodGet, "/x", nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestDoConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "X-API-KEY", "k")
	_, err := c.Do(context.Background(), "read", http.MethodGet, "/x", nil)

	var te *deployer.TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
}

func TestDoDiscardIgnoresBody(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`this body is not json and must not matter`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "X-API-KEY", "k")
	err := c.DoDiscard(context.Background(), "delete", http.MethodDelete, "/devices/42")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/devices/42", gotPath)
}

func TestDoDiscardNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "X-API-KEY", "k")
	err := c.DoDiscard(context.Background(), "delete", http.MethodDelete, "/devices/42")

	var te *deployer.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
}
