package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Berlin", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"52.52","lon":"13.405"}]`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	lat, lng, found := c.Lookup(context.Background(), "Berlin")
	assert.True(t, found)
	assert.InDelta(t, 52.52, lat, 0.001)
	assert.InDelta(t, 13.405, lng, 0.001)
}

func TestClient_LookupNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	_, _, found := c.Lookup(context.Background(), "nowhere at all")
	assert.False(t, found)
}

func TestClient_LookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	_, _, found := c.Lookup(context.Background(), "Berlin")
	assert.False(t, found)
}

func TestClient_LookupEmptyInputs(t *testing.T) {
	c := New("", time.Second, nil)
	_, _, found := c.Lookup(context.Background(), "Berlin")
	assert.False(t, found)

	c = New("http://localhost:1", time.Second, nil)
	_, _, found = c.Lookup(context.Background(), "")
	assert.False(t, found)
}
