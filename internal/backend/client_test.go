package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"navtree/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/menus/menu-1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(model.Menu{ID: "menu-1", Name: "Main", Items: []model.MenuItem{{ID: "a", Title: "A"}}})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/v1/", "secret")
	require.NoError(t, err)
	m, err := c.FetchMenu(context.Background(), "menu-1")
	require.NoError(t, err)
	assert.Equal(t, "Main", m.Name)
	require.Len(t, m.Items, 1)
}

func TestSaveMenu_EnvelopeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in model.Menu
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.Name = in.Name + " (saved)"
		_ = json.NewEncoder(w).Encode(map[string]any{"data": in})
	}))
	defer srv.Close()

	c, err := New(srv.URL, "")
	require.NoError(t, err)
	out, err := c.SaveMenu(context.Background(), model.Menu{ID: "m", Name: "Main"})
	require.NoError(t, err)
	assert.Equal(t, "Main (saved)", out.Name)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"menu not found"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "")
	require.NoError(t, err)
	_, err = c.FetchMenu(context.Background(), "x")
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "menu not found", ae.Message)
	assert.True(t, IsNotFound(err))
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New("  ", "")
	assert.Error(t, err)
	_, err = New("not a url", "")
	assert.Error(t, err)
}
