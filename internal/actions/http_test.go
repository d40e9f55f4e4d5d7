package actions_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/validation"
)

func TestHTTP_PostJSONBody(t *testing.T) {
	t.Parallel()

	var gotMethod, gotBody, gotHeader, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Token")
		gotQuery = r.URL.Query().Get("ref")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte("accepted"))
	}))
	defer srv.Close()

	h := newHarness()
	catalog := actions.NewCatalog(actions.Deps{FS: h.fs, HTTP: srv.Client()})
	built, err := catalog.Build("http", actions.ArgsFrom(map[string]interface{}{
		"url":     srv.URL + "/trigger",
		"headers": map[string]interface{}{"X-Token": "secret"},
		"query":   map[string]interface{}{"ref": "main"},
		"body":    map[string]interface{}{"variables": []interface{}{"a"}},
		"output":  "response.txt",
	}))
	require.NoError(t, err)

	require.NoError(t, h.runBuilt(built, "/src"))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "secret", gotHeader)
	assert.Equal(t, "main", gotQuery)
	assert.JSONEq(t, `{"variables":["a"]}`, gotBody)

	saved, err := h.fs.ReadFile("/src/response.txt")
	require.NoError(t, err)
	assert.Equal(t, "accepted", string(saved))
}

func TestHTTP_GetIgnoresBody(t *testing.T) {
	t.Parallel()

	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer srv.Close()

	h := newHarness()
	catalog := actions.NewCatalog(actions.Deps{HTTP: srv.Client()})
	built, err := catalog.Build("http", actions.ArgsFrom(map[string]interface{}{
		"url": srv.URL, "method": "get", "body": "ignored",
	}))
	require.NoError(t, err)

	require.NoError(t, h.runBuilt(built, ""))
	assert.Empty(t, gotBody)
}

func TestHTTP_Non2xxFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	h := newHarness()
	catalog := actions.NewCatalog(actions.Deps{HTTP: srv.Client()})
	built, err := catalog.Build("http", actions.ArgsFrom(map[string]interface{}{"url": srv.URL, "method": "PUT"}))
	require.NoError(t, err)

	err = h.runBuilt(built, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTP_UnsupportedMethod(t *testing.T) {
	t.Parallel()

	_, err := newHarness().catalog.Build("http", actions.ArgsFrom(map[string]interface{}{
		"url": "http://example.invalid", "method": "DELETE",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported HTTP method "DELETE"`)
}

func TestHTTP_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := newHarness().catalog.Build("http", actions.ArgsFrom(map[string]interface{}{
		"url": "ftp://example.com/artifact",
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrInvalidURL)
}
