// internal/api/client_test.go
package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmotion/qdm/internal/model/core"
)

func TestNew(t *testing.T) {
	c := New("http://localhost:5000", "secret123")

	require.NotNil(t, c)
	assert.Equal(t, "http://localhost:5000", c.baseURL)
	assert.Equal(t, "secret123", c.apiKey)
	assert.NotNil(t, c.httpClient)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:5000/", "secret")
	assert.Equal(t, "http://localhost:5000", c.baseURL)
}

func TestHealthcheck_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthcheck", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, "")
	assert.NoError(t, c.Healthcheck())
}

func TestHealthcheck_ServerDown(t *testing.T) {
	c := New("http://localhost:59999", "") // unlikely to be listening
	assert.Error(t, c.Healthcheck())
}

func TestHealthcheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, "")
	assert.Error(t, c.Healthcheck())
}

func TestUpload_Success(t *testing.T) {
	var form map[string]string
	var fileContent []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/trials/add", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		require.NoError(t, r.ParseMultipartForm(10<<20))
		form = map[string]string{
			"secret":     r.FormValue("secret"),
			"filename":   r.FormValue("filename"),
			"title":      r.FormValue("title"),
			"sourcePath": r.FormValue("sourcePath"),
			"sampleRate": r.FormValue("sampleRate"),
			"frameCount": r.FormValue("frameCount"),
		}

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		fileContent, err = io.ReadAll(file)
		require.NoError(t, err)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exportPath := filepath.Join(t.TempDir(), "trial01.qdm.json")
	require.NoError(t, os.WriteFile(exportPath, []byte(`{"trial":{}}`), 0644))

	trial := core.Trial{
		SourcePath: "/data/trial01.csv",
		Title:      "Trajectories",
		SampleRate: 100,
		FrameCount: 3,
	}

	c := New(server.URL, "mysecret")
	require.NoError(t, c.Upload(exportPath, trial))

	assert.Equal(t, "mysecret", form["secret"])
	assert.Equal(t, "trial01.qdm.json", form["filename"])
	assert.Equal(t, "Trajectories", form["title"])
	assert.Equal(t, "/data/trial01.csv", form["sourcePath"])
	assert.Equal(t, "100", form["sampleRate"])
	assert.Equal(t, "3", form["frameCount"])
	assert.Equal(t, []byte(`{"trial":{}}`), fileContent)
}

func TestUpload_MissingFile(t *testing.T) {
	c := New("http://localhost:59999", "")
	err := c.Upload(filepath.Join(t.TempDir(), "absent.json"), core.Trial{})
	assert.Error(t, err)
}

func TestUpload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	exportPath := filepath.Join(t.TempDir(), "trial01.qdm.json")
	require.NoError(t, os.WriteFile(exportPath, []byte("{}"), 0644))

	c := New(server.URL, "wrong")
	assert.Error(t, c.Upload(exportPath, core.Trial{}))
}
