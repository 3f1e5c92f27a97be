package app

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitop-dev/imagegen"
)

func TestCreateCommand_SavesImages(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nrest"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		var got map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, float64(2), got["n"])
		assert.Equal(t, "a red fox", got["prompt"])
		assert.NotContains(t, got, "size")
		_, _ = io.WriteString(w, `{"created": 1, "data": [{"b64_json": "`+payload+`"}, {"b64_json": "`+payload+`"}]}`)
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", srv.URL)
	out := filepath.Join(t.TempDir(), "images")

	cmd := NewImagegenCommand()
	cmd.SetArgs([]string{"create", "--env-file", filepath.Join(t.TempDir(), "none.env"), "-o", out, "-n", "2", "a", "red", "fox"})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEditCommand_MissingImage(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://127.0.0.1:0")

	cmd := NewImagegenCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"edit", "--env-file", "", filepath.Join(t.TempDir(), "missing.png"), "make", "it", "blue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, imagegen.IsImageRead(err))
	assert.Contains(t, err.Error(), "failed to read image")
}

func TestNewClient_RequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := newClient(&GlobalOptions{}, nil)
	assert.EqualError(t, err, "OPENAI_API_KEY is required")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err    error
		prefix string
	}{
		{&imagegen.TransportError{Cause: errors.New("refused")}, "could not reach the API: refused"},
		{&imagegen.APIError{Type: "t", Message: "m", StatusCode: 400}, "the API rejected the request (status 400): t: m"},
		{&imagegen.DecodeError{Message: "bad"}, "unexpected API response: bad"},
		{&imagegen.ImageSaveError{Message: "full"}, "failed to save image: full"},
		{&imagegen.ImageReadError{Message: "gone"}, "failed to read image: gone"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		assert.EqualError(t, describe(tt.err), tt.prefix)
	}
}
