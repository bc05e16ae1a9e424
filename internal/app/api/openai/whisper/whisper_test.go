package whisper

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/app/api/openai"
	"youtube-whisper/internal/config"
)

type capturedRequest struct {
	path     string
	auth     string
	model    string
	language string
	file     string
}

func newTestServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")

		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err == nil {
			reader := multipart.NewReader(r.Body, params["boundary"])
			for {
				part, err := reader.NextPart()
				if err != nil {
					break
				}
				data, _ := io.ReadAll(part)
				switch part.FormName() {
				case "model":
					captured.model = string(data)
				case "language":
					captured.language = string(data)
				case "file":
					captured.file = part.FileName()
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Sample_Title.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 fake audio"), 0o644))
	return path
}

func TestRemoteTranscriber_Transcript(t *testing.T) {
	tests := []struct {
		name         string
		language     string
		status       int
		body         string
		want         string
		wantErr      string
		wantLanguage string
	}{
		{
			name:   "auto language",
			status: http.StatusOK,
			body:   `{"text": "hello world"}`,
			want:   "hello world",
		},
		{
			name:         "pinned language",
			language:     "tr",
			status:       http.StatusOK,
			body:         `{"text": "merhaba dünya"}`,
			want:         "merhaba dünya",
			wantLanguage: "tr",
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			wantErr: "401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured capturedRequest
			server := newTestServer(t, tt.status, tt.body, &captured)
			defer server.Close()

			client := openai.NewClient("test-key", server.URL+"/v1")
			rt := NewRemoteTranscriber(client, tt.language, zap.NewNop())

			got, err := rt.Transcript(context.Background(), writeAudio(t))
			assert.Equal(t, "/v1/audio/transcriptions", captured.path)
			assert.Equal(t, "Bearer test-key", captured.auth)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "whisper-1", captured.model)
			assert.Equal(t, tt.wantLanguage, captured.language)
			assert.Equal(t, "Sample_Title.mp3", captured.file)
		})
	}
}

func TestRemoteTranscriber_MissingFile(t *testing.T) {
	rt := NewRemoteTranscriber(openai.NewClient("k", "http://127.0.0.1:1/v1"), "", zap.NewNop())
	_, err := rt.Transcript(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestProviderRegistered(t *testing.T) {
	assert.Contains(t, api.ListRegisteredProviders(), "openai")

	tr, err := createOpenAIProvider(config.Transcriber{
		Provider:  "openai",
		Model:     "large",
		Language:  "auto",
		OpenAIKey: "k",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, tr.(*RemoteTranscriber).language)
}
