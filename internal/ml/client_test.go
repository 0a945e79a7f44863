package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mindhaven/mindhaven-backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.MLServiceConfig{BaseURL: baseURL, TimeoutSeconds: 5})
}

func TestAnalyze_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "I feel overwhelmed", req["text"])

		json.NewEncoder(w).Encode(Analysis{
			SentimentLabel: "negative",
			StressLabel:    "stressed",
			StressScore:    0.82,
			RiskFlag:       false,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	analysis, err := client.Analyze(context.Background(), "I feel overwhelmed")
	require.NoError(t, err)
	assert.Equal(t, "negative", analysis.SentimentLabel)
	assert.Equal(t, "stressed", analysis.StressLabel)
	assert.Equal(t, 0.82, analysis.StressScore)
	assert.False(t, analysis.RiskFlag)
}

func TestAnalyze_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Analyze(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAnalyze_ConnectionRefusedIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)

	_, err := client.Analyze(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDetectFaceEmotion_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/emotion/face", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "face.jpg", header.Filename)

		json.NewEncoder(w).Encode(FaceResult{
			Emotion: "happy",
			Scores:  map[string]interface{}{"happy": 0.9, "sad": 0.1},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.DetectFaceEmotion(context.Background(), "face.jpg", "image/jpeg", []byte("fake-image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "happy", result.Emotion)
	assert.Equal(t, 0.9, result.Scores["happy"])
}

func TestDetectFaceEmotion_BadStatusIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.DetectFaceEmotion(context.Background(), "face.jpg", "image/jpeg", []byte("x"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
