// Package ml is the HTTP client for the sentiment/stress/face-emotion
// inference service. The service is a black box: text in, labels out.
package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/mindhaven/mindhaven-backend/internal/config"
)

// ErrUnavailable is returned when the inference service cannot be reached
// or responds with a non-2xx status.
var ErrUnavailable = errors.New("ml service unavailable")

// Analysis is the classifier output for one piece of text
type Analysis struct {
	SentimentLabel string  `json:"sentiment_label"`
	StressLabel    string  `json:"stress_label"`
	StressScore    float64 `json:"stress_score"`
	RiskFlag       bool    `json:"risk_flag"`
}

// FaceResult is the face-emotion detection output for one image
type FaceResult struct {
	Emotion string                 `json:"emotion"`
	Scores  map[string]interface{} `json:"scores"`
}

// Client calls the inference service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new inference service client
func NewClient(cfg config.MLServiceConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 40 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Analyze scores free text for sentiment, stress and risk
func (c *Client) Analyze(ctx context.Context, text string) (*Analysis, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var analysis Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}

	return &analysis, nil
}

// DetectFaceEmotion forwards an uploaded face image for emotion detection
func (c *Client) DetectFaceEmotion(ctx context.Context, filename, contentType string, data []byte) (*FaceResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
	header["Content-Type"] = []string{contentType}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/emotion/face", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result FaceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode face result: %w", err)
	}

	return &result, nil
}
