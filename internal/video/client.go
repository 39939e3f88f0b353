// Package video calls the external listing-video generation endpoint.
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxPhotos is the most photos the generation endpoint accepts per request.
const MaxPhotos = 10

// Request carries the listing data the endpoint turns into a video.
type Request struct {
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Bedrooms      int32    `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	SquareFootage int32    `json:"squareFootage"`
	Photos        []string `json:"photos"`
}

// Response is the endpoint's result payload.
type Response struct {
	Success  bool   `json:"success"`
	VideoURL string `json:"videoUrl"`
	VideoKey string `json:"videoKey"`
	Error    string `json:"error,omitempty"`
}

// Generator produces a video for listing data. Implemented by Client;
// replaced by a fake in service tests.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// UpstreamError is a non-success response from the generation endpoint.
// The upstream body is kept for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("video generation failed with status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	apiURL     string
	httpClient *http.Client
}

func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate posts the listing data and returns the generated video location.
// Any non-2xx or success=false response is an UpstreamError; callers must
// not charge the user in that case.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if len(req.Photos) > MaxPhotos {
		req.Photos = req.Photos[:MaxPhotos]
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("video generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.Success || out.VideoURL == "" {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return &out, nil
}
