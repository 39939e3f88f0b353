package video

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req Request
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			json.NewEncoder(w).Encode(Response{Success: true, VideoURL: "https://cdn.test/v.mp4", VideoKey: "v.mp4"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		resp, err := client.Generate(ctx, Request{Description: "cozy loft", Price: 1200})
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.test/v.mp4", resp.VideoURL)
	})

	t.Run("TruncatesPhotos", func(t *testing.T) {
		var got Request
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(Response{Success: true, VideoURL: "u", VideoKey: "k"})
		}))
		defer srv.Close()

		photos := make([]string, 15)
		for i := range photos {
			photos[i] = "p.jpg"
		}
		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Generate(ctx, Request{Photos: photos})
		assert.NoError(t, err)
		assert.Len(t, got.Photos, MaxPhotos)
	})

	t.Run("Non2xxIsUpstreamError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "generation backlog", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Generate(ctx, Request{})
		var upstreamErr *UpstreamError
		assert.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
	})

	t.Run("SuccessFalseIsUpstreamError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(Response{Success: false, Error: "no photos"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Generate(ctx, Request{})
		var upstreamErr *UpstreamError
		assert.ErrorAs(t, err, &upstreamErr)
	})
}
