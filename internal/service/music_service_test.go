package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const deezerPayload = `{
	"data": [
		{
			"id": 3135556,
			"title": "Harder, Better, Faster, Stronger",
			"preview": "https://cdn.example.com/preview/3135556.mp3",
			"link": "https://www.deezer.com/track/3135556",
			"duration": 224,
			"artist": {"name": "Daft Punk"},
			"album": {"cover_medium": "https://cdn.example.com/cover/medium.jpg"}
		},
		{
			"id": 916424,
			"title": "One More Time",
			"preview": "",
			"link": "https://www.deezer.com/track/916424",
			"duration": 320,
			"artist": {"name": "Daft Punk"},
			"album": {"cover_medium": ""}
		}
	]
}`

func TestMusicSearchMapsUpstreamRows(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "daft punk", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(deezerPayload))
	}))
	defer upstream.Close()

	svc := NewMusicService(upstream.URL)
	tracks, err := svc.Search(context.Background(), "daft punk", 20)

	assert.NoError(t, err)
	assert.Len(t, tracks, 2)

	assert.Equal(t, int64(3135556), tracks[0].TrackID)
	assert.Equal(t, "Harder, Better, Faster, Stronger", tracks[0].TrackName)
	assert.Equal(t, "Daft Punk", tracks[0].Artist)
	assert.Equal(t, "https://cdn.example.com/preview/3135556.mp3", tracks[0].PreviewURL)
	assert.Equal(t, "https://cdn.example.com/cover/medium.jpg", tracks[0].AlbumArt)
	assert.Equal(t, "https://www.deezer.com/track/3135556", tracks[0].DeezerURL)
	assert.Equal(t, 224, tracks[0].Duration)

	assert.Equal(t, "One More Time", tracks[1].TrackName)
	assert.Empty(t, tracks[1].PreviewURL)
}

func TestMusicSearchClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit string
	}{
		{name: "zero falls back to default", limit: 0, wantLimit: "20"},
		{name: "negative falls back to default", limit: -5, wantLimit: "20"},
		{name: "within bounds passes through", limit: 7, wantLimit: "7"},
		{name: "oversized clamps to max", limit: 500, wantLimit: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit string
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotLimit = r.URL.Query().Get("limit")
				_, _ = w.Write([]byte(`{"data": []}`))
			}))
			defer upstream.Close()

			svc := NewMusicService(upstream.URL)
			tracks, err := svc.Search(context.Background(), "query", tt.limit)

			assert.NoError(t, err)
			assert.Empty(t, tracks)
			assert.Equal(t, tt.wantLimit, gotLimit)
		})
	}
}

func TestMusicSearchUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := NewMusicService(upstream.URL)
	tracks, err := svc.Search(context.Background(), "query", 20)

	assert.Error(t, err)
	assert.Nil(t, tracks)
}

func TestMusicSearchUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	svc := NewMusicService(upstream.URL)
	_, err := svc.Search(context.Background(), "query", 20)

	assert.Error(t, err)
}
