package game

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedock/gamedock/internal/infrastructure/resilience"
)

func TestFetchRemoteGame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>game</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, 0)
	data, err := f.Fetch(context.Background(), srv.URL+"/games/snake.html")
	require.NoError(t, err)

	assert.Equal(t, "<html><body>game</body></html>", data.HTML)
	assert.Equal(t, "snake", data.Meta.Title)
	assert.Equal(t, "remote", data.Meta.Type)
	assert.False(t, data.Meta.Generated)
}

func TestFetchRejectsBadURL(t *testing.T) {
	f := NewFetcher(time.Second, 0)

	_, err := f.Fetch(context.Background(), "ftp://example.com/game.html")
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, 0)
	_, err := f.Fetch(context.Background(), srv.URL+"/missing.html")
	assert.Error(t, err)
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>big</html>"))
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, 4)
	_, err := f.Fetch(context.Background(), srv.URL+"/big.html")
	assert.Error(t, err)
}

func TestFetchBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, 0)
	for i := 0; i < 5; i++ {
		_, err := f.Fetch(context.Background(), srv.URL+"/game.html")
		require.Error(t, err)
	}

	_, err := f.Fetch(context.Background(), srv.URL+"/game.html")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}
