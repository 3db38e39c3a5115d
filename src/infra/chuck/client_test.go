package chuck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokebox/src/core/domain"
	"jokebox/src/infra/config"
	"jokebox/src/infra/logger"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.FeedConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, logger.Discard())
}

func TestCategories(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["animal","dev","sport"]`))
	}))

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"animal", "dev", "sport"}, categories)
}

func TestCategories_UpstreamError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Categories(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUpstreamUnavailable(err))
}

func TestRandom(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc123","value":"a joke","categories":[]}`))
	}))

	joke, err := client.Random(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "abc123", joke.ExternalID)
	assert.Equal(t, "a joke", joke.Value)
	assert.Nil(t, joke.Category)
}

func TestRandom_WithCategory(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sport", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abc123","value":"a joke","categories":["sport","other"]}`))
	}))

	joke, err := client.Random(context.Background(), "sport")
	require.NoError(t, err)
	require.NotNil(t, joke.Category)
	// The first upstream category wins.
	assert.Equal(t, "sport", *joke.Category)
}

func TestRandom_UpstreamError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Random(context.Background(), "")
	require.Error(t, err)
	assert.True(t, domain.IsUpstreamUnavailable(err))
}

func TestRandom_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := New(config.FeedConfig{
		BaseURL: srv.URL,
		Timeout: 20 * time.Millisecond,
	}, logger.Discard())

	_, err := client.Random(context.Background(), "")
	require.Error(t, err)
	// A timeout is indistinguishable from any other transport failure.
	assert.True(t, domain.IsUpstreamUnavailable(err))
}
