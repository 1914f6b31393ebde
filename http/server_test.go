package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/wikiloop"
	wikihttp "github.com/fwojciec/wikiloop/http"
	"github.com/fwojciec/wikiloop/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	startURL = "https://en.wikipedia.org/wiki/Watermelon"
	stopURL  = "https://en.wikipedia.org/wiki/philosophy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postFollow(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/wikiloop", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	return payload
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	journeys := &mock.JourneyService{
		FollowFn: func(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error) {
			t.Fatal("health check must not start a journey")
			return nil, nil
		},
	}
	server := wikihttp.NewServer(journeys, discardLogger())

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, wikihttp.HealthMessage, rr.Body.String())
}

func TestServer_Follow(t *testing.T) {
	t.Parallel()

	t.Run("returns journey on success", func(t *testing.T) {
		t.Parallel()

		var gotStart, gotGoal string
		journeys := &mock.JourneyService{
			FollowFn: func(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error) {
				gotStart, gotGoal = startURL, goalURL
				return &wikiloop.Result{
					Status: wikiloop.StatusSucceeded,
					URL:    goalURL,
					Journey: []*wikiloop.PageSummary{
						{URL: startURL, Title: "Watermelon", Image: "https://upload.wikimedia.org/w.jpg", Text: "Watermelon is..."},
						{URL: goalURL, Title: "Philosophy", Image: wikiloop.DefaultImage, Text: "Philosophy is..."},
					},
				}, nil
			},
		}
		server := wikihttp.NewServer(journeys, discardLogger())

		rr := postFollow(t, server, `{"start_url": "`+startURL+`", "stop_url": "`+stopURL+`"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, startURL, gotStart)
		assert.Equal(t, stopURL, gotGoal)

		var resp wikihttp.FollowResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Empty(t, resp.Error)
		require.Len(t, resp.Journey, 2)
		assert.Equal(t, "Watermelon", resp.Journey[0].Title)
		assert.Equal(t, "https://upload.wikimedia.org/w.jpg", resp.Journey[0].Image)

		payload := decode(t, rr)
		assert.NotContains(t, payload, "error")
		page := payload["journey"].([]any)[0].(map[string]any)
		assert.Equal(t, startURL, page["url"])
		assert.Equal(t, "Watermelon is...", page["text"])
	})

	t.Run("returns message and partial journey on named failure", func(t *testing.T) {
		t.Parallel()

		journeys := &mock.JourneyService{
			FollowFn: func(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error) {
				return &wikiloop.Result{
					Status:  wikiloop.StatusLoopDetected,
					URL:     startURL,
					Journey: []*wikiloop.PageSummary{{URL: startURL, Title: "Watermelon"}},
				}, nil
			},
		}
		server := wikihttp.NewServer(journeys, discardLogger())

		rr := postFollow(t, server, `{"start_url": "`+startURL+`", "stop_url": "`+stopURL+`"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp wikihttp.FollowResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Cannot continue because we are looping towards "+startURL+".", resp.Error)
		require.Len(t, resp.Journey, 1)
	})

	t.Run("returns empty journey array for missing start page", func(t *testing.T) {
		t.Parallel()

		journeys := &mock.JourneyService{
			FollowFn: func(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error) {
				return &wikiloop.Result{Status: wikiloop.StatusPageMissing, URL: startURL}, nil
			},
		}
		server := wikihttp.NewServer(journeys, discardLogger())

		rr := postFollow(t, server, `{"start_url": "`+startURL+`", "stop_url": "`+stopURL+`"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		payload := decode(t, rr)
		assert.Equal(t, "Cannot continue because the page "+startURL+" is missing.", payload["error"])
		assert.Equal(t, []any{}, payload["journey"])
	})

	t.Run("hides unexpected failures and logs them", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		journeys := &mock.JourneyService{
			FollowFn: func(ctx context.Context, startURL, goalURL string) (*wikiloop.Result, error) {
				return nil, errors.New("secret database detail")
			},
		}
		server := wikihttp.NewServer(journeys, logger)

		rr := postFollow(t, server, `{"start_url": "`+startURL+`", "stop_url": "`+stopURL+`"}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		payload := decode(t, rr)
		assert.Equal(t, wikihttp.UnexpectedMessage, payload["error"])
		assert.NotContains(t, rr.Body.String(), "secret")
		assert.Contains(t, buf.String(), "journey failed")
		assert.Contains(t, buf.String(), "secret database detail")
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		t.Parallel()

		server := wikihttp.NewServer(&mock.JourneyService{}, discardLogger())

		rr := postFollow(t, server, `{not json`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid json payload", decode(t, rr)["error"])
	})

	t.Run("rejects missing urls", func(t *testing.T) {
		t.Parallel()

		server := wikihttp.NewServer(&mock.JourneyService{}, discardLogger())

		rr := postFollow(t, server, `{"start_url": "`+startURL+`"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "stop_url is required", decode(t, rr)["error"])
	})

	t.Run("rejects relative urls", func(t *testing.T) {
		t.Parallel()

		server := wikihttp.NewServer(&mock.JourneyService{}, discardLogger())

		rr := postFollow(t, server, `{"start_url": "/wiki/Water", "stop_url": "`+stopURL+`"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "start_url must be an absolute http(s) URL", decode(t, rr)["error"])
	})

	t.Run("rejects other methods", func(t *testing.T) {
		t.Parallel()

		server := wikihttp.NewServer(&mock.JourneyService{}, discardLogger())

		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/wikiloop", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}
