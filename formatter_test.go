package wikiloop_test

import (
	"testing"

	"github.com/fwojciec/wikiloop"
	"github.com/stretchr/testify/assert"
)

func TestFormatJourney(t *testing.T) {
	t.Parallel()

	t.Run("formats successful journey", func(t *testing.T) {
		t.Parallel()

		result := &wikiloop.Result{
			Status: wikiloop.StatusSucceeded,
			URL:    "https://en.wikipedia.org/wiki/philosophy",
			Journey: []*wikiloop.PageSummary{
				{URL: "https://en.wikipedia.org/wiki/Water", Title: "Water"},
				{URL: "https://en.wikipedia.org/wiki/philosophy", Title: "Philosophy"},
			},
		}

		expected := "1. Water <https://en.wikipedia.org/wiki/Water>\n" +
			"2. Philosophy <https://en.wikipedia.org/wiki/philosophy>\n" +
			"\n" +
			"Reached https://en.wikipedia.org/wiki/philosophy after 2 pages."
		assert.Equal(t, expected, wikiloop.FormatJourney(result))
	})

	t.Run("uses URL when title is empty", func(t *testing.T) {
		t.Parallel()

		result := &wikiloop.Result{
			Status: wikiloop.StatusNoLinkFound,
			URL:    "https://en.wikipedia.org/wiki/b",
			Journey: []*wikiloop.PageSummary{
				{URL: "https://en.wikipedia.org/wiki/a"},
			},
		}

		expected := "1. https://en.wikipedia.org/wiki/a <https://en.wikipedia.org/wiki/a>\n" +
			"\n" +
			"Cannot continue because the page https://en.wikipedia.org/wiki/b has no link."
		assert.Equal(t, expected, wikiloop.FormatJourney(result))
	})

	t.Run("formats failure with empty journey", func(t *testing.T) {
		t.Parallel()

		result := &wikiloop.Result{
			Status: wikiloop.StatusPageMissing,
			URL:    "https://en.wikipedia.org/wiki/nope",
		}

		assert.Equal(t, "Cannot continue because the page https://en.wikipedia.org/wiki/nope is missing.", wikiloop.FormatJourney(result))
	})

	t.Run("returns empty string for nil result", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, wikiloop.FormatJourney(nil))
	})
}

func TestResult_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   wikiloop.Status
		expected string
	}{
		{wikiloop.StatusSucceeded, ""},
		{wikiloop.StatusLoopDetected, "Cannot continue because we are looping towards https://en.wikipedia.org/wiki/x."},
		{wikiloop.StatusPageMissing, "Cannot continue because the page https://en.wikipedia.org/wiki/x is missing."},
		{wikiloop.StatusNoLinkFound, "Cannot continue because the page https://en.wikipedia.org/wiki/x has no link."},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			r := &wikiloop.Result{Status: tt.status, URL: "https://en.wikipedia.org/wiki/x"}
			assert.Equal(t, tt.expected, r.Message())
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("keeps short text and appends ellipsis", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Water is wet....", wikiloop.Excerpt("Water is wet."))
	})

	t.Run("truncates to excerpt length in characters", func(t *testing.T) {
		t.Parallel()

		text := ""
		for i := 0; i < 300; i++ {
			text += "é"
		}

		got := wikiloop.Excerpt(text)

		assert.Equal(t, wikiloop.ExcerptLength+len(wikiloop.ExcerptEllipsis), len([]rune(got)))
	})
}

func TestPageKey(t *testing.T) {
	t.Parallel()

	t.Run("ignores case, fragment and query", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			wikiloop.PageKey("https://EN.wikipedia.org/wiki/Water#History"),
			wikiloop.PageKey("https://en.wikipedia.org/wiki/water?x=1"),
		)
	})

	t.Run("distinguishes hosts", func(t *testing.T) {
		t.Parallel()

		assert.False(t, wikiloop.SamePage(
			"https://en.wikipedia.org/wiki/Water",
			"https://fr.wikipedia.org/wiki/Water",
		))
	})

	t.Run("ignores port", func(t *testing.T) {
		t.Parallel()

		assert.True(t, wikiloop.SamePage("http://127.0.0.1:8080/wiki/A", "http://127.0.0.1:9090/wiki/a"))
	})
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://en.wikipedia.org/wiki/albert_einstein", wikiloop.NormalizeURL("https://en.wikipedia.org/wiki/Albert_Einstein"))
}
