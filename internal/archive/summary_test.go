package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"plain title",
			"<html><head><title>Effective Go</title></head><body></body></html>",
			"Effective Go",
		},
		{
			"whitespace collapsed",
			"<html><head><title>  Effective\n\tGo  </title></head></html>",
			"Effective Go",
		},
		{
			"first title wins",
			"<title>First</title><svg><title>Second</title></svg>",
			"First",
		},
		{
			"no title element",
			"<html><body><h1>Heading</h1></body></html>",
			"",
		},
		{
			"empty title",
			"<title></title>",
			"",
		},
		{
			// html.Parse repairs rather than rejects broken markup.
			"malformed html",
			"<title>Broken</title><div><p>unclosed",
			"Broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.html))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Run("strips markup", func(t *testing.T) {
		got := Summarize("<html><body><h1>Go</h1><p>Go is an <em>open source</em> language.</p></body></html>")
		assert.Contains(t, got, "Go is an open source language.")
		assert.NotContains(t, got, "<")
		assert.NotContains(t, got, "*")
	})

	t.Run("scripts and styles dropped", func(t *testing.T) {
		got := Summarize("<body><script>alert(1)</script><style>p{}</style><p>visible</p></body>")
		assert.Contains(t, got, "visible")
		assert.NotContains(t, got, "alert")
	})

	t.Run("multiple blocks joined", func(t *testing.T) {
		got := Summarize("<p>first</p><p>second</p>")
		assert.Contains(t, got, "first second")
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", Summarize(""))
		assert.Equal(t, "", Summarize("<body><script>x</script></body>"))
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		long := strings.Repeat("lorem ipsum dolor ", 50)
		got := Summarize("<p>" + long + "</p>")
		assert.LessOrEqual(t, len([]rune(got)), summaryMaxRunes+1)
		assert.True(t, strings.HasSuffix(got, "…"))
	})
}

func TestTruncate(t *testing.T) {
	t.Run("short strings untouched", func(t *testing.T) {
		assert.Equal(t, "hello", truncate("hello", 10))
		assert.Equal(t, "hello", truncate("hello", 5))
	})

	t.Run("cuts on a word boundary", func(t *testing.T) {
		got := truncate("the quick brown fox jumps", 14)
		assert.Equal(t, "the quick…", got)
	})

	t.Run("hard cut when no boundary near", func(t *testing.T) {
		got := truncate(strings.Repeat("x", 50), 10)
		assert.Equal(t, strings.Repeat("x", 10)+"…", got)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		got := truncate(strings.Repeat("ü", 50), 10)
		assert.Equal(t, strings.Repeat("ü", 10)+"…", got)
	})
}
