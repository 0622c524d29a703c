package telegram_utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShort(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
}

func TestSplitMessagePrefersNewlines(t *testing.T) {
	text := "first line\nsecond line\nthird"

	chunks := SplitMessage(text, 15)
	assert.Equal(t, []string{"first line\n", "second line\n", "third"}, chunks)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitMessageCountsRunes(t *testing.T) {
	text := strings.Repeat("ж", 10)

	chunks := SplitMessage(text, 4)
	require.Len(t, chunks, 3)
	assert.Equal(t, "жжжж", chunks[0])
	assert.Equal(t, "жж", chunks[2])
}

func TestFixMarkdown(t *testing.T) {
	cases := map[string]string{
		"plain":               "plain",
		"*bold":               "*bold*",
		"`code` and _italic":  "`code` and _italic_",
		"```go\nfmt.Println(": "```go\nfmt.Println(```",
		"``` * inside ```":    "``` * inside ```",
		`escaped \* star`:     `escaped \* star`,
	}
	for in, want := range cases {
		assert.Equal(t, want, FixMarkdown(in), "input %q", in)
	}
}
