package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContent(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"allowed markup", "<strong>bold</strong> and <em>italic</em>", "<strong>bold</strong> and <em>italic</em>"},
		{"script stripped", `before<script>alert("x")</script>after`, "beforeafter"},
		{"event handler stripped", `<p onclick="steal()">text</p>`, "<p>text</p>"},
		{"disallowed tag unwrapped", "<div>inside</div>", "inside"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Content(tc.in))
		})
	}
}

func TestContentLinks(t *testing.T) {
	out := Content(`<a href="https://example.com">link</a>`)
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `rel="nofollow"`)

	out = Content(`<a href="http://example.com/page" title="a page">link</a>`)
	assert.Contains(t, out, `href="http://example.com/page"`)
	assert.Contains(t, out, `title="a page"`)
}

func TestContentLinkSchemes(t *testing.T) {
	out := Content(`<a href="javascript:alert('x')">click</a>`)
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "href")
}
