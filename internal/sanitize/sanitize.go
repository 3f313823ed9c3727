// Package sanitize cleans user-authored text before it is persisted. Every
// free-text field crossing a store boundary goes through Content.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "u", "ul", "ol", "li")
	p.AllowStandardURLs()
	p.AllowAttrs("href", "title").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Content strips everything outside the allowed formatting subset.
func Content(s string) string {
	return policy.Sanitize(s)
}
