package form

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText returns the text content of an HTML fragment with entities
// decoded and surrounding whitespace (including nbsp) trimmed.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(strings.ReplaceAll(b.String(), "\u00a0", " "))
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
