package textnorm

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes tags and decodes entities. Text of script and style
// elements is dropped. Inline tags join their text as written, so
// "Ja<b>va</b>" stays "Java"; block-level tags end the current line.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimRight(b.String(), "\n")
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if isRawTextTag(name) && tt != html.SelfClosingTagToken {
				if tt == html.StartTagToken {
					skip++
				} else if skip > 0 {
					skip--
				}
				continue
			}
			if breaksLine(name, tt) {
				lineBreak(&b)
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(name []byte) bool {
	n := string(name)
	return n == "script" || n == "style"
}

var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "li": {}, "ul": {}, "ol": {}, "tr": {}, "td": {}, "th": {},
	"table": {}, "section": {}, "article": {}, "header": {}, "footer": {},
	"blockquote": {}, "pre": {}, "dt": {}, "dd": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
}

// breaksLine reports whether a tag separates text: a br anywhere, or the
// end of a block element.
func breaksLine(name []byte, tt html.TokenType) bool {
	n := string(name)
	if n == "br" {
		return true
	}
	if tt != html.EndTagToken {
		return false
	}
	_, ok := blockTags[n]
	return ok
}

func lineBreak(b *strings.Builder) {
	if s := b.String(); s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
}
