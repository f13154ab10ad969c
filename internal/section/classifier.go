// Package section filters job-posting text by the relevance of its headings.
package section

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/modmatch/internal/domain"
	"github.com/kailas-cloud/modmatch/internal/domain/relevance"
)

// MaxImportantHeadingLen is the exclusive rune bound for a line to count as an important heading.
const MaxImportantHeadingLen = 100

var lineSplit = regexp.MustCompile(`[\n\t]`)

type heading struct {
	text  string
	lower string
}

// Classifier labels lines as important or unimportant by heading match and
// carries the label over to the following body lines. Safe for concurrent use.
type Classifier struct {
	important   []heading
	unimportant []heading
	highlight   bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithHighlight wraps every matched heading in asterisks.
func WithHighlight() Option {
	return func(c *Classifier) { c.highlight = true }
}

// WithHeadings replaces the heading lists.
func WithHeadings(important, unimportant []string) Option {
	return func(c *Classifier) {
		c.important = toHeadings(important)
		c.unimportant = toHeadings(unimportant)
	}
}

// New creates a classifier over the default German heading lists.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		important:   toHeadings(ImportantHeadings),
		unimportant: toHeadings(UnimportantHeadings),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func toHeadings(list []string) []heading {
	out := make([]heading, 0, len(list))
	for _, h := range list {
		if h == "" {
			continue
		}
		out = append(out, heading{text: h, lower: strings.ToLower(h)})
	}
	return out
}

// ParseMode validates a mode identifier; empty means relevance.All.
func ParseMode(s string) (relevance.Mode, error) {
	if s == "" {
		return relevance.All, nil
	}
	m := relevance.Mode(strings.ToLower(s))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: unknown relevance mode %q", domain.ErrInvalidRequest, s)
	}
	return m, nil
}

// EvaluateSection returns the lines of text selected by mode, joined with "\n".
// Under relevance.All a "-" or "+" marker precedes every unimportant or important heading.
func (c *Classifier) EvaluateSection(text string, mode relevance.Mode) string {
	var out []string
	label := relevance.LabelUnknown

	for _, raw := range lineSplit.Split(text, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		unimp, unimpOK := match(c.unimportant, lower)
		imp, impOK := match(c.important, lower)
		impOK = impOK && utf8.RuneCountInString(line) < MaxImportantHeadingLen

		shown := line
		if c.highlight {
			if unimpOK {
				shown = strings.ReplaceAll(shown, unimp.text, "*"+unimp.text+"*")
			}
			if impOK {
				shown = strings.ReplaceAll(shown, imp.text, "*"+imp.text+"*")
			}
		}

		if unimpOK {
			label = relevance.LabelUnimportant
			if mode.Emits(label) {
				if mode == relevance.All {
					out = append(out, "-")
				}
				out = append(out, shown)
			}
		}
		if impOK {
			label = relevance.LabelImportant
			if mode.Emits(label) {
				if mode == relevance.All {
					out = append(out, "+")
				}
				out = append(out, shown)
			}
		}
		if !unimpOK && !impOK && mode.Emits(label) {
			out = append(out, shown)
		}
	}
	return strings.Join(out, "\n")
}

func match(list []heading, lowerLine string) (heading, bool) {
	for _, h := range list {
		if strings.Contains(lowerLine, h.lower) {
			return h, true
		}
	}
	return heading{}, false
}
