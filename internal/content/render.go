package content

import (
	"errors"
	"fmt"
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Typesetter turns a math expression into display markup. A Typesetter that
// returns an error makes the renderer show the segment's FallbackText.
type Typesetter interface {
	Typeset(expression string) (string, error)
}

// TypesetterFunc adapts a function to Typesetter.
type TypesetterFunc func(expression string) (string, error)

func (f TypesetterFunc) Typeset(expression string) (string, error) { return f(expression) }

var ErrUnbalancedExpression = errors.New("unbalanced delimiters in math expression")

// DelimiterTypesetter wraps expressions in \( \) delimiters for client-side
// typesetting. Expressions whose brackets do not balance are rejected.
type DelimiterTypesetter struct{}

func (DelimiterTypesetter) Typeset(expression string) (string, error) {
	if expression == "" {
		return "", fmt.Errorf("empty math expression")
	}
	if !balanced(expression) {
		return "", ErrUnbalancedExpression
	}
	return `<span class="math">\(` + html.EscapeString(expression) + `\)</span>`, nil
}

func balanced(expr string) bool {
	var stack []rune
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	for _, r := range expr {
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// Fallback returns the text shown when a math segment cannot be typeset.
func (s Segment) Fallback() string {
	if s.FallbackText != "" {
		return s.FallbackText
	}
	return s.Expression
}

// RenderHTML writes text segments as they are and math segments through ts.
// When ts is nil or fails, the segment's fallback text is shown instead.
// Active content is removed from the result: script-like elements, on*
// handlers and javascript: URLs. Markup without any of those is returned
// byte for byte.
func RenderHTML(c Content, ts Typesetter) string {
	var b strings.Builder
	for _, seg := range c {
		if seg.IsText() {
			b.WriteString(seg.HTML)
			continue
		}
		if ts != nil {
			if out, err := ts.Typeset(seg.Expression); err == nil {
				b.WriteString(out)
				continue
			}
		}
		b.WriteString(`<span class="math-fallback">`)
		b.WriteString(html.EscapeString(seg.Fallback()))
		b.WriteString(`</span>`)
	}
	return sanitize(b.String())
}

const activeElements = "script, style, iframe, frame, frameset, object, embed, applet, base, link, meta, form, template"

var urlAttrs = map[string]bool{"href": true, "src": true, "action": true, "formaction": true, "xlink:href": true}

// sanitize drops active content from fragment. The fragment is re-serialized
// only when something had to be removed.
func sanitize(fragment string) string {
	if strings.IndexByte(fragment, '<') < 0 {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return html.EscapeString(fragment)
	}
	// The parser may hoist leading elements such as <script> into <head>.
	active := doc.Find(activeElements)
	changed := active.Length() > 0
	active.Remove()

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			kept := n.Attr[:0]
			for _, a := range n.Attr {
				if unsafeAttr(a.Key, a.Val) {
					changed = true
					continue
				}
				kept = append(kept, a)
			}
			n.Attr = kept
		}
	})
	if !changed {
		return fragment
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return html.EscapeString(fragment)
	}
	return out
}

func unsafeAttr(key, val string) bool {
	key = strings.ToLower(key)
	if strings.HasPrefix(key, "on") {
		return true
	}
	if !urlAttrs[key] {
		return false
	}
	scheme := strings.ToLower(strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, val))
	return strings.HasPrefix(scheme, "javascript:") || strings.HasPrefix(scheme, "vbscript:") ||
		(strings.HasPrefix(scheme, "data:") && !strings.HasPrefix(scheme, "data:image/"))
}

// PlainText returns the readable text of c: text segments without their tags
// and math segments as their fallback text.
func PlainText(c Content) string {
	var b strings.Builder
	for _, seg := range c {
		if seg.IsMath() {
			b.WriteString(seg.Fallback())
			continue
		}
		b.WriteString(htmlText(seg.HTML))
	}
	return normalizeWhitespace(b.String())
}

func htmlText(fragment string) string {
	if strings.IndexByte(fragment, '<') < 0 {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return stripTags(fragment)
	}
	return doc.Find("body").Text()
}

// Markdown converts c to Markdown. Math segments are written as $fallback$,
// which is the alttext when the source had one.
func Markdown(c Content) (string, error) {
	if len(c) == 0 {
		return "", nil
	}

	// Math is swapped for alphanumeric tokens so the converter leaves it alone.
	prefix := "mathseg" + strings.ReplaceAll(uuid.NewString(), "-", "")
	var (
		b     strings.Builder
		exprs []string
	)
	for _, seg := range c {
		if seg.IsText() {
			b.WriteString(seg.HTML)
			continue
		}
		fmt.Fprintf(&b, "%s%dx", prefix, len(exprs))
		exprs = append(exprs, seg.Fallback())
	}

	md, err := htmltomarkdown.ConvertString(b.String())
	if err != nil {
		return "", fmt.Errorf("converting content to markdown: %w", err)
	}

	pairs := make([]string, 0, len(exprs)*2)
	for i, expr := range exprs {
		pairs = append(pairs, fmt.Sprintf("%s%dx", prefix, i), "$"+expr+"$")
	}
	return strings.NewReplacer(pairs...).Replace(md), nil
}
