package content

import (
	"regexp"
	"strings"
)

// Math elements are matched with RE2, which runs in time linear in the input.
// The alttext form is tried first; the bare form only sees text the first
// pattern left unclaimed. Nested <math> elements are not supported: whichever
// pattern matches first claims the span.
var (
	altTextMath = regexp.MustCompile(`(?s)<math\b[^>]*?\salttext=(?:"([^"]*)"|'([^']*)')[^>]*>(.*?)</math>`)
	bareMath    = regexp.MustCompile(`(?s)<math\b[^>]*>(.*?)</math>`)
)

type mathBuilder func(text string, loc []int) Segment

// Normalize converts raw question markup into content segments. It never
// fails: markup it does not recognise is passed through as text.
//
// An empty input yields an empty Content.
func Normalize(raw string) Content {
	if raw == "" {
		return Content{}
	}

	// Math segments in the working slice act as placeholders: later passes
	// only rescan text segments, so a placeholder can never be confused with
	// literal content.
	work := []Segment{Text(DecodeEntities(raw))}
	work = extractMath(work, altTextMath, fromAltText)
	work = extractMath(work, bareMath, fromBare)

	out := make(Content, 0, len(work))
	for _, seg := range work {
		if seg.IsText() && seg.HTML == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// NormalizePtr is Normalize for optional fields; nil yields an empty Content.
func NormalizePtr(raw *string) Content {
	if raw == nil {
		return Content{}
	}
	return Normalize(*raw)
}

func extractMath(work []Segment, re *regexp.Regexp, build mathBuilder) []Segment {
	out := make([]Segment, 0, len(work))
	for _, seg := range work {
		if !seg.IsText() || !strings.Contains(seg.HTML, "<math") {
			out = append(out, seg)
			continue
		}

		text := seg.HTML
		last := 0
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			out = append(out, Text(text[last:loc[0]]), build(text, loc))
			last = loc[1]
		}
		out = append(out, Text(text[last:]))
	}
	return out
}

func fromAltText(text string, loc []int) Segment {
	expr := mathExpression(text[loc[0]:loc[1]])

	alt := ""
	switch {
	case loc[2] >= 0:
		alt = text[loc[2]:loc[3]]
	case loc[4] >= 0:
		alt = text[loc[4]:loc[5]]
	}
	if alt == "" {
		alt = expr
	}
	return Math(expr, alt)
}

func fromBare(text string, loc []int) Segment {
	expr := mathExpression(text[loc[0]:loc[1]])
	return Math(expr, expr)
}

// mathExpression reduces a matched <math> span to its text content.
func mathExpression(span string) string {
	return normalizeWhitespace(DecodeEntities(stripTags(span)))
}
