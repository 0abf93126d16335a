package content

import (
	"html"
	"strings"
)

// maxReferenceLen bounds how far back a ';' looks for the '&' that opens a
// character reference. The longest named reference is 33 bytes.
const maxReferenceLen = 64

// DecodeEntities replaces HTML character references with the characters they
// stand for, in one left-to-right pass. Whenever a ';' lands in the output the
// reference it closes is decoded in place, so text produced by a decoded
// reference is examined again: "&amp;lt;" ends up as "<". The output never
// contains a complete reference, which makes DecodeEntities idempotent.
// References without a closing ';' are left as written.
func DecodeEntities(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, s[i])
		if s[i] != ';' {
			continue
		}
		// A reference may decode to ';' and close an earlier one.
		for {
			start := referenceStart(out)
			if start < 0 {
				break
			}
			decoded, ok := decodeReference(string(out[start:]))
			if !ok {
				break
			}
			out = append(out[:start], decoded...)
			if decoded != ";" {
				break
			}
		}
	}
	return string(out)
}

// referenceStart returns the index of the '&' opening the reference that ends
// at the final ';' of out, or -1.
func referenceStart(out []byte) int {
	limit := len(out) - maxReferenceLen
	if limit < 0 {
		limit = 0
	}
	for j := len(out) - 2; j >= limit; j-- {
		c := out[j]
		if c == '&' {
			return j
		}
		if c != '#' && !isASCIIAlnum(c) {
			return -1
		}
	}
	return -1
}

// decodeReference decodes ref, which has the form "&...;". Only a complete
// named, decimal or hex reference is accepted.
func decodeReference(ref string) (string, bool) {
	body := ref[1 : len(ref)-1]
	if !validReferenceBody(body) {
		return "", false
	}
	decoded := html.UnescapeString(ref)
	if decoded == ref {
		return "", false
	}
	// html also decodes a known prefix such as "&lt" in "&ltx;"; that leaves
	// the rest of the name and the ';' behind.
	if decoded != ";" && strings.HasSuffix(decoded, ";") {
		return "", false
	}
	return decoded, true
}

func validReferenceBody(body string) bool {
	if body == "" {
		return false
	}
	if body[0] != '#' {
		if !isASCIILetter(body[0]) {
			return false
		}
		for i := 1; i < len(body); i++ {
			if !isASCIIAlnum(body[i]) {
				return false
			}
		}
		return true
	}

	digits := body[1:]
	hex := len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X')
	if hex {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
		case hex && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')):
		default:
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIAlnum(c byte) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9')
}

var decorative = strings.NewReplacer(
	"\u00a0", " ",
	"\u201c", `"`,
	"\u201d", `"`,
	"\u2018", "'",
	"\u2019", "'",
	"\u2014", "-",
	"\u2026", "...",
)

// normalizeWhitespace maps typographic characters to plain ASCII, collapses
// whitespace runs to a single space and trims both ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(decorative.Replace(s)), " ")
}

// stripTags removes markup tags. As in the HTML tokenizer, a tag starts only
// where '<' is followed by a letter, '/', '!' or '?'; any other '<' is text,
// so a decoded less-than operator survives. A tag with no closing '>' is kept
// as text.
func stripTags(s string) string {
	if strings.IndexByte(s, '<') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			break
		}
		if !opensTag(s[i+1:]) {
			b.WriteString(s[:i+1])
			s = s[i+1:]
			continue
		}
		j := strings.IndexByte(s[i:], '>')
		if j < 0 {
			break
		}
		b.WriteString(s[:i])
		s = s[i+j+1:]
	}
	b.WriteString(s)
	return b.String()
}

func opensTag(rest string) bool {
	if rest == "" {
		return false
	}
	c := rest[0]
	return isASCIILetter(c) || c == '/' || c == '!' || c == '?'
}
