package content

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Content
	}{
		{
			name: "plain text",
			raw:  "What is 2+2?",
			want: Content{Text("What is 2+2?")},
		},
		{
			name: "math with alttext",
			raw:  `Solve <math alttext="x^2">x<sup>2</sup></math> for x`,
			want: Content{Text("Solve "), Math("x2", "x^2"), Text(" for x")},
		},
		{
			name: "empty",
			raw:  "",
			want: Content{},
		},
		{
			name: "unterminated math is text",
			raw:  "<math>unterminated",
			want: Content{Text("<math>unterminated")},
		},
		{
			name: "adjacent math elements",
			raw:  "<math>a</math><math>b</math>",
			want: Content{Math("a", "a"), Math("b", "b")},
		},
		{
			name: "empty math element",
			raw:  "x <math></math> y",
			want: Content{Text("x "), Math("", ""), Text(" y")},
		},
		{
			name: "empty alttext falls back to expression",
			raw:  `<math alttext="">y</math>`,
			want: Content{Math("y", "y")},
		},
		{
			name: "single quoted alttext",
			raw:  `<math display='inline' alttext='a+b'><mi>a</mi><mo>+</mo><mi>b</mi></math>`,
			want: Content{Math("a+b", "a+b")},
		},
		{
			name: "inline markup in text is preserved",
			raw:  "<p>The <b>value</b> of <math><mi>k</mi></math>:</p>",
			want: Content{Text("<p>The <b>value</b> of "), Math("k", "k"), Text(":</p>")},
		},
		{
			name: "entities decoded in text",
			raw:  "Tom&rsquo;s &ldquo;best&rdquo; score&nbsp;&mdash; 5&hellip;",
			want: Content{Text("Tom’s “best” score\u00a0— 5…")},
		},
		{
			name: "decorative characters normalized in math",
			raw:  "<math>&ldquo;a&rdquo;&nbsp;&nbsp;&mdash;&hellip;\n\t b&rsquo;</math>",
			want: Content{Math(`"a" -... b'`, `"a" -... b'`)},
		},
		{
			name: "encoded math markup is recognised after decoding",
			raw:  "&lt;math&gt;z&lt;/math&gt; end",
			want: Content{Math("z", "z"), Text(" end")},
		},
		{
			name: "math spanning lines",
			raw:  "<math alttext=\"y = 2x\">\n  <mi>y</mi>\n  <mo>=</mo>\n  <mn>2</mn><mi>x</mi>\n</math>",
			want: Content{Math("y = 2x", "y = 2x")},
		},
		{
			name: "lookalike tag is not math",
			raw:  "<mathematics>no</mathematics>",
			want: Content{Text("<mathematics>no</mathematics>")},
		},
		{
			name: "mixed alttext and bare keep source order",
			raw:  `A <math>p</math> B <math alttext="q">Q</math> C`,
			want: Content{Text("A "), Math("p", "p"), Text(" B "), Math("Q", "q"), Text(" C")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizePtr(t *testing.T) {
	assert.Equal(t, Content{}, NormalizePtr(nil))

	empty := ""
	assert.Equal(t, Content{}, NormalizePtr(&empty))

	raw := "<math>1</math>"
	assert.Equal(t, Content{Math("1", "1")}, NormalizePtr(&raw))
}

func TestNormalize_NoMathYieldsSingleDecodedText(t *testing.T) {
	inputs := []string{
		"plain",
		"a &amp; b",
		"<p>para <i>one</i></p>",
		"x < y and y > z",
		"&#8730;16 = 4",
		"&amp;amp;lt;",
	}
	for _, in := range inputs {
		got := Normalize(in)
		require.Len(t, got, 1, in)
		assert.Equal(t, Text(DecodeEntities(in)), got[0], in)
	}
}

func TestNormalize_CountsAndOrder(t *testing.T) {
	for n := 0; n <= 6; n++ {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteString("t ")
			b.WriteString("<math><mn>")
			b.WriteByte(byte('0' + i))
			b.WriteString("</mn></math>")
		}
		b.WriteString(" tail")

		got := Normalize(b.String())
		assert.Equal(t, n, got.MathCount())

		texts := 0
		next := 0
		for _, seg := range got {
			if seg.IsText() {
				texts++
				continue
			}
			assert.Equal(t, string(rune('0'+next)), seg.Expression)
			next++
		}
		assert.LessOrEqual(t, texts, n+1)
	}
}

func TestNormalize_ConcatenationKeepsContent(t *testing.T) {
	raw := `Let <math alttext="f(x)">f ( x )</math> = &ldquo;<math><mn>3</mn><mi>x</mi></math>&rdquo; <b>now</b>`

	var b strings.Builder
	for _, seg := range Normalize(raw) {
		if seg.IsText() {
			b.WriteString(seg.HTML)
		} else {
			b.WriteString(seg.Expression)
		}
	}
	assert.Equal(t, "Let f ( x ) = “3x” <b>now</b>", b.String())
}

func TestNormalize_MalformedInputNeverPanics(t *testing.T) {
	inputs := []string{
		"<math",
		"<math alttext=\"unterminated>x</math>",
		"</math><math>",
		"<math><math>x</math></math>",
		"&#xZZZ; &; &#; &#99999999999;",
		"<<<<>>>>",
		string([]byte{0xff, 0xfe, '<', 'm', 'a', 't', 'h', '>', 0x00, '<', '/', 'm', 'a', 't', 'h', '>'}),
		strings.Repeat("<math alttext=\"", 2000),
		strings.Repeat("&amp;", 500) + "lt;",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Normalize(in) })
	}
}

func TestNormalize_NestedMathClaimsInnerAltTextFirst(t *testing.T) {
	got := Normalize(`<math>a <math alttext="q">q</math> b</math>`)

	// The alttext element is claimed first; the outer tags remain as text.
	require.Equal(t, 1, got.MathCount())
	assert.Equal(t, Content{Text("<math>a "), Math("q", "q"), Text(" b</math>")}, got)
}

func TestNormalize_Concurrent(t *testing.T) {
	raw := `Solve <math alttext="x^2">x<sup>2</sup></math> for x`
	want := Normalize(raw)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, Normalize(raw))
			}
		}()
	}
	wg.Wait()
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"no entities", "no entities"},
		{"&nbsp;", "\u00a0"},
		{"&ldquo;q&rdquo; &lsquo;s&rsquo;", "“q” ‘s’"},
		{"&mdash;&ndash;&hellip;", "—–…"},
		{"&#60;&#x3E;", "<>"},
		{"&amp;lt;b&amp;gt;", "<b>"},
		{"&amp;amp;amp;quot;", `"`},
		{"&l&#116;;", "<"},
		{"&#38;#60;", "<"},
		{"&ltx; &#x; &#12a;", "&ltx; &#x; &#12a;"},
		{"&unknown; & stays", "&unknown; & stays"},
		{"AT&T; R&D", "AT&T; R&D"},
	}
	for _, tt := range tests {
		got := DecodeEntities(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, DecodeEntities(got), "decoding %q again must be a no-op", tt.in)
	}
}

func TestDecodeEntities_DeepNestingIsLinear(t *testing.T) {
	decode := func(layers int) time.Duration {
		in := "&" + strings.Repeat("amp;", layers) + "lt;"
		start := time.Now()
		got := DecodeEntities(in)
		elapsed := time.Since(start)
		require.Equal(t, "<", got)
		return elapsed
	}

	// 1 MB of nesting; one pass per layer would take minutes
	elapsed := decode(250_000)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "x2", stripTags("<math>x<sup>2</sup></math>"))
	assert.Equal(t, "a <b", stripTags("a <b"))
	assert.Equal(t, "plain", stripTags("plain"))
	assert.Equal(t, "<><>", stripTags("<><>"))
	assert.Equal(t, "x<3", stripTags("<mi>x</mi><mo><</mo><mn>3</mn>"))
	assert.Equal(t, "a < b", stripTags("a < b<!-- c -->"))
	assert.Equal(t, "1<=2", stripTags("1<=2"))
}

func TestNormalize_LessThanOperatorIsKept(t *testing.T) {
	got := Normalize("<math><mi>x</mi><mo>&lt;</mo><mn>3</mn></math>")
	assert.Equal(t, Content{Math("x<3", "x<3")}, got)

	got = Normalize(`If <math alttext="a &lt; b"><mi>a</mi><mo>&lt;</mo><mi>b</mi></math>, then`)
	assert.Equal(t, Content{Text("If "), Math("a<b", "a < b"), Text(", then")}, got)
}
