package content

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML_UsesTypesetter(t *testing.T) {
	c := Content{Text("Solve "), Math("x2", "x^2"), Text(" for x")}

	ts := TypesetterFunc(func(expr string) (string, error) {
		return "<k>" + expr + "</k>", nil
	})
	assert.Equal(t, "Solve <k>x2</k> for x", RenderHTML(c, ts))
}

func TestRenderHTML_FallsBackWhenTypesettingFails(t *testing.T) {
	c := Content{Text("Solve "), Math("x2", "x^2"), Text(" for x")}

	failing := TypesetterFunc(func(string) (string, error) {
		return "", errors.New("parse error")
	})
	want := `Solve <span class="math-fallback">x^2</span> for x`
	assert.Equal(t, want, RenderHTML(c, failing))
	assert.Equal(t, want, RenderHTML(c, nil))
}

func TestRenderHTML_FallbackIsEscaped(t *testing.T) {
	c := Content{Math("a<b", "a < b & c")}
	assert.Equal(t, `<span class="math-fallback">a &lt; b &amp; c</span>`, RenderHTML(c, nil))
}

func TestRenderHTML_EmptyFallbackUsesExpression(t *testing.T) {
	c := Content{{Kind: KindMath, Expression: "y"}}
	assert.Equal(t, `<span class="math-fallback">y</span>`, RenderHTML(c, nil))
}

func TestRenderHTML_RemovesActiveContent(t *testing.T) {
	c := Normalize(`&lt;script&gt;alert(1)&lt;/script&gt;<b onclick="x()">bold</b>`)
	assert.Equal(t, "<b>bold</b>", RenderHTML(c, nil))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"javascript url", `<a href="javascript:alert(1)">x</a>`, `<a>x</a>`},
		{"obfuscated scheme", "<a href=\" Java\tScript:alert(1)\">x</a>", `<a>x</a>`},
		{"leading script", `<script>alert(1)</script>Pick one`, `Pick one`},
		{"iframe", `See<iframe src="https://example.com"></iframe> this`, `See this`},
		{"event handler on image", `<img src="a.png" onerror="x()"/>`, `<img src="a.png"/>`},
		{"safe link kept", `<a href="https://example.com">x</a>`, `<a href="https://example.com">x</a>`},
		{"plain markup kept", `<p>Which <em>choice</em> is best?</p>`, `<p>Which <em>choice</em> is best?</p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderHTML(Content{Text(tt.in)}, nil))
		})
	}
}

func TestRenderHTML_KeepsTypesetMarkup(t *testing.T) {
	c := Content{Text("If "), Math("x<1", "x<1"), Text(", then")}
	assert.Equal(t, `If <span class="math">\(x&lt;1\)</span>, then`, RenderHTML(c, DelimiterTypesetter{}))
}

func TestDelimiterTypesetter(t *testing.T) {
	ts := DelimiterTypesetter{}

	out, err := ts.Typeset("f(x) = {x}")
	require.NoError(t, err)
	assert.Equal(t, `<span class="math">\(f(x) = {x}\)</span>`, out)

	_, err = ts.Typeset("f(x")
	assert.ErrorIs(t, err, ErrUnbalancedExpression)

	_, err = ts.Typeset("(]")
	assert.ErrorIs(t, err, ErrUnbalancedExpression)

	_, err = ts.Typeset("")
	assert.Error(t, err)

	html := RenderHTML(Content{Math("g(x", "g of x")}, ts)
	assert.Equal(t, `<span class="math-fallback">g of x</span>`, html)
}

func TestPlainText(t *testing.T) {
	c := Normalize(`<p>Solve <math alttext="x^2">x<sup>2</sup></math> for <b>x</b>.</p>`)
	assert.Equal(t, "Solve x^2 for x.", PlainText(c))
	assert.Equal(t, "", PlainText(nil))
}

func TestMarkdown(t *testing.T) {
	c := Content{Text("<p>Solve "), Math("x^2", "x^2"), Text(" for <strong>x</strong></p>")}

	md, err := Markdown(c)
	require.NoError(t, err)
	assert.Contains(t, md, "Solve $x^2$ for **x**")
	assert.NotContains(t, md, "mathseg")

	md, err = Markdown(nil)
	require.NoError(t, err)
	assert.Empty(t, md)
}

func TestSegmentJSON(t *testing.T) {
	c := Content{Text("a "), Math("x2", "x^2")}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"kind":"text","html":"a "},
		{"kind":"math","expression":"x2","fallbackText":"x^2"}
	]`, string(data))

	var back Content
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)
}
