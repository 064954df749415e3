package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHTML(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "drops script and style bodies",
			input: `<p>Hello</p><script>alert("x<y")</script><style>p { color: red; }</style><p>World</p>`,
			want:  "Hello\nWorld",
		},
		{
			name:  "block closers become line breaks",
			input: "<ul><li>2 cups flour</li><li>1 egg</li></ul>first<br>second<br/>third",
			want:  "2 cups flour\n1 egg\n\nfirst\nsecond\nthird",
		},
		{
			name:  "decodes entities and fractions",
			input: "<p>Salt &amp; Pepper&nbsp;mix &frac12; cup &quot;fine&quot; &#039;sea&#039;</p>",
			want:  `Salt & Pepper mix 1/2 cup "fine" 'sea'`,
		},
		{
			name:  "fraction glyphs become ascii",
			input: "<li>¾ cup sugar</li>",
			want:  "3/4 cup sugar",
		},
		{
			name:  "collapses whitespace and blank lines",
			input: "<div>  lots   of\t\tspace  </div>\n\n\n\n\n<div>next</div>",
			want:  "lots of space\n\nnext",
		},
		{
			name:  "removes comments",
			input: "<p>keep</p><!-- <p>drop</p> -->",
			want:  "keep",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeHTML(tc.input))
		})
	}
}

func TestNormalizeHTML_NoAngleBrackets(t *testing.T) {
	inputs := []string{
		"<p>1 &lt; 2 &gt; 0</p>",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"a < b > c",
		"<unclosed tag",
		"&amp;lt;b&amp;gt;bold",
		"<<>>",
		"<div><p>nested</div>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := NormalizeHTML(input)
			assert.False(t, strings.ContainsAny(got, "<>"), "output %q still has angle brackets", got)
		})
	}
}

func TestNormalizeHTML_Idempotent(t *testing.T) {
	inputs := []string{
		"<h1>Test Soup</h1><p>A warm &amp; cosy soup.</p><ul><li>2 cups broth</li><li>1 carrot</li></ul>",
		"already clean text\n\nwith a blank line",
		"&amp;amp; double escaped &amp;frac12;",
		"  padded   line  \r\n\r\nnext\r\n",
	}

	for _, input := range inputs {
		once := NormalizeHTML(input)
		assert.Equal(t, once, NormalizeHTML(once), "re-normalizing %q changed it", input)
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("first\n\n  second  \n\nthird\n")
	assert.Equal(t, []string{"first", "second", "third"}, lines)
	assert.Empty(t, SplitLines(""))
}
