package usecase

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Compiled patterns for HTML normalization
var (
	scriptStyleRegex   = regexp.MustCompile(`(?is)<(script|style|noscript)\b[^>]*>.*?</(script|style|noscript)\s*>`)
	htmlCommentRegex   = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBreakRegex    = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|tr|section|article|ul|ol|table|header|footer)\s*>`)
	tagRegex           = regexp.MustCompile(`(?s)<[^>]*>`)
	horizontalWSRegex  = regexp.MustCompile(`[ \t\f\v\x{00a0}\x{2009}\x{202f}]+`)
	excessNewlineRegex = regexp.MustCompile(`\n{3,}`)
)

// entityReplacer decodes the fixed entity table. Fraction glyphs and their
// entities become ASCII fractions so quantity parsing sees plain digits.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&frac12;", "1/2",
	"&frac14;", "1/4",
	"&frac34;", "3/4",
	"&frac13;", "1/3",
	"&frac23;", "2/3",
	"&frac18;", "1/8",
	"½", "1/2",
	"¼", "1/4",
	"¾", "3/4",
	"⅓", "1/3",
	"⅔", "2/3",
	"⅛", "1/8",
)

// NormalizeHTML turns raw HTML into clean, line-oriented text.
// It never fails; the output never contains '<' or '>'.
func NormalizeHTML(html string) string {
	text := scriptStyleRegex.ReplaceAllString(html, " ")
	text = htmlCommentRegex.ReplaceAllString(text, " ")

	// Keep line structure before the remaining tags go away
	text = blockBreakRegex.ReplaceAllString(text, "\n")
	text = tagRegex.ReplaceAllString(text, " ")

	// Decode after stripping so escaped markup stays text, then drop
	// whatever angle brackets the decoding produced
	text = decodeEntities(text)
	text = strings.NewReplacer("<", " ", ">", " ").Replace(text)

	text, _, _ = transform.String(transform.Chain(norm.NFC), text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalWSRegex.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = excessNewlineRegex.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// decodeEntities repeats until nothing changes, so "&amp;amp;" ends as "&".
func decodeEntities(text string) string {
	for {
		next := entityReplacer.Replace(text)
		if next == text {
			return text
		}
		text = next
	}
}

// SplitLines returns the non-empty lines of normalized text in order.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
