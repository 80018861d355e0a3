// external/plaintext.go
package external

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSnippet = 300

var blankRuns = regexp.MustCompile(`\s+`)

// PlainText converts an upstream error body (often an HTML error page) into a
// short single-line string suitable for logs and wrapped errors.
func PlainText(body []byte) string {
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "<") {
		text = strings.ReplaceAll(text, "<br>", "\n")
		text = strings.ReplaceAll(text, "<br/>", "\n")
		text = strings.ReplaceAll(text, "</p>", "\n")
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			doc.Find("script, style, head").Remove()
			var parts []string
			doc.Find("*").Contents().Each(func(_ int, s *goquery.Selection) {
				if goquery.NodeName(s) == "#text" {
					parts = append(parts, s.Text())
				}
			})
			text = strings.Join(parts, " ")
		}
	}
	text = strings.TrimSpace(blankRuns.ReplaceAllString(text, " "))
	if len(text) > maxSnippet {
		text = text[:maxSnippet] + "..."
	}
	return text
}
