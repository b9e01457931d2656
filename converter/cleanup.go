package converter

import "regexp"

// Atomic block text beyond the entity placeholder leaks into the outer
// figure as raw text siblings of the nested custom-block figure. The two
// patterns anchor on that exact shape: text between the atomic figure's
// opening tag and the nested figure, and text between the nested figure's
// closing tag and the outer one. Entity renderers never emit bare text at
// either position, so anything matching is stray.
var (
	strayBeforeFigureRe = regexp.MustCompile(`(<figure class="atomic[^"]*">)([^<]+)(<figure)`)
	strayAfterFigureRe  = regexp.MustCompile(`(</figure>)([^<]+)(</figure>)`)
)

// cleanStrayFigureText strips stray text siblings of nested figures from the
// rendered document. Idempotent: a clean document passes through unchanged.
func cleanStrayFigureText(html string) (string, bool) {
	cleaned := strayBeforeFigureRe.ReplaceAllString(html, "${1}${3}")
	cleaned = strayAfterFigureRe.ReplaceAllString(cleaned, "${1}${3}")
	return cleaned, cleaned != html
}
