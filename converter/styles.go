package converter

import "strings"

// styleSpanOpen renders the opening <span> for one inline style id. The three
// alignment kinds render the fixed display:block shape so the alignment
// applies to the whole line; every other style renders its configured
// declarations in order. The span carries no text, callers nest the content.
func (s *state) styleSpanOpen(styleID string) (string, error) {
	resolved, ok := s.kinds.styles[styleID]
	if !ok {
		return "", &UnrecognizedStyleError{Style: styleID}
	}

	var css strings.Builder
	if resolved.alignment != "" {
		css.WriteString("display:block;text-align:")
		css.WriteString(resolved.alignment)
		css.WriteString(";")
	} else {
		for _, declaration := range resolved.kind.CSS {
			css.WriteString(declaration.Property)
			css.WriteString(":")
			css.WriteString(declaration.Value)
			css.WriteString(";")
		}
	}

	return `<span style="` + css.String() + `">`, nil
}
