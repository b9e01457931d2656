package converter

import "html"

// renderEntityMarkup renders the markup for one entity reference. innerHTML
// carries the already-escaped text covered by the range; the link kind nests
// it, every other kind renders self-contained markup wrapped in its
// custom-block figure. Dividers render bare.
func (s *state) renderEntityMarkup(entity Entity, innerHTML string) (string, error) {
	resolved, ok := s.kinds.entities[entity.Type]
	if !ok {
		return "", &UnrecognizedEntityError{Entity: entity.Type}
	}

	if resolved.name == KindLink {
		if resolved.kind.Render != nil {
			return resolved.kind.Render(entity)
		}
		return renderAnchor(entity, innerHTML)
	}

	fragment, err := resolved.kind.Render(entity)
	if err != nil {
		return "", err
	}

	if resolved.name == KindDivider {
		return fragment, nil
	}

	return `<figure class="content-editor__custom-block ` + resolved.kind.CSSClass + `">` + fragment + `</figure>`, nil
}

// renderAnchor renders the link kind as an anchor around the covered text.
// External links open in a new tab and carry the noopener guard.
func renderAnchor(entity Entity, innerHTML string) (string, error) {
	url := entity.GetStringData("url", "")
	if url == "" {
		return "", &MalformedEntityDataError{Entity: entity.Type, Field: "url"}
	}

	target := "_self"
	rel := ""
	if entity.GetBoolData("external") {
		target = "_blank"
		rel = ` rel="noopener"`
	}

	return `<a href="` + html.EscapeString(url) + `" target="` + target + `"` + rel + `>` + innerHTML + `</a>`, nil
}
