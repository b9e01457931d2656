package converter

import (
	"html"
	"sort"
	"strings"
	"unicode/utf16"
)

// convertBlockText renders one block's text: entity ranges splice in entity
// markup, the text between them becomes style-wrapped escaped runs. All range
// arithmetic happens on the UTF-16 code units the model's offsets refer to.
func (s *state) convertBlockText(block Block) (string, error) {
	units := utf16.Encode([]rune(block.Text))

	var sb strings.Builder
	pos := 0
	for _, r := range sortedEntityRanges(block.EntityRanges) {
		start, end := clampRange(r.Offset, r.Length, len(units))
		if start < pos {
			s.addWarning(WarningDroppedFeature, "entityRange", "overlapping entity range skipped")
			continue
		}

		styled, err := s.convertStyledText(block, units, pos, start)
		if err != nil {
			return "", err
		}
		sb.WriteString(styled)

		entity, ok := s.content.Entity(r)
		if !ok {
			return "", &MissingEntityError{Key: r.Key}
		}
		covered := html.EscapeString(decodeUnits(units, start, end))
		markup, err := s.renderEntityMarkup(entity, covered)
		if err != nil {
			return "", err
		}
		sb.WriteString(markup)
		pos = end
	}

	styled, err := s.convertStyledText(block, units, pos, len(units))
	if err != nil {
		return "", err
	}
	sb.WriteString(styled)

	return sb.String(), nil
}

// convertStyledText renders the slice [from, to) of the block text, splitting
// it into runs of identical active style sets and nesting one span per active
// style. The innermost span is the style whose range opened last.
func (s *state) convertStyledText(block Block, units []uint16, from, to int) (string, error) {
	if from >= to {
		return "", nil
	}

	var sb strings.Builder
	pos := from
	for pos < to {
		end := to
		for _, r := range block.InlineStyleRanges {
			start, stop := clampRange(r.Offset, r.Length, len(units))
			if start > pos && start < end {
				end = start
			}
			if stop > pos && stop < end {
				end = stop
			}
		}

		active := activeStyleRanges(block.InlineStyleRanges, pos, len(units))
		for _, r := range active {
			open, err := s.styleSpanOpen(r.Style)
			if err != nil {
				return "", err
			}
			sb.WriteString(open)
		}
		sb.WriteString(html.EscapeString(decodeUnits(units, pos, end)))
		sb.WriteString(strings.Repeat("</span>", len(active)))
		pos = end
	}

	return sb.String(), nil
}

// activeStyleRanges returns the style ranges covering pos, outermost first:
// ordered by opening offset, ties broken by declaration order.
func activeStyleRanges(ranges []InlineStyleRange, pos, n int) []InlineStyleRange {
	var active []InlineStyleRange
	for _, r := range ranges {
		start, stop := clampRange(r.Offset, r.Length, n)
		if start <= pos && pos < stop {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Offset < active[j].Offset
	})
	return active
}

func sortedEntityRanges(ranges []EntityRange) []EntityRange {
	if len(ranges) < 2 {
		return ranges
	}
	sorted := append([]EntityRange(nil), ranges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// clampRange clips a range to [0, n) and returns its start and end positions.
func clampRange(offset, length, n int) (int, int) {
	start := offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := offset + length
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	return start, end
}

func decodeUnits(units []uint16, from, to int) string {
	if from >= to {
		return ""
	}
	return string(utf16.Decode(units[from:to]))
}
