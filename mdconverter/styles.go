package mdconverter

import (
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
)

// styleStack tracks the style ids open at the current point of the inline
// walk. Pushing an empty id is a no-op, which is how unconfigured style kinds
// degrade to plain text.
type styleStack struct {
	ids []string
}

func newStyleStack() *styleStack {
	return &styleStack{}
}

func (s *styleStack) push(id string) {
	if id == "" {
		return
	}
	s.ids = append(s.ids, id)
}

func (s *styleStack) popByID(id string) bool {
	for i := len(s.ids) - 1; i >= 0; i-- {
		if s.ids[i] != id {
			continue
		}
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		return true
	}
	return false
}

func (s *styleStack) current() []string {
	if len(s.ids) == 0 {
		return nil
	}
	return append([]string(nil), s.ids...)
}

// blockBuilder accumulates one block's text and ranges. length counts UTF-16
// code units. Ranges of the same style that meet end to start are extended in
// place rather than recorded twice.
type blockBuilder struct {
	text      strings.Builder
	length    int
	styles    []converter.InlineStyleRange
	entities  []converter.EntityRange
	lastStyle map[string]int
}

func newBlockBuilder() *blockBuilder {
	return &blockBuilder{lastStyle: make(map[string]int, 4)}
}

func (b *blockBuilder) append(text string, styleIDs []string) {
	if text == "" {
		return
	}

	offset := b.length
	b.text.WriteString(text)
	units := converter.TextLength(text)
	b.length += units

	for _, id := range styleIDs {
		if index, ok := b.lastStyle[id]; ok {
			prev := &b.styles[index]
			if prev.Offset+prev.Length == offset {
				prev.Length += units
				continue
			}
		}
		b.styles = append(b.styles, converter.InlineStyleRange{
			Offset: offset,
			Length: units,
			Style:  id,
		})
		b.lastStyle[id] = len(b.styles) - 1
	}
}
