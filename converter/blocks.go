package converter

import "strings"

// blockTag maps a non-atomic block type to its wrapping tag. Unknown types
// return "" and are rendered as paragraphs with a warning.
func blockTag(blockType BlockType) string {
	switch blockType {
	case BlockUnstyled:
		return "p"
	case BlockHeaderOne:
		return "h1"
	case BlockHeaderTwo:
		return "h2"
	case BlockHeaderThree:
		return "h3"
	case BlockHeaderFour:
		return "h4"
	case BlockHeaderFive:
		return "h5"
	case BlockHeaderSix:
		return "h6"
	case BlockBlockquote:
		return "blockquote"
	case BlockCode:
		return "pre"
	}
	return ""
}

// listTag maps list-item block types to their wrapping list tag.
func listTag(blockType BlockType) string {
	switch blockType {
	case BlockUnorderedListItem:
		return "ul"
	case BlockOrderedListItem:
		return "ol"
	}
	return ""
}

func isEmptyUnstyled(block Block) bool {
	return block.Type == BlockUnstyled && block.Text == "" && len(block.EntityRanges) == 0
}

// convertBlocks renders the ordered block list into one HTML string.
func (s *state) convertBlocks() (string, error) {
	var sb strings.Builder

	blocks := s.content.Blocks
	for i := 0; i < len(blocks); i++ {
		block := blocks[i]

		// A run of consecutive empty paragraphs folds into one <p></p>
		// followed by a <br> per additional blank line.
		if isEmptyUnstyled(block) {
			run := 1
			for i+run < len(blocks) && isEmptyUnstyled(blocks[i+run]) {
				run++
			}
			sb.WriteString("<p></p>")
			sb.WriteString(strings.Repeat("<br>", run-1))
			i += run - 1
			continue
		}

		if listTag(block.Type) != "" {
			consumed, err := s.convertListRun(&sb, blocks[i:])
			if err != nil {
				return "", err
			}
			i += consumed - 1
			continue
		}

		if block.Type == BlockAtomic {
			if err := s.convertAtomicBlock(&sb, block); err != nil {
				return "", err
			}
			continue
		}

		if err := s.convertSimpleBlock(&sb, block); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

func (s *state) convertSimpleBlock(sb *strings.Builder, block Block) error {
	tag := blockTag(block.Type)
	if tag == "" {
		s.addWarning(WarningUnknownNode, string(block.Type), "unknown block type rendered as paragraph")
		tag = "p"
	}

	inner, err := s.convertBlockText(block)
	if err != nil {
		return err
	}

	sb.WriteString("<" + tag + ">")
	sb.WriteString(inner)
	sb.WriteString("</" + tag + ">")
	return nil
}

// convertAtomicBlock wraps the rendered entity in the outer atomic figure.
// The inner markup comes from the same inline walk as text blocks, so any
// block text outside the entity placeholder leaks through as raw text; the
// cleanup pass strips it again.
func (s *state) convertAtomicBlock(sb *strings.Builder, block Block) error {
	if len(block.EntityRanges) == 0 {
		s.addWarning(WarningMissingEntity, string(BlockAtomic), "atomic block has no entity range, rendered as paragraph")
		return s.convertSimpleBlock(sb, Block{
			Type:              BlockUnstyled,
			Text:              block.Text,
			InlineStyleRanges: block.InlineStyleRanges,
		})
	}

	entity, ok := s.content.Entity(block.EntityRanges[0])
	if !ok {
		return &MissingEntityError{Key: block.EntityRanges[0].Key}
	}

	resolved, ok := s.kinds.entities[entity.Type]
	if !ok {
		return &UnrecognizedEntityError{Entity: entity.Type}
	}

	inner, err := s.convertBlockText(block)
	if err != nil {
		return err
	}

	// Dividers render bare, with no figure of any kind.
	if resolved.name == KindDivider {
		sb.WriteString(inner)
		return nil
	}

	class := "atomic"
	if resolved.kind.CSSClass != "" {
		class += " " + resolved.kind.CSSClass + "-block"
	}
	sb.WriteString(`<figure class="` + class + `">`)
	sb.WriteString(inner)
	sb.WriteString("</figure>")
	return nil
}

// convertListRun renders a run of consecutive list-item blocks, opening and
// closing nested list wrappers as the item depth rises and falls.
func (s *state) convertListRun(sb *strings.Builder, blocks []Block) (int, error) {
	var open []string

	consumed := 0
	for consumed < len(blocks) {
		block := blocks[consumed]
		tag := listTag(block.Type)
		if tag == "" {
			break
		}

		depth := block.Depth
		if depth < 0 {
			depth = 0
		}

		for len(open) > depth+1 || (len(open) == depth+1 && open[len(open)-1] != tag) {
			sb.WriteString("</" + open[len(open)-1] + ">")
			open = open[:len(open)-1]
		}
		for len(open) < depth+1 {
			sb.WriteString("<" + tag + ">")
			open = append(open, tag)
		}

		inner, err := s.convertBlockText(block)
		if err != nil {
			return 0, err
		}
		sb.WriteString("<li>" + inner + "</li>")
		consumed++
	}

	for i := len(open) - 1; i >= 0; i-- {
		sb.WriteString("</" + open[i] + ">")
	}
	return consumed, nil
}
