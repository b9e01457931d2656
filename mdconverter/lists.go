package mdconverter

import (
	"github.com/avelkov/draft-html-converter/converter"
	"github.com/yuin/goldmark/ast"
)

// convertListNode flattens a markdown list into list-item blocks. Nesting
// survives as block depth, list kind as the block type. Task list checkboxes
// are imported as literal markers by the inline walk.
func (s *state) convertListNode(node *ast.List, depth int) error {
	blockType := converter.BlockUnorderedListItem
	if node.IsOrdered() {
		blockType = converter.BlockOrderedListItem
	}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		if err := s.convertListItemNode(item, blockType, depth); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) convertListItemNode(item *ast.ListItem, blockType converter.BlockType, depth int) error {
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.TextBlock:
			s.convertParagraphLike(typed, blockType, depth)
		case *ast.Paragraph:
			s.convertParagraphLike(typed, blockType, depth)
		case *ast.List:
			if err := s.convertListNode(typed, depth+1); err != nil {
				return err
			}
		default:
			// Code blocks and other block content inside a list item
			// keep their own block types and interrupt the list.
			if err := s.convertBlockNode(child); err != nil {
				return err
			}
		}
	}
	return nil
}
