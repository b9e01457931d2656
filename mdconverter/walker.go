package mdconverter

import (
	"fmt"
	"strings"

	"github.com/avelkov/draft-html-converter/converter"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

var headingBlockTypes = map[int]converter.BlockType{
	1: converter.BlockHeaderOne,
	2: converter.BlockHeaderTwo,
	3: converter.BlockHeaderThree,
	4: converter.BlockHeaderFour,
	5: converter.BlockHeaderFive,
	6: converter.BlockHeaderSix,
}

func (s *state) convertDocument(root ast.Node) error {
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if err := s.convertBlockNode(child); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) convertBlockNode(node ast.Node) error {
	switch typed := node.(type) {
	case *ast.Paragraph:
		s.convertParagraphLike(typed, converter.BlockUnstyled, 0)
	case *ast.TextBlock:
		s.convertParagraphLike(typed, converter.BlockUnstyled, 0)
	case *ast.Heading:
		s.convertHeadingNode(typed)
	case *ast.Blockquote:
		return s.convertBlockquoteNode(typed)
	case *ast.ThematicBreak:
		s.emitAtomicBlock(s.kinds.divider, converter.MutabilityImmutable, map[string]interface{}{})
	case *ast.FencedCodeBlock:
		s.convertFencedCodeBlockNode(typed)
	case *ast.CodeBlock:
		s.convertCodeBlockNode(typed)
	case *ast.List:
		return s.convertListNode(typed, 0)
	case *ast.HTMLBlock:
		return s.convertHTMLBlockNode(typed)
	case *extast.Table:
		s.convertTableNode(typed)
	default:
		nodeKind := node.Kind().String()
		textValue := strings.TrimSpace(string(node.Text(s.source)))
		if textValue == "" {
			return nil
		}
		s.addWarning(
			converter.WarningUnknownNode,
			nodeKind,
			fmt.Sprintf("unsupported markdown block node: %s", nodeKind),
		)
		b := newBlockBuilder()
		b.append(textValue, nil)
		s.emitTextBlock(converter.BlockUnstyled, 0, b)
	}
	return nil
}

// convertParagraphLike builds one text block from a paragraph's inline
// content. The block type is the caller's: paragraphs inside blockquotes and
// list items carry the container's type. A paragraph holding nothing but an
// image becomes a photo block instead.
func (s *state) convertParagraphLike(node ast.Node, blockType converter.BlockType, depth int) {
	if image, ok := soleImage(node); ok {
		s.emitPhoto(image)
		return
	}

	b := newBlockBuilder()
	s.convertInlineChildren(node, b, newStyleStack())
	s.emitTextBlock(blockType, depth, b)
}

func (s *state) convertHeadingNode(node *ast.Heading) {
	blockType, ok := headingBlockTypes[node.Level]
	if !ok {
		blockType = converter.BlockHeaderSix
	}

	b := newBlockBuilder()
	s.convertInlineChildren(node, b, newStyleStack())
	s.emitTextBlock(blockType, 0, b)
}

// convertBlockquoteNode flattens a blockquote into blockquote-typed blocks,
// one per contained paragraph. Nested non-paragraph blocks keep their own
// types.
func (s *state) convertBlockquoteNode(node *ast.Blockquote) error {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Paragraph:
			s.convertParagraphLike(typed, converter.BlockBlockquote, 0)
		case *ast.TextBlock:
			s.convertParagraphLike(typed, converter.BlockBlockquote, 0)
		default:
			if err := s.convertBlockNode(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *state) convertFencedCodeBlockNode(node *ast.FencedCodeBlock) {
	language := strings.TrimSpace(string(node.Language(s.source)))
	textValue := strings.TrimRight(string(node.Text(s.source)), "\n")

	block := converter.Block{
		Type:              converter.BlockCode,
		Text:              textValue,
		InlineStyleRanges: []converter.InlineStyleRange{},
		EntityRanges:      []converter.EntityRange{},
	}
	if language != "" {
		block.Data = map[string]interface{}{"language": language}
	}
	s.blocks = append(s.blocks, block)
}

func (s *state) convertCodeBlockNode(node *ast.CodeBlock) {
	textValue := strings.TrimRight(string(node.Text(s.source)), "\n")

	s.blocks = append(s.blocks, converter.Block{
		Type:              converter.BlockCode,
		Text:              textValue,
		InlineStyleRanges: []converter.InlineStyleRange{},
		EntityRanges:      []converter.EntityRange{},
	})
}

// emitTextBlock appends the built block unless it is empty. Empty builders
// come from paragraphs whose entire content degraded away.
func (s *state) emitTextBlock(blockType converter.BlockType, depth int, b *blockBuilder) {
	if b.length == 0 && len(b.entities) == 0 {
		return
	}

	styles := b.styles
	if styles == nil {
		styles = []converter.InlineStyleRange{}
	}
	entities := b.entities
	if entities == nil {
		entities = []converter.EntityRange{}
	}

	s.blocks = append(s.blocks, converter.Block{
		Type:              blockType,
		Depth:             depth,
		Text:              b.text.String(),
		InlineStyleRanges: styles,
		EntityRanges:      entities,
	})
}

// emitAtomicBlock registers an entity and appends the atomic block carrying
// it, a single placeholder character covered by the entity range.
func (s *state) emitAtomicBlock(entityType string, mutability converter.Mutability, data map[string]interface{}) {
	key := s.registerEntity(converter.Entity{
		Type:       entityType,
		Mutability: mutability,
		Data:       data,
	})

	s.blocks = append(s.blocks, converter.Block{
		Type:              converter.BlockAtomic,
		Text:              " ",
		InlineStyleRanges: []converter.InlineStyleRange{},
		EntityRanges:      []converter.EntityRange{{Offset: 0, Length: 1, Key: key}},
	})
}

func (s *state) emitPhoto(image *ast.Image) {
	data := map[string]interface{}{
		"src": strings.TrimSpace(string(image.Destination)),
	}
	if alt := strings.TrimSpace(string(image.Text(s.source))); alt != "" {
		data["caption"] = alt
	}
	s.emitAtomicBlock(s.kinds.photo, converter.MutabilityImmutable, data)
}

func soleImage(node ast.Node) (*ast.Image, bool) {
	if node.ChildCount() != 1 {
		return nil, false
	}
	image, ok := node.FirstChild().(*ast.Image)
	return image, ok
}
