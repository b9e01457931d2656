package converter

import "strconv"

// BlockType identifies the kind of a content block.
type BlockType string

const (
	BlockUnstyled          BlockType = "unstyled"
	BlockAtomic            BlockType = "atomic"
	BlockHeaderOne         BlockType = "header-one"
	BlockHeaderTwo         BlockType = "header-two"
	BlockHeaderThree       BlockType = "header-three"
	BlockHeaderFour        BlockType = "header-four"
	BlockHeaderFive        BlockType = "header-five"
	BlockHeaderSix         BlockType = "header-six"
	BlockBlockquote        BlockType = "blockquote"
	BlockCode              BlockType = "code-block"
	BlockUnorderedListItem BlockType = "unordered-list-item"
	BlockOrderedListItem   BlockType = "ordered-list-item"
)

// Mutability describes how an entity range reacts to edits of the text it
// covers. The converter carries it through round trips but never acts on it.
type Mutability string

const (
	MutabilityImmutable Mutability = "IMMUTABLE"
	MutabilityMutable   Mutability = "MUTABLE"
	MutabilitySegmented Mutability = "SEGMENTED"
)

// ContentState is the root of the document model: an ordered block list plus
// the entity map the blocks' entity ranges point into. Entity map keys are the
// decimal form of the range keys.
type ContentState struct {
	Blocks    []Block           `json:"blocks"`
	EntityMap map[string]Entity `json:"entityMap"`
}

// Block is one content block. Offset and Length fields of the attached ranges
// index Text in UTF-16 code units, not bytes or runes.
type Block struct {
	Type              BlockType              `json:"type"`
	Depth             int                    `json:"depth"`
	Text              string                 `json:"text"`
	InlineStyleRanges []InlineStyleRange     `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange          `json:"entityRanges"`
	Data              map[string]interface{} `json:"data,omitempty"`
}

// InlineStyleRange applies one style id to a span of block text.
type InlineStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// EntityRange binds a span of block text to an entity in the entity map.
type EntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// Entity is a non-text document object referenced from block text.
type Entity struct {
	Type       string                 `json:"type"`
	Mutability Mutability             `json:"mutability"`
	Data       map[string]interface{} `json:"data"`
}

// Entity resolves an entity range against the content's entity map.
func (c ContentState) Entity(r EntityRange) (Entity, bool) {
	entity, ok := c.EntityMap[strconv.Itoa(r.Key)]
	return entity, ok
}

// TextLength returns the length of s in UTF-16 code units, the unit range
// offsets and lengths are expressed in. Runes outside the basic multilingual
// plane count as two units.
func TextLength(s string) int {
	units := 0
	for _, r := range s {
		units++
		if r > 0xFFFF {
			units++
		}
	}
	return units
}

// GetStringData returns a string field from entity data, or fallback when the
// field is absent or not a string.
func (e Entity) GetStringData(key, fallback string) string {
	if e.Data == nil {
		return fallback
	}
	if value, ok := e.Data[key].(string); ok {
		return value
	}
	return fallback
}

// GetBoolData returns a bool field from entity data, false when absent or not
// a bool.
func (e Entity) GetBoolData(key string) bool {
	if e.Data == nil {
		return false
	}
	value, ok := e.Data[key].(bool)
	return ok && value
}
