package converter

import (
	"fmt"
	"strings"
)

// Semantic kind names used as keys of the configuration table. The converter
// dispatches on these names, never on the ids, so deployments can rename ids
// without touching conversion logic.
const (
	KindLink    = "link"
	KindPhoto   = "photo"
	KindFile    = "file"
	KindDivider = "divider"
	KindRich    = "rich"
	KindTable   = "table"

	KindBold          = "bold"
	KindItalic        = "italic"
	KindUnderline     = "underline"
	KindStrikethrough = "strikethrough"
	KindCode          = "code"
	KindAlignLeft     = "alignLeft"
	KindAlignCenter   = "alignCenter"
	KindAlignRight    = "alignRight"
)

// RenderFunc renders one entity into a self-contained markup fragment.
type RenderFunc func(entity Entity) (string, error)

// Declaration is one CSS property/value pair. Order of declarations in a
// StyleKind is preserved in the rendered style attribute.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// StyleKind declares one recognized inline style: the id documents carry and
// the CSS it renders to. The three alignment kinds ignore CSS and render the
// fixed display:block;text-align shape instead. CSSClass is carried for the
// toolbar table's schema; export renders style attributes and never reads it.
type StyleKind struct {
	ID       string        `json:"id"`
	CSSClass string        `json:"cssClass,omitempty"`
	CSS      []Declaration `json:"css,omitempty"`
}

// EntityKind declares one recognized entity kind: the type id documents
// carry, the CSS class of its custom-block figure, and its renderer. A nil
// Render falls back to the built-in renderer for the default kind names.
type EntityKind struct {
	ID       string     `json:"id"`
	CSSClass string     `json:"cssClass,omitempty"`
	Render   RenderFunc `json:"-"`
}

// Config is the recognized-kind table both conversion directions are
// parameterized over, keyed by semantic kind name.
type Config struct {
	Styles   map[string]StyleKind  `json:"styles,omitempty"`
	Entities map[string]EntityKind `json:"entities,omitempty"`
}

// alignmentValues maps the three alignment kind names to their text-align
// value. Membership in this map is what switches a style onto the
// display:block rendering path.
var alignmentValues = map[string]string{
	KindAlignLeft:   "left",
	KindAlignCenter: "center",
	KindAlignRight:  "right",
}

var requiredStyleKinds = []string{KindAlignLeft, KindAlignCenter, KindAlignRight}

var requiredEntityKinds = []string{KindLink, KindPhoto, KindFile, KindDivider, KindRich, KindTable}

// DefaultConfig returns the kind table of the stock editor toolbar.
func DefaultConfig() Config {
	return Config{
		Styles:   defaultStyleKinds(),
		Entities: defaultEntityKinds(),
	}
}

func defaultStyleKinds() map[string]StyleKind {
	return map[string]StyleKind{
		KindBold:          {ID: "BOLD", CSS: []Declaration{{"font-weight", "bold"}}},
		KindItalic:        {ID: "ITALIC", CSS: []Declaration{{"font-style", "italic"}}},
		KindUnderline:     {ID: "UNDERLINE", CSS: []Declaration{{"text-decoration", "underline"}}},
		KindStrikethrough: {ID: "STRIKETHROUGH", CSS: []Declaration{{"text-decoration", "line-through"}}},
		KindCode:          {ID: "CODE", CSS: []Declaration{{"font-family", "monospace"}}},
		KindAlignLeft:     {ID: "ALIGN_LEFT"},
		KindAlignCenter:   {ID: "ALIGN_CENTER"},
		KindAlignRight:    {ID: "ALIGN_RIGHT"},
	}
}

func defaultEntityKinds() map[string]EntityKind {
	return map[string]EntityKind{
		KindLink:    {ID: "LINK"},
		KindPhoto:   {ID: "PHOTO", CSSClass: "photo", Render: renderPhoto},
		KindFile:    {ID: "DOCUMENT", CSSClass: "document", Render: renderFile},
		KindDivider: {ID: "DIVIDER", Render: renderDivider},
		KindRich:    {ID: "RICH", CSSClass: "rich", Render: renderRich},
		KindTable:   {ID: "TABLE", CSSClass: "table", Render: renderTable},
	}
}

func (c Config) applyDefaults() Config {
	if c.Styles == nil {
		c.Styles = defaultStyleKinds()
	}
	if c.Entities == nil {
		c.Entities = defaultEntityKinds()
	}
	defaults := defaultEntityKinds()
	for name, kind := range c.Entities {
		if kind.Render == nil {
			kind.Render = defaults[name].Render
			c.Entities[name] = kind
		}
	}

	return c
}

// clone returns a deep copy of Config for map-backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.Styles = cloneStyleKindMap(c.Styles)
	cloned.Entities = cloneEntityKindMap(c.Entities)
	return cloned
}

// Validate checks that the kind table is complete and unambiguous.
func (c Config) Validate() error {
	for _, name := range requiredStyleKinds {
		if _, ok := c.Styles[name]; !ok {
			return fmt.Errorf("styles table is missing required kind %q", name)
		}
	}
	for _, name := range requiredEntityKinds {
		if _, ok := c.Entities[name]; !ok {
			return fmt.Errorf("entities table is missing required kind %q", name)
		}
	}

	styleIDs := make(map[string]string, len(c.Styles))
	for name, kind := range c.Styles {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("styles table contains empty kind name")
		}
		if strings.TrimSpace(kind.ID) == "" {
			return fmt.Errorf("style kind %q has empty id", name)
		}
		if other, seen := styleIDs[kind.ID]; seen {
			return fmt.Errorf("style id %q declared by both %q and %q", kind.ID, other, name)
		}
		styleIDs[kind.ID] = name
		for _, declaration := range kind.CSS {
			if strings.TrimSpace(declaration.Property) == "" || strings.TrimSpace(declaration.Value) == "" {
				return fmt.Errorf("style kind %q has a CSS declaration with empty property or value", name)
			}
		}
	}

	entityIDs := make(map[string]string, len(c.Entities))
	for name, kind := range c.Entities {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("entities table contains empty kind name")
		}
		if strings.TrimSpace(kind.ID) == "" {
			return fmt.Errorf("entity kind %q has empty id", name)
		}
		if other, seen := entityIDs[kind.ID]; seen {
			return fmt.Errorf("entity id %q declared by both %q and %q", kind.ID, other, name)
		}
		entityIDs[kind.ID] = name
		if kind.Render == nil && name != KindLink {
			return fmt.Errorf("entity kind %q has no renderer", name)
		}
	}

	return nil
}

// kindIndex is the config resolved into per-id lookup tables. Built once in
// New so per-call conversion never searches the name-keyed maps.
type kindIndex struct {
	styles   map[string]resolvedStyle
	entities map[string]resolvedEntity
}

type resolvedStyle struct {
	name      string
	kind      StyleKind
	alignment string
}

type resolvedEntity struct {
	name string
	kind EntityKind
}

func (c Config) resolve() kindIndex {
	index := kindIndex{
		styles:   make(map[string]resolvedStyle, len(c.Styles)),
		entities: make(map[string]resolvedEntity, len(c.Entities)),
	}
	for name, kind := range c.Styles {
		index.styles[kind.ID] = resolvedStyle{
			name:      name,
			kind:      kind,
			alignment: alignmentValues[name],
		}
	}
	for name, kind := range c.Entities {
		index.entities[kind.ID] = resolvedEntity{name: name, kind: kind}
	}

	return index
}

func cloneStyleKindMap(src map[string]StyleKind) map[string]StyleKind {
	if src == nil {
		return nil
	}

	dst := make(map[string]StyleKind, len(src))
	for key, value := range src {
		value.CSS = append([]Declaration(nil), value.CSS...)
		dst[key] = value
	}

	return dst
}

func cloneEntityKindMap(src map[string]EntityKind) map[string]EntityKind {
	if src == nil {
		return nil
	}

	dst := make(map[string]EntityKind, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}
