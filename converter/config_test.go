package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestZeroConfigUsable(t *testing.T) {
	conv, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, conv.config.Validate())
}

func TestValidateMissingRequiredStyleKind(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	delete(cfg.Styles, KindAlignCenter)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required kind")
}

func TestValidateMissingRequiredEntityKind(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	delete(cfg.Entities, KindDivider)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required kind")
}

func TestValidateEmptyStyleKindName(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	cfg.Styles[""] = StyleKind{ID: "X"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty kind name")
}

func TestValidateEmptyStyleID(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	kind := cfg.Styles[KindBold]
	kind.ID = "  "
	cfg.Styles[KindBold] = kind

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}

func TestValidateDuplicateStyleID(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	cfg.Styles["loud"] = StyleKind{ID: "BOLD"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `style id "BOLD" declared by both`)
}

func TestValidateEmptyCSSDeclaration(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	kind := cfg.Styles[KindBold]
	kind.CSS = []Declaration{{Property: "", Value: "bold"}}
	cfg.Styles[KindBold] = kind

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSS declaration with empty property or value")
}

func TestValidateEmptyEntityID(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	kind := cfg.Entities[KindPhoto]
	kind.ID = ""
	cfg.Entities[KindPhoto] = kind

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}

func TestValidateDuplicateEntityID(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	cfg.Entities["embed"] = EntityKind{ID: "PHOTO", Render: renderPhoto}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `entity id "PHOTO" declared by both`)
}

func TestValidateEntityWithoutRenderer(t *testing.T) {
	// Only the link kind may omit its renderer; it renders as an anchor
	// around the covered text instead of a self-contained fragment.
	cfg := (Config{}).applyDefaults()
	cfg.Entities["embed"] = EntityKind{ID: "EMBED", CSSClass: "embed"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `entity kind "embed" has no renderer`)
}

func TestNewClonesConfig(t *testing.T) {
	cfg := DefaultConfig()
	conv := newTestConverter(t, cfg)

	// Mutating the caller's maps after New must not reach the converter.
	cfg.Styles[KindBold] = StyleKind{ID: "CHANGED"}

	input := []byte(`{"blocks":[{"type":"unstyled","text":"bold","inlineStyleRanges":[{"offset":0,"length":4,"style":"BOLD"}],"entityRanges":[]}],"entityMap":{}}`)
	result, err := conv.Convert(input)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, "font-weight:bold")
}

func TestConfigSerialization(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	cfg.Styles["highlight"] = StyleKind{
		ID:       "HIGHLIGHT",
		CSSClass: "toolbar-highlight",
		CSS:      []Declaration{{Property: "background-color", Value: "yellow"}},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, cfg.Styles["highlight"], decoded.Styles["highlight"])
	assert.Equal(t, "PHOTO", decoded.Entities[KindPhoto].ID)
	assert.Equal(t, "photo", decoded.Entities[KindPhoto].CSSClass)
}

func TestConfigSerializationExcludesRenderers(t *testing.T) {
	cfg := (Config{}).applyDefaults()

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Render")
	assert.NotContains(t, string(data), "render")
}
