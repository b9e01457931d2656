package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkov/draft-html-converter/converter"
)

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, converter.Config{}, cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"styles": {
			"highlight": {"id": "HIGHLIGHT", "css": [{"property": "background-color", "value": "yellow"}]}
		},
		"entities": {
			"photo": {"id": "IMG", "cssClass": "photo"}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, converter.StyleKind{
		ID:  "HIGHLIGHT",
		CSS: []converter.Declaration{{Property: "background-color", Value: "yellow"}},
	}, cfg.Styles["highlight"])
	assert.Equal(t, "IMG", cfg.Entities["photo"].ID)
	assert.Equal(t, "photo", cfg.Entities["photo"].CSSClass)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestContentJSONFormatting(t *testing.T) {
	content := converter.ContentState{
		Blocks: []converter.Block{
			{Type: converter.BlockUnstyled, Text: "hi"},
		},
		EntityMap: map[string]converter.Entity{},
	}

	compact, err := contentJSON(content, true)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")

	indented, err := contentJSON(content, false)
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  ")

	assert.JSONEq(t, string(compact), string(indented))
}
