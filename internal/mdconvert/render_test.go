package mdconvert_test

import (
	"encoding/json"
	"testing"

	"github.com/kaelwright/readable/internal/docmeta"
	"github.com/kaelwright/readable/internal/mdconvert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Text(t *testing.T) {
	node := parseHTML(t, `<html><body><div><p>Hello there.</p><p>Second graf.</p></div></body></html>`)
	rule := createTestRule()

	out, err := mdconvert.Render(rule, node, docmeta.Metadata{}, mdconvert.FormatText, "")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.\n\nSecond graf.", string(out))
}

func TestRender_HTML(t *testing.T) {
	node := parseHTML(t, `<html><body><p>Hello there.</p></body></html>`)
	rule := createTestRule()

	out, err := mdconvert.Render(rule, node, docmeta.Metadata{}, mdconvert.FormatHTML, "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<p>Hello there.</p>")
}

func TestRender_Markdown(t *testing.T) {
	node := parseHTML(t, `<html><body><p>Hello there.</p></body></html>`)
	rule := createTestRule()

	out, err := mdconvert.Render(rule, node, docmeta.Metadata{}, mdconvert.FormatMarkdown, "")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", string(out))
}

func TestRender_JSON(t *testing.T) {
	node := parseHTML(t, `<html><body><p>Hello there.</p></body></html>`)
	rule := createTestRule()
	meta := docmeta.NewMetadata("Page", "Article", "Jane", "Desc", "Site", "2024-01-01T00:00:00Z")

	out, err := mdconvert.Render(rule, node, meta, mdconvert.FormatJSON, "deadbeef")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Article", decoded["articleTitle"])
	assert.Equal(t, "deadbeef", decoded["contentHash"])
	assert.Equal(t, "Hello there.", decoded["markdown"])
}

func TestRender_UnknownFormat(t *testing.T) {
	node := parseHTML(t, `<html><body><p>x</p></body></html>`)
	rule := createTestRule()

	_, err := mdconvert.Render(rule, node, docmeta.Metadata{}, mdconvert.Format("yaml"), "")
	require.Error(t, err)
}
