package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mytchallb/mytchall-dev/internal/config"
)

func testSettings() config.SiteSettings {
	return config.Resolve(config.MapEnvironment(map[string]string{
		config.EnvURL:          "https://example.com",
		config.EnvAlgoliaAppID: "ABC123",
	}))
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("_data/site.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("site.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("_data/site.json"))
	assert.Equal(t, FormatJSON, FormatForPath("site"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSettings(), FormatJSON))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "https://example.com", doc["url"])
	assert.Equal(t, "ABC123", doc["algoliaSearch"].(map[string]any)["appId"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSettings(), FormatYAML))

	var doc struct {
		URL           string `yaml:"url"`
		AlgoliaSearch struct {
			Enabled      bool    `yaml:"enabled"`
			SearchAPIKey *string `yaml:"searchApiKey"`
			Branch       string  `yaml:"branch"`
		} `yaml:"algoliaSearch"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "https://example.com", doc.URL)
	assert.True(t, doc.AlgoliaSearch.Enabled)
	assert.Nil(t, doc.AlgoliaSearch.SearchAPIKey)
	assert.Equal(t, "main", doc.AlgoliaSearch.Branch)
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	_, err := Encode(testSettings(), Format("toml"))
	assert.Error(t, err)
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "_data", "site.json")
	require.NoError(t, WriteFile(path, testSettings()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"url": "https://example.com"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should not be left behind")
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteFile(path, config.DefaultSiteSettings()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"url": "http://localhost:8080"`)
}

func TestWriteFileEmptyPath(t *testing.T) {
	assert.ErrorIs(t, WriteFile("", testSettings()), ErrNoPath)
}
