package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	v, ok := None().Get()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, "fallback", None().OrElse("fallback"))

	v, ok = Some("").Get()
	assert.True(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, "x", Some("x").OrElse("fallback"))
	assert.Equal(t, Optional{}, None())
}

func TestSiteSettingsMarshalJSON(t *testing.T) {
	s := Resolve(MapEnvironment(map[string]string{
		EnvURL:          "https://example.com",
		EnvAlgoliaAppID: "ABC123",
	}))

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "https://example.com", doc["url"])
	assert.Equal(t, defaultTitle, doc["title"])
	assert.Equal(t, defaultOpenGraphDefaultImage, doc["openGraphDefaultImage"])
	assert.Equal(t, defaultSocialGitHub, doc["socialGitHub"])

	search, ok := doc["algoliaSearch"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, search["enabled"])
	assert.Equal(t, "ABC123", search["appId"])
	assert.Equal(t, "main", search["branch"])
	assert.NotContains(t, search, "searchApiKey")
	assert.NotContains(t, search, "siteId")
}

func TestSiteSettingsMarshalJSONOmitsAbsentSocial(t *testing.T) {
	s := DefaultSiteSettings()
	s.socialLinkedIn = None()

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "socialLinkedIn")
	assert.Contains(t, string(raw), `"socialGitHub":"mytchallb"`)
}
