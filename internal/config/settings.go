package config

import "encoding/json"

// Optional holds a string that may be absent. The zero value is absent.
type Optional struct {
	value string
	set   bool
}

// Some returns an Optional carrying v.
func Some(v string) Optional {
	return Optional{value: v, set: true}
}

// None returns an absent Optional.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (string, bool) {
	return o.value, o.set
}

// Present reports whether a value was provided.
func (o Optional) Present() bool {
	return o.set
}

// OrElse returns the value, or fallback when absent.
func (o Optional) OrElse(fallback string) string {
	if !o.set {
		return fallback
	}
	return o.value
}

// SearchSettings holds the Algolia search integration parameters.
type SearchSettings struct {
	enabled      bool
	appID        Optional
	searchAPIKey Optional
	siteID       Optional
	branch       string
}

// Enabled reports whether the search bar is shown. It does not depend on
// whether credentials are present.
func (s SearchSettings) Enabled() bool { return s.enabled }

// AppID returns the Algolia application id.
func (s SearchSettings) AppID() Optional { return s.appID }

// SearchAPIKey returns the read-only Algolia search key.
func (s SearchSettings) SearchAPIKey() Optional { return s.searchAPIKey }

// SiteID returns the Algolia site identifier.
func (s SearchSettings) SiteID() Optional { return s.siteID }

// Branch returns the deployed branch name.
func (s SearchSettings) Branch() string { return s.branch }

// SiteSettings is the resolved site configuration handed to the renderer.
// It has no setters; a resolved value never changes and is safe to share
// between goroutines.
type SiteSettings struct {
	title                 string
	url                   string
	image                 string
	imageAlt              string
	author                string
	description           string
	openGraphDefaultImage string
	socialGitHub          Optional
	socialLinkedIn        Optional
	search                SearchSettings
}

func (s SiteSettings) Title() string                 { return s.title }
func (s SiteSettings) URL() string                   { return s.url }
func (s SiteSettings) Image() string                 { return s.image }
func (s SiteSettings) ImageAlt() string              { return s.imageAlt }
func (s SiteSettings) Author() string                { return s.author }
func (s SiteSettings) Description() string           { return s.description }
func (s SiteSettings) OpenGraphDefaultImage() string { return s.openGraphDefaultImage }
func (s SiteSettings) SocialGitHub() Optional        { return s.socialGitHub }
func (s SiteSettings) SocialLinkedIn() Optional      { return s.socialLinkedIn }
func (s SiteSettings) Search() SearchSettings        { return s.search }

type siteDocument struct {
	Title                 string         `json:"title" yaml:"title"`
	URL                   string         `json:"url" yaml:"url"`
	Image                 string         `json:"image" yaml:"image"`
	ImageAlt              string         `json:"imageAlt" yaml:"imageAlt"`
	Author                string         `json:"author" yaml:"author"`
	Description           string         `json:"description" yaml:"description"`
	OpenGraphDefaultImage string         `json:"openGraphDefaultImage" yaml:"openGraphDefaultImage"`
	SocialGitHub          *string        `json:"socialGitHub,omitempty" yaml:"socialGitHub,omitempty"`
	SocialLinkedIn        *string        `json:"socialLinkedIn,omitempty" yaml:"socialLinkedIn,omitempty"`
	AlgoliaSearch         searchDocument `json:"algoliaSearch" yaml:"algoliaSearch"`
}

type searchDocument struct {
	Enabled      bool    `json:"enabled" yaml:"enabled"`
	AppID        *string `json:"appId,omitempty" yaml:"appId,omitempty"`
	SearchAPIKey *string `json:"searchApiKey,omitempty" yaml:"searchApiKey,omitempty"`
	SiteID       *string `json:"siteId,omitempty" yaml:"siteId,omitempty"`
	Branch       string  `json:"branch" yaml:"branch"`
}

// MarshalJSON encodes the settings using the key names the site templates
// expect. Absent optional fields are omitted.
func (s SiteSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.document())
}

// MarshalYAML encodes the settings with the same keys as MarshalJSON.
func (s SiteSettings) MarshalYAML() (any, error) {
	return s.document(), nil
}

func (s SiteSettings) document() siteDocument {
	return siteDocument{
		Title:                 s.title,
		URL:                   s.url,
		Image:                 s.image,
		ImageAlt:              s.imageAlt,
		Author:                s.author,
		Description:           s.description,
		OpenGraphDefaultImage: s.openGraphDefaultImage,
		SocialGitHub:          optionalPtr(s.socialGitHub),
		SocialLinkedIn:        optionalPtr(s.socialLinkedIn),
		AlgoliaSearch: searchDocument{
			Enabled:      s.search.enabled,
			AppID:        optionalPtr(s.search.appID),
			SearchAPIKey: optionalPtr(s.search.searchAPIKey),
			SiteID:       optionalPtr(s.search.siteID),
			Branch:       s.search.branch,
		},
	}
}

func optionalPtr(o Optional) *string {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}
